package main

import (
	"fmt"

	"github.com/jmwsk/sitechat"
	"github.com/jmwsk/sitechat/chat"
	"github.com/jmwsk/sitechat/index"
)

// buildEngine crawls the site, indexes it, and returns a chat engine bound
// to the session.
func buildEngine(deps *Dependencies, seedURL string, mode sitechat.CrawlMode, topK, history int) (*chat.Engine, *sitechat.CrawlSession, error) {
	session, err := runCrawl(deps, seedURL, mode)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitechat.ErrorMessage(err))
		return nil, nil, err
	}
	printSummary(deps, session)

	indexer := &index.Indexer{Embedder: deps.Embedder}
	idx, err := indexer.Build(deps.Ctx, session)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitechat.ErrorMessage(err))
		return nil, nil, err
	}
	fmt.Fprintf(deps.Stderr, "indexed %d chunks\n", idx.Len())

	engine := &chat.Engine{
		Embedder:      deps.Embedder,
		Completer:     deps.Completer,
		Index:         idx,
		TopK:          topK,
		HistoryWindow: history,
	}
	return engine, session, nil
}

// askAndPrint asks one question, prints the answer with its sources, and
// archives the turn.
func askAndPrint(deps *Dependencies, engine *chat.Engine, sessionID, question string) error {
	turn, err := engine.Ask(deps.Ctx, question)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitechat.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, turn.Answer)

	if len(turn.Sources) > 0 {
		fmt.Fprintln(deps.Stdout, "\nSources:")
		seen := make(map[string]bool)
		for _, source := range turn.Sources {
			url := source.Chunk.SourceURL
			if seen[url] {
				continue
			}
			seen[url] = true
			fmt.Fprintf(deps.Stdout, "  %s\n", url)
		}
	}

	if err := deps.Turns.SaveTurn(deps.Ctx, sessionID, turn); err != nil {
		fmt.Fprintf(deps.Stderr, "warning: failed to archive turn: %s\n", sitechat.ErrorMessage(err))
	}
	return nil
}

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	engine, session, err := buildEngine(deps, c.URL, c.mode(), c.TopK, 0)
	if err != nil {
		return err
	}
	return askAndPrint(deps, engine, session.ID, c.Question)
}
