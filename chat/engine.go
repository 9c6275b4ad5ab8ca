// Package chat implements retrieval-augmented question answering over a
// crawl session's index.
package chat

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmwsk/sitechat"
	"github.com/jmwsk/sitechat/index"
)

// Engine defaults.
const (
	// DefaultTopK is the number of chunks retrieved per question.
	DefaultTopK = 4

	// DefaultHistoryWindow is the number of recent turns included in
	// prompts.
	DefaultHistoryWindow = 6
)

// Engine answers questions about one crawl session. Each answer is
// grounded on the most similar index chunks; the conversation history is
// kept per engine and bounded when building prompts.
type Engine struct {
	Embedder      sitechat.Embedder
	Completer     sitechat.Completer
	Index         *index.SessionIndex
	TopK          int
	HistoryWindow int

	conversation sitechat.Conversation
}

// Ask answers a question using the session index. The turn is appended to
// the conversation only when the answer succeeds; a failed turn leaves the
// history unchanged.
func (e *Engine) Ask(ctx context.Context, question string) (*sitechat.ChatTurn, error) {
	if question == "" {
		return nil, sitechat.Errorf(sitechat.EINVALID, "question required")
	}
	if e.Index == nil || e.Index.Len() == 0 {
		return nil, sitechat.Errorf(sitechat.ENOTFOUND, "no indexed content to answer from")
	}
	if e.Completer == nil {
		return nil, sitechat.Errorf(sitechat.EUNAUTHORIZED, "chat requires a configured model provider")
	}

	embedding, err := e.Embedder.Embed(ctx, question)
	if err != nil {
		return nil, err
	}

	topK := e.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}
	matches := e.Index.Search(embedding, topK)

	historyWindow := e.HistoryWindow
	if historyWindow <= 0 {
		historyWindow = DefaultHistoryWindow
	}
	history := e.conversation.Recent(historyWindow)

	answer, err := e.Completer.Complete(ctx, BuildPrompt(matches, history, question))
	if err != nil {
		return nil, err
	}

	sources := make([]sitechat.ScoredChunk, len(matches))
	for i, match := range matches {
		sources[i] = *match
	}

	turn := &sitechat.ChatTurn{
		ID:       uuid.New().String(),
		Question: question,
		Answer:   answer,
		Sources:  sources,
		AskedAt:  time.Now(),
	}
	e.conversation.Append(turn)

	return turn, nil
}

// History returns the conversation so far, in ask order.
func (e *Engine) History() []*sitechat.ChatTurn {
	return e.conversation.Turns()
}
