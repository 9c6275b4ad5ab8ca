package main

import (
	"fmt"
	"time"

	"github.com/jmwsk/sitechat"
	"github.com/jmwsk/sitechat/crawl"
)

// runCrawl runs a crawl session, reporting per-page progress on stderr and
// archiving the session summary. The session is archived even when the
// crawl fails, so failed runs show up in the sessions list.
func runCrawl(deps *Dependencies, seedURL string, mode sitechat.CrawlMode) (*sitechat.CrawlSession, error) {
	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressCompleted:
			fmt.Fprintf(deps.Stderr, "fetched %s\n", event.URL)
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "failed  %s: %s\n", event.URL, event.Error)
		}
	}

	session, err := deps.Crawler.Crawl(deps.Ctx, seedURL, mode, progress)
	if session != nil {
		if saveErr := deps.Sessions.SaveSession(deps.Ctx, session); saveErr != nil {
			fmt.Fprintf(deps.Stderr, "warning: failed to archive session: %s\n", sitechat.ErrorMessage(saveErr))
		}
	}
	return session, err
}

// printSummary prints the session stats after a crawl.
func printSummary(deps *Dependencies, session *sitechat.CrawlSession) {
	fmt.Fprintf(deps.Stdout, "session %s: %d pages, %d links, %d images, %d failed in %s\n",
		session.ID, session.Stats.Pages, session.Stats.Links, session.Stats.Images,
		session.Stats.Failed, session.Stats.Elapsed.Round(10*time.Millisecond))
}

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	session, err := runCrawl(deps, c.URL, c.mode())
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitechat.ErrorMessage(err))
		return err
	}

	printSummary(deps, session)

	if deps.Exporter != nil {
		dir, err := deps.Exporter.ExportSession(deps.Ctx, session)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", sitechat.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "exported markdown to %s\n", dir)
	}

	return nil
}
