package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/jmwsk/sitechat"
	"github.com/jmwsk/sitechat/crawl"
	"github.com/jmwsk/sitechat/fs"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdin    io.Reader
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Sessions sitechat.SessionService
	Turns    sitechat.TurnService

	// Wired for crawl, ask, and chat.
	Crawler   *crawl.Crawler
	Embedder  sitechat.Embedder
	Completer sitechat.Completer

	// Wired for crawl --out.
	Exporter *fs.Exporter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Crawl    CrawlCmd    `cmd:"" help:"Crawl a website and archive the session"`
	Ask      AskCmd      `cmd:"" help:"Crawl a website and answer one question about it"`
	Chat     ChatCmd     `cmd:"" help:"Crawl a website and chat about it interactively"`
	Sessions SessionsCmd `cmd:"" help:"List archived crawl sessions"`
}

// crawlFlags are shared by every command that runs a crawl.
type crawlFlags struct {
	Deep        bool    `help:"Follow sitemap URLs and links beyond the seed page"`
	Strategy    string  `default:"markdown" enum:"markdown,llm" help:"Extraction strategy (markdown or llm)"`
	MaxPages    int     `default:"100" help:"Page limit for deep crawls"`
	Concurrency int     `short:"c" default:"10" help:"Concurrent fetch limit"`
	Render      bool    `help:"Render pages with a headless browser"`
	Rate        float64 `default:"1" help:"Max requests per second per domain"`
}

// mode returns the crawl mode selected by the flags.
func (f *crawlFlags) mode() sitechat.CrawlMode {
	if f.Deep {
		return sitechat.ModeDeep
	}
	return sitechat.ModeBase
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	URL string `arg:"" help:"Seed URL"`
	crawlFlags
	Out string `short:"o" help:"Export pages as markdown to this directory"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	URL      string `arg:"" help:"Seed URL"`
	Question string `arg:"" help:"Question to ask about the site"`
	crawlFlags
	TopK int `default:"4" help:"Number of chunks retrieved per question"`
}

// ChatCmd is the "chat" subcommand.
type ChatCmd struct {
	URL string `arg:"" help:"Seed URL"`
	crawlFlags
	TopK    int `default:"4" help:"Number of chunks retrieved per question"`
	History int `default:"6" help:"Number of recent turns included in prompts"`
}

// SessionsCmd is the "sessions" subcommand.
type SessionsCmd struct {
	Seed  string `help:"Filter by seed URL"`
	Limit int    `default:"20" help:"Maximum number of sessions to list"`
}
