package main

import (
	"context"
	"fmt"
	"io"
	stdslog "log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/jmwsk/sitechat"
	"github.com/jmwsk/sitechat/crawl"
	"github.com/jmwsk/sitechat/extract"
	"github.com/jmwsk/sitechat/fs"
	"github.com/jmwsk/sitechat/gemini"
	"github.com/jmwsk/sitechat/htmltomarkdown"
	schttp "github.com/jmwsk/sitechat/http"
	"github.com/jmwsk/sitechat/rod"
	logdec "github.com/jmwsk/sitechat/slog"
	"github.com/jmwsk/sitechat/sqlite"
	"github.com/jmwsk/sitechat/trafilatura"
	"github.com/joho/godotenv"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used for session and turn archival.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	// Load GEMINI_API_KEY and friends from a .env file when present.
	_ = godotenv.Load()

	logger := stdslog.New(stdslog.NewTextHandler(stderr, &stdslog.HandlerOptions{Level: stdslog.LevelInfo}))

	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("sitechat"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'sitechat --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set SITECHAT_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	deps.Sessions = sqlite.NewSessionService(m.DB)
	deps.Turns = sqlite.NewTurnService(m.DB)

	if cmd == "crawl" || cmd == "ask" || cmd == "chat" {
		var flags crawlFlags
		switch cmd {
		case "crawl":
			flags = cli.Crawl.crawlFlags
		case "ask":
			flags = cli.Ask.crawlFlags
		case "chat":
			flags = cli.Chat.crawlFlags
		}

		// Ask and chat always embed and complete; crawl needs the model
		// only for llm extraction.
		if cmd != "crawl" || flags.Strategy == string(sitechat.StrategyLLM) {
			client, err := gemini.NewClient(ctx, os.Getenv("GEMINI_API_KEY"))
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Set GEMINI_API_KEY. Get an API key at https://aistudio.google.com/apikey")
				return err
			}
			deps.Embedder = logdec.NewLoggingEmbedder(client, logger)
			deps.Completer = logdec.NewLoggingCompleter(client, logger)
		}

		var fetcher sitechat.Fetcher
		if flags.Render {
			browserFetcher, err := rod.NewFetcher()
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --render")
				return err
			}
			fetcher = browserFetcher
		} else {
			fetcher = schttp.NewRetryFetcher(schttp.NewFetcher(), nil)
		}
		fetcher = logdec.NewLoggingFetcher(fetcher, logger)
		defer fetcher.Close()

		extractor := trafilatura.NewExtractor()
		strategy := sitechat.ExtractionStrategy(flags.Strategy)

		var pageExtractor sitechat.PageExtractor
		if strategy == sitechat.StrategyLLM {
			pageExtractor = &extract.LLM{
				Fetcher:   fetcher,
				Extractor: extractor,
				Completer: deps.Completer,
			}
		} else {
			pageExtractor = &extract.Markdown{
				Fetcher:   fetcher,
				Extractor: extractor,
				Converter: htmltomarkdown.NewConverter(),
			}
		}

		deps.Crawler = &crawl.Crawler{
			Sitemaps:    logdec.NewLoggingSitemapService(schttp.NewSitemapService(nil), logger),
			Extractor:   pageExtractor,
			Strategy:    strategy,
			Limiter:     crawl.NewDomainLimiter(flags.Rate),
			MaxPages:    flags.MaxPages,
			Concurrency: flags.Concurrency,
		}

		if cmd == "crawl" && cli.Crawl.Out != "" {
			deps.Exporter = fs.NewExporter(cli.Crawl.Out)
		}
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("SITECHAT_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "sitechat.db"
	}
	dir := filepath.Join(home, ".sitechat")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "sitechat.db")
}
