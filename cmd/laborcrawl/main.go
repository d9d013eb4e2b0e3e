package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/hylin/laborcrawl"
	"github.com/hylin/laborcrawl/crawl"
	"github.com/hylin/laborcrawl/fs"
	"github.com/hylin/laborcrawl/gemini"
	"github.com/hylin/laborcrawl/goquery"
	"github.com/hylin/laborcrawl/ollama"
	"github.com/hylin/laborcrawl/rod"
	lcslog "github.com/hylin/laborcrawl/slog"
	"github.com/hylin/laborcrawl/sqlite"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database backing the optional judgment archive.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("laborcrawl"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'laborcrawl --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	defer m.Close()

	// Wire command-specific dependencies based on command
	if cmd == "crawl" {
		level := slog.LevelInfo
		if cli.Crawl.Verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

		extractor, err := newExtractionClient(ctx, cli.Crawl.Backend, cli.Crawl.Model, stderr)
		if err != nil {
			return err
		}
		extractor = lcslog.NewLoggingClient(
			crawl.NewGuardedClient(extractor, crawl.DefaultMinInputLen), logger)

		deps.Results = fs.NewResultStore(cli.Crawl.Output, fs.WithLogger(logger))

		var archive laborcrawl.JudgmentService
		if cli.Crawl.Archive != "" {
			m.DB = sqlite.NewDB(cli.Crawl.Archive)
			if err := m.DB.Open(); err != nil {
				return fmt.Errorf("failed to open archive at %q: %w", cli.Crawl.Archive, err)
			}
			archive = sqlite.NewJudgmentService(m.DB)
		}

		fetcher, err := rod.NewFetcher(rod.WithFetcherHeadless(cli.Crawl.Headless))
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		defer fetcher.Close()

		navOpts := []rod.NavigatorOption{
			rod.WithSeenFunc(deps.Results.Seen),
			rod.WithNavigatorLogger(logger),
			rod.WithNavigatorHeadless(cli.Crawl.Headless),
		}
		if cli.Crawl.MaxPages > 0 {
			navOpts = append(navOpts, rod.WithMaxPages(cli.Crawl.MaxPages))
		}
		navigator, err := rod.NewNavigator(cli.Crawl.Keyword, navOpts...)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start search session: %w", err)
		}
		defer navigator.Close()

		deps.Session = &crawl.Session{
			Navigator:   navigator,
			Fetcher:     rod.NewLoggingFetcher(fetcher, logger),
			Locator:     goquery.NewLocator(goquery.WithLogger(logger)),
			Extractor:   extractor,
			Results:     deps.Results,
			Archive:     archive,
			Limiter:     crawl.NewHostLimiter(1),
			Politeness:  crawl.NewPoliteness(crawl.DefaultMinDelay, crawl.DefaultMaxDelay),
			Logger:      logger,
			TruncateLen: cli.Crawl.Truncate,
			MaxCases:    cli.Crawl.MaxCases,
		}
	}

	if cmd == "probe" {
		logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

		// The probe uses the backend unwrapped so its raw behavior,
		// including responses the guard would reject, stays visible.
		extractor, err := newExtractionClient(ctx, cli.Probe.Backend, cli.Probe.Model, stderr)
		if err != nil {
			return err
		}
		deps.Extractor = extractor

		fetcher, err := rod.NewFetcher()
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		defer fetcher.Close()
		deps.Fetcher = fetcher

		deps.Locator = goquery.NewLocator(goquery.WithLogger(logger))
	}

	return kongCtx.Run(deps)
}

// newExtractionClient builds the configured backend client.
func newExtractionClient(ctx context.Context, backend, model string, stderr io.Writer) (laborcrawl.ExtractionClient, error) {
	switch backend {
	case "gemini":
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return nil, fmt.Errorf("GEMINI_API_KEY not set")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		var opts []gemini.Option
		if model != "" {
			opts = append(opts, gemini.WithModel(model))
		}
		return gemini.NewClient(client, opts...), nil

	default:
		var opts []ollama.Option
		if host := os.Getenv("OLLAMA_HOST"); host != "" {
			opts = append(opts, ollama.WithBaseURL(host))
		}
		if model != "" {
			opts = append(opts, ollama.WithModel(model))
		}
		return ollama.NewClient(opts...), nil
	}
}
