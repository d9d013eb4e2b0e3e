package main

import (
	"context"
	"io"

	"github.com/hylin/laborcrawl"
	"github.com/hylin/laborcrawl/crawl"
	"github.com/hylin/laborcrawl/fs"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Results   *fs.ResultStore
	Session   *crawl.Session
	Fetcher   laborcrawl.Fetcher
	Locator   laborcrawl.ContentLocator
	Extractor laborcrawl.ExtractionClient
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Crawl CrawlCmd `cmd:"" help:"Harvest job titles and salaries from judgment search results"`
	Probe ProbeCmd `cmd:"" help:"Run a single judgment URL through the pipeline, printing each stage"`
	Stats StatsCmd `cmd:"" help:"Summarize a result CSV"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	Keyword  string `arg:"" help:"Search keyword, e.g. 職業災害"`
	Output   string `short:"o" default:"results.csv" help:"Result CSV path"`
	Backend  string `default:"ollama" enum:"ollama,gemini" help:"Extraction backend"`
	Model    string `help:"Model name (backend default when empty)"`
	MaxCases int    `default:"0" help:"Stop after saving this many rows (0 = unlimited)"`
	MaxPages int    `default:"0" help:"Visit at most this many result pages (0 = unlimited)"`
	Truncate int    `default:"4000" help:"Judgment text sent to the backend, in runes"`
	Archive  string `help:"SQLite path for the full-text judgment archive (empty = disabled)"`
	Headless bool   `default:"true" negatable:"" help:"Run the browsers headless"`
	Verbose  bool   `short:"v" help:"Enable debug logging"`
}

// ProbeCmd is the "probe" subcommand.
type ProbeCmd struct {
	URL     string `arg:"" help:"Judgment detail URL"`
	Backend string `default:"ollama" enum:"ollama,gemini" help:"Extraction backend"`
	Model   string `help:"Model name (backend default when empty)"`
}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct {
	Input string `arg:"" optional:"" default:"results.csv" help:"Result CSV path"`
	Top   int    `default:"5" help:"Number of highest salaries to list"`
}
