package main

import (
	"fmt"
	"unicode/utf8"

	"github.com/hylin/laborcrawl"
	"github.com/hylin/laborcrawl/crawl"
)

// Run executes the probe command. It walks one URL through every
// pipeline stage and prints the intermediate results, which is the
// fastest way to tell whether a bad row came from fetching, content
// location, the backend, or parsing.
func (c *ProbeCmd) Run(deps *Dependencies) error {
	fmt.Fprintf(deps.Stdout, "URL:   %s\n", c.URL)
	fmt.Fprintf(deps.Stdout, "Date:  %s\n", crawl.DateFromURL(c.URL))

	html, err := deps.Fetcher.Fetch(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "fetch failed: %s\n", laborcrawl.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Fetched %d bytes of HTML\n", len(html))

	text := deps.Locator.Locate(html)
	fmt.Fprintf(deps.Stdout, "Located %d runes of judgment text\n", utf8.RuneCountInString(text))
	fmt.Fprintf(deps.Stdout, "--- content preview ---\n%s\n-----------------------\n",
		laborcrawl.TruncateRunes(text, 300))

	truncated := laborcrawl.TruncateRunes(text, crawl.DefaultTruncateLen)
	raw, err := deps.Extractor.Extract(deps.Ctx, truncated)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "extraction failed: %s\n", laborcrawl.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Raw backend response: %s\n", raw)

	rec, err := laborcrawl.ParseRecord(raw)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "parse failed: %s\n", laborcrawl.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Job title:      %s\n", stringOrNull(rec.JobTitle))
	fmt.Fprintf(deps.Stdout, "Monthly salary: %s\n", floatOrNull(rec.MonthlySalary))

	return nil
}

func stringOrNull(s *string) string {
	if s == nil {
		return "null"
	}
	return *s
}

func floatOrNull(f *float64) string {
	if f == nil {
		return "null"
	}
	return fmt.Sprintf("%.0f", *f)
}
