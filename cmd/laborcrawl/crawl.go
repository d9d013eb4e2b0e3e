package main

import (
	"fmt"

	"github.com/hylin/laborcrawl"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	if _, err := deps.Results.Load(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", laborcrawl.ErrorMessage(err))
		return err
	}
	if n := deps.Results.Len(); n > 0 {
		fmt.Fprintf(deps.Stdout, "Resuming: %d cases already saved in %s\n", n, deps.Results.Path())
	}

	summary, err := deps.Session.Run(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", laborcrawl.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Visited %d pages, discovered %d cases: saved %d, skipped %d\n",
		summary.Pages, summary.Discovered, summary.Saved, summary.Skipped)
	fmt.Fprintf(deps.Stdout, "Results written to %s (%d total)\n", deps.Results.Path(), deps.Results.Len())

	return nil
}
