package laborcrawl

import "context"

// Fetcher retrieves rendered HTML for a single detail view.
// Implementations use browser automation because the judgment site
// renders content through frames and scripts. Each Fetch must be
// isolated: a failure or hang on one case must not corrupt the shared
// search session.
type Fetcher interface {
	// Fetch opens the URL in a fresh view, waits for content to settle,
	// and returns the rendered HTML. The view is closed unconditionally
	// before Fetch returns. The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases browser resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
