package laborcrawl

import "context"

// SeenFunc reports whether a URL has already been captured. The
// navigator uses it to filter harvested links against the durable
// seen-URL set owned by the result store.
type SeenFunc func(url string) bool

// SearchNavigator walks the paginated search-results interface.
//
// Lifecycle: Start submits the query and establishes the result frame
// (ENOTFOUND if no frame carries result links, which ends the session).
// HarvestPage collects the current page's unseen links. NextPage
// advances pagination, returning false when results are exhausted. The
// result frame must be re-resolved internally on every use; its
// identity is not stable across pagination.
type SearchNavigator interface {
	Start(ctx context.Context) error
	HarvestPage(ctx context.Context) ([]CaseTask, error)
	NextPage(ctx context.Context) (bool, error)
	Close() error
}
