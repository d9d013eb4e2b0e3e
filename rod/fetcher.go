package rod

import (
	"context"
	"time"

	"github.com/go-rod/rod/lib/proto"
	"github.com/hylin/laborcrawl"
)

// DefaultFetchTimeout bounds a single detail-view fetch.
const DefaultFetchTimeout = 30 * time.Second

// DefaultSettleDelay is the timed wait after load for the detail view's
// scripted content. The site exposes no reliable "loaded" event, so a
// timed wait is used instead of a selector wait.
const DefaultSettleDelay = 2 * time.Second

// Ensure Fetcher implements laborcrawl.Fetcher at compile time.
var _ laborcrawl.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered detail-view HTML using its own Chrome
// browser, kept separate from the search session's browser so a hung or
// crashed detail view can never corrupt pagination state. Each fetch
// runs in a fresh page that is closed unconditionally.
type Fetcher struct {
	manager  *BrowserManager
	timeout  time.Duration
	settle   time.Duration
	headless bool
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithFetchTimeout overrides the per-fetch timeout.
func WithFetchTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithSettleDelay overrides the post-load settle wait.
func WithSettleDelay(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.settle = d
	}
}

// WithFetcherHeadless controls whether the detail-view browser runs
// headless. Defaults to true.
func WithFetcherHeadless(headless bool) FetcherOption {
	return func(f *Fetcher) {
		f.headless = headless
	}
}

// NewFetcher launches the detail-view browser.
// Close must be called when the Fetcher is no longer needed.
func NewFetcher(opts ...FetcherOption) (*Fetcher, error) {
	f := &Fetcher{
		timeout:  DefaultFetchTimeout,
		settle:   DefaultSettleDelay,
		headless: true,
	}
	for _, opt := range opts {
		opt(f)
	}

	manager, err := NewBrowserManager(WithHeadless(f.headless))
	if err != nil {
		return nil, err
	}
	f.manager = manager

	return f, nil
}

// Fetch navigates a fresh page to the URL, waits for content to settle,
// and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}
	if err := sleep(ctx, f.settle); err != nil {
		return "", err
	}

	html, err := page.HTML()
	if err != nil {
		return "", err
	}

	f.manager.RecordView()
	return html, nil
}

// Close releases the detail-view browser.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}

// sleep waits for d or until the context is canceled.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
