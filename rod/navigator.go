package rod

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/hylin/laborcrawl"
)

// SearchURL is the entry point of the judgment search interface.
const SearchURL = "https://judgment.judicial.gov.tw/FJUD/default.aspx"

// DefaultSearchSettleDelay is the timed wait after submitting the query
// or advancing a page. The results are rendered into an iframe by
// script with no reliable completion event.
const DefaultSearchSettleDelay = 3 * time.Second

// Selectors for the search interface. The site renders results inside
// an iframe whose identity changes across pagination, so the frame is
// re-resolved before every interaction.
const (
	keywordSelector    = "#txtKW"
	submitSelector     = "#btnSimpleQry"
	resultLinkSelector = "a[href*='data.aspx']"
	nextPageSelector   = "#hlNext"
)

// Ensure Navigator implements laborcrawl.SearchNavigator.
var _ laborcrawl.SearchNavigator = (*Navigator)(nil)

// Navigator drives the paginated judgment search in its own Chrome
// browser. The search session holds server-side pagination state, so
// the browser lives for the whole session and is never recycled; detail
// views run in a separate browser owned by Fetcher.
type Navigator struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	page     *rod.Page
	keyword  string
	seen     laborcrawl.SeenFunc
	settle   time.Duration
	maxPages int
	pages    int
	lastSig  uint64
	headless bool
	logger   *slog.Logger
}

// NavigatorOption configures a Navigator.
type NavigatorOption func(*Navigator)

// WithSeenFunc sets the filter applied to harvested links. Links the
// function reports as seen are dropped before they reach the caller.
// The function covers only durable state (already-saved rows); links
// harvested earlier in the same session are deduplicated by the
// frontier, not here.
func WithSeenFunc(fn laborcrawl.SeenFunc) NavigatorOption {
	return func(n *Navigator) {
		n.seen = fn
	}
}

// WithMaxPages caps the number of result pages visited. Zero means no
// cap; the repeated-page check still terminates the session when the
// site serves the same page again.
func WithMaxPages(pages int) NavigatorOption {
	return func(n *Navigator) {
		n.maxPages = pages
	}
}

// WithPageSettleDelay overrides the wait after submitting the query or
// advancing a page.
func WithPageSettleDelay(d time.Duration) NavigatorOption {
	return func(n *Navigator) {
		n.settle = d
	}
}

// WithNavigatorLogger sets the logger used for session events.
func WithNavigatorLogger(logger *slog.Logger) NavigatorOption {
	return func(n *Navigator) {
		n.logger = logger
	}
}

// WithNavigatorHeadless controls whether the search-session browser
// runs headless. Defaults to true.
func WithNavigatorHeadless(headless bool) NavigatorOption {
	return func(n *Navigator) {
		n.headless = headless
	}
}

// NewNavigator launches the search-session browser.
// Close must be called when the Navigator is no longer needed.
func NewNavigator(keyword string, opts ...NavigatorOption) (*Navigator, error) {
	if keyword == "" {
		return nil, laborcrawl.Errorf(laborcrawl.EINVALID, "search keyword is required")
	}

	n := &Navigator{
		keyword:  keyword,
		seen:     func(string) bool { return false },
		settle:   DefaultSearchSettleDelay,
		headless: true,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(n)
	}

	browser, lnchr, err := launchChrome(n.headless)
	if err != nil {
		return nil, err
	}
	n.browser = browser
	n.launcher = lnchr

	return n, nil
}

// Start loads the search form, submits the keyword query, and verifies
// that a result frame exists. Returns ENOTFOUND when no frame carries
// result links, which means the query matched nothing or the site
// layout changed.
func (n *Navigator) Start(ctx context.Context) error {
	page, err := n.browser.Page(proto.TargetCreateTarget{URL: SearchURL})
	if err != nil {
		return err
	}
	n.page = page

	page = page.Context(ctx)
	if err := page.WaitLoad(); err != nil {
		return err
	}

	input, err := page.Element(keywordSelector)
	if err != nil {
		return err
	}
	if err := input.Input(n.keyword); err != nil {
		return err
	}

	submit, err := page.Element(submitSelector)
	if err != nil {
		return err
	}
	if err := submit.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return err
	}

	if err := sleep(ctx, n.settle); err != nil {
		return err
	}

	if _, err := n.resolveFrame(ctx); err != nil {
		return err
	}

	n.pages = 1
	n.logger.Info("search session started", "keyword", n.keyword)
	return nil
}

// HarvestPage collects the current page's result links, filtered
// through the seen function. The page's link signature is recorded so
// NextPage can detect the site serving the same page again.
func (n *Navigator) HarvestPage(ctx context.Context) ([]laborcrawl.CaseTask, error) {
	frame, err := n.resolveFrame(ctx)
	if err != nil {
		return nil, err
	}

	all, err := collectLinks(frame)
	if err != nil {
		return nil, err
	}
	n.lastSig = pageSignature(all)

	var tasks []laborcrawl.CaseTask
	for _, task := range all {
		if n.seen(task.URL) {
			continue
		}
		tasks = append(tasks, task)
	}

	n.logger.Info("page harvested", "page", n.pages, "links", len(all), "new", len(tasks))
	return tasks, nil
}

// NextPage advances to the next result page. Returns false when the
// next-page control is absent, when the page cap is reached, or when
// the new page carries the same links as the last harvested one.
func (n *Navigator) NextPage(ctx context.Context) (bool, error) {
	if n.maxPages > 0 && n.pages >= n.maxPages {
		n.logger.Info("page cap reached", "pages", n.pages)
		return false, nil
	}

	frame, err := n.resolveFrame(ctx)
	if err != nil {
		return false, err
	}

	has, next, err := frame.Has(nextPageSelector)
	if err != nil {
		return false, err
	}
	if !has {
		return false, nil
	}

	if err := next.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return false, err
	}
	if err := sleep(ctx, n.settle); err != nil {
		return false, err
	}

	frame, err = n.resolveFrame(ctx)
	if err != nil {
		return false, err
	}
	links, err := collectLinks(frame)
	if err != nil {
		return false, err
	}
	if pageSignature(links) == n.lastSig {
		n.logger.Warn("pagination served a repeated page, stopping", "page", n.pages)
		return false, nil
	}

	n.pages++
	return true, nil
}

// Close releases the search-session browser.
func (n *Navigator) Close() error {
	var err error
	if n.browser != nil {
		err = n.browser.Close()
		n.browser = nil
	}
	if n.launcher != nil {
		n.launcher.Kill()
		n.launcher = nil
	}
	return err
}

// resolveFrame locates the frame carrying result links. It checks the
// main page first, then every iframe. Must be called before each
// interaction because pagination replaces the iframe.
func (n *Navigator) resolveFrame(ctx context.Context) (*rod.Page, error) {
	if n.page == nil {
		return nil, laborcrawl.Errorf(laborcrawl.EINTERNAL, "navigator has not been started")
	}
	page := n.page.Context(ctx)

	if has, _, err := page.Has(resultLinkSelector); err != nil {
		return nil, err
	} else if has {
		return page, nil
	}

	iframes, err := page.Elements("iframe")
	if err != nil {
		return nil, err
	}
	for _, el := range iframes {
		frame, err := el.Frame()
		if err != nil {
			continue
		}
		if has, _, err := frame.Has(resultLinkSelector); err == nil && has {
			return frame, nil
		}
	}

	return nil, laborcrawl.Errorf(laborcrawl.ENOTFOUND, "no frame contains result links")
}

// collectLinks gathers result links from the frame, normalizing hrefs
// to absolute URLs.
func collectLinks(frame *rod.Page) ([]laborcrawl.CaseTask, error) {
	els, err := frame.Elements(resultLinkSelector)
	if err != nil {
		return nil, err
	}

	var tasks []laborcrawl.CaseTask
	for _, el := range els {
		href, err := el.Attribute("href")
		if err != nil || href == nil || *href == "" {
			continue
		}
		title, err := el.Text()
		if err != nil {
			continue
		}
		tasks = append(tasks, laborcrawl.CaseTask{
			URL:   AbsoluteURL(*href),
			Title: strings.TrimSpace(title),
		})
	}
	return tasks, nil
}
