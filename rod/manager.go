// Package rod provides browser-automation implementations of the
// laborcrawl fetching and navigation interfaces using Chrome.
package rod

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultRecycleAfter is the default number of detail views before the
// browser is recycled.
const DefaultRecycleAfter = 75

// BrowserManager manages the detail-view browser's lifecycle with
// automatic recycling. Chrome accumulates memory over long crawl
// sessions and the baseline never returns to initial levels even with
// proper page cleanup, so the browser is relaunched periodically. The
// search session runs in a separate browser and is unaffected.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	browser      *rod.Browser
	launcher     *launcher.Launcher
	viewCount    int64
	recycleAfter int64
	headless     bool
	mu           sync.Mutex
	closed       atomic.Bool
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithRecycleAfter sets the number of detail views before the browser
// is recycled. Defaults to DefaultRecycleAfter.
func WithRecycleAfter(n int64) ManagerOption {
	return func(bm *BrowserManager) {
		bm.recycleAfter = n
	}
}

// WithHeadless controls whether the browser runs headless.
// Defaults to true; a visible browser helps when diagnosing selectors.
func WithHeadless(headless bool) ManagerOption {
	return func(bm *BrowserManager) {
		bm.headless = headless
	}
}

// NewBrowserManager launches a headless Chrome browser for detail
// views. Close must be called when the manager is no longer needed.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	bm := &BrowserManager{
		recycleAfter: DefaultRecycleAfter,
		headless:     true,
	}
	for _, opt := range opts {
		opt(bm)
	}

	if err := bm.launchBrowser(); err != nil {
		return nil, err
	}

	return bm, nil
}

// Browser returns the current browser instance, recycling it first if
// the view count has reached the threshold. Callers should call
// RecordView after using the browser to process a detail view.
func (bm *BrowserManager) Browser() *rod.Browser {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if atomic.LoadInt64(&bm.viewCount) >= bm.recycleAfter {
		bm.recycleBrowser()
	}

	return bm.browser
}

// RecordView increments the view counter toward the recycling threshold.
func (bm *BrowserManager) RecordView() {
	atomic.AddInt64(&bm.viewCount, 1)
}

// Close releases browser resources. Close is safe to call multiple times.
func (bm *BrowserManager) Close() error {
	if !bm.closed.CompareAndSwap(false, true) {
		return nil
	}

	bm.mu.Lock()
	defer bm.mu.Unlock()

	return bm.closeBrowser()
}

// launchBrowser starts a new browser instance with stability flags.
func (bm *BrowserManager) launchBrowser() error {
	browser, lnchr, err := launchChrome(bm.headless)
	if err != nil {
		return err
	}
	bm.browser = browser
	bm.launcher = lnchr
	return nil
}

// launchChrome starts Chrome with flags that keep background tabs and
// renderers from being throttled or killed during long sessions.
func launchChrome(headless bool) (*rod.Browser, *launcher.Launcher, error) {
	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(headless)

	u, err := lnchr.Launch()
	if err != nil {
		return nil, nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return nil, nil, fmt.Errorf("connecting to browser: %w", err)
	}

	return browser, lnchr, nil
}

// closeBrowser shuts down the current browser and launcher.
// Must be called with mu held.
func (bm *BrowserManager) closeBrowser() error {
	var err error
	if bm.browser != nil {
		err = bm.browser.Close()
		bm.browser = nil
	}
	if bm.launcher != nil {
		bm.launcher.Kill()
		bm.launcher = nil
	}
	return err
}

// recycleBrowser starts a fresh browser and closes the old one.
// If launching the new browser fails, the old browser is kept.
// Must be called with mu held.
func (bm *BrowserManager) recycleBrowser() {
	oldBrowser := bm.browser
	oldLauncher := bm.launcher
	bm.browser = nil
	bm.launcher = nil

	if err := bm.launchBrowser(); err != nil {
		bm.browser = oldBrowser
		bm.launcher = oldLauncher
		return
	}

	if oldBrowser != nil {
		_ = oldBrowser.Close()
	}
	if oldLauncher != nil {
		oldLauncher.Kill()
	}
	atomic.StoreInt64(&bm.viewCount, 0)
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (bm *BrowserManager) LauncherPID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.launcher == nil {
		return 0
	}
	return bm.launcher.PID()
}
