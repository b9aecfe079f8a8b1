package rod

import (
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is how many pages a browser serves before it is
// replaced. Chrome's memory use grows with every page it renders and
// never returns to baseline when pages close, so long crawls swap in a
// fresh browser at intervals.
const DefaultMaxPages = 75

// BrowserManager hands out a shared browser instance and replaces it
// once it has served a configured number of pages.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	served   int64
	maxPages int64
	closed   bool
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithMaxPages sets how many pages a browser serves before it is
// recycled. Defaults to DefaultMaxPages.
func WithMaxPages(n int64) ManagerOption {
	return func(bm *BrowserManager) {
		bm.maxPages = n
	}
}

// NewBrowserManager launches a headless Chrome browser and returns a
// manager that recycles it after maxPages served pages. Close must be
// called when the manager is no longer needed.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	bm := &BrowserManager{maxPages: DefaultMaxPages}
	for _, opt := range opts {
		opt(bm)
	}

	browser, lnchr, err := launchBrowser()
	if err != nil {
		return nil, err
	}
	bm.browser = browser
	bm.launcher = lnchr

	return bm, nil
}

// Browser returns the current browser, recycling it first when the
// served page count has reached the threshold. Callers report served
// pages with IncrementPageCount.
func (bm *BrowserManager) Browser() *rod.Browser {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.served >= bm.maxPages {
		bm.recycle()
	}
	return bm.browser
}

// IncrementPageCount records one served page. Call after each
// successfully processed page.
func (bm *BrowserManager) IncrementPageCount() {
	bm.mu.Lock()
	bm.served++
	bm.mu.Unlock()
}

// Close shuts down the browser and its launcher process.
// Close is safe to call multiple times.
func (bm *BrowserManager) Close() error {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed {
		return nil
	}
	bm.closed = true

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

// recycle swaps in a fresh browser and shuts down the old one. When the
// new launch fails the old browser stays in service rather than leaving
// the crawl without one. Must be called with mu held.
func (bm *BrowserManager) recycle() {
	browser, lnchr, err := launchBrowser()
	if err != nil {
		return
	}

	old, oldLauncher := bm.browser, bm.launcher
	bm.browser = browser
	bm.launcher = lnchr
	bm.served = 0

	if old != nil {
		_ = old.Close()
	}
	if oldLauncher != nil {
		oldLauncher.Kill()
	}
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

// launchBrowser starts a headless browser with flags that keep
// background pages rendering at full speed.
func launchBrowser() (*rod.Browser, *launcher.Launcher, error) {
	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)

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
