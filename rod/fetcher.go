// Package rod provides a browser-based Fetcher for documentation sites
// that render their content with JavaScript.
package rod

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-rod/rod/lib/proto"
	"github.com/ragtools/docrag"
)

// DefaultFetchTimeout bounds how long a single page fetch may take,
// including navigation and rendering.
const DefaultFetchTimeout = 30 * time.Second

// Ensure Fetcher implements docrag.Fetcher at compile time.
var _ docrag.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser
// automation. The browser is obtained through a BrowserManager, so long
// crawls get a fresh browser after every batch of pages.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager      *BrowserManager
	fetchTimeout time.Duration
	maxPages     int64
	closed       atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the per-fetch timeout. Defaults to DefaultFetchTimeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.fetchTimeout = d
	}
}

// WithPagesPerBrowser sets how many pages a browser serves before it is
// recycled. Defaults to DefaultMaxPages.
func WithPagesPerBrowser(n int64) Option {
	return func(f *Fetcher) {
		f.maxPages = n
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		fetchTimeout: DefaultFetchTimeout,
		maxPages:     DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(f)
	}

	manager, err := NewBrowserManager(WithMaxPages(f.maxPages))
	if err != nil {
		return nil, err
	}
	f.manager = manager

	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", docrag.Errorf(docrag.EINVALID, "fetcher is closed")
	}

	// Check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.fetchTimeout)
	defer cancel()

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	// Set context for all subsequent operations
	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", wrapContextErr(ctx, err)
	}

	if err := page.WaitLoad(); err != nil {
		return "", wrapContextErr(ctx, err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", wrapContextErr(ctx, err)
	}

	f.manager.IncrementPageCount()
	return html, nil
}

// wrapContextErr surfaces the context's own error when it expired,
// since rod reports cancellation through its own error types.
func wrapContextErr(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%w: %v", ctxErr, err)
	}
	return err
}

// Close releases browser resources, including the launcher process.
// Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}
