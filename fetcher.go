package docrag

import "context"

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch retrieves the page at url and returns its HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}
