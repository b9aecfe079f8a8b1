// Package crawl provides documentation crawling orchestration.
// It coordinates fetching, link discovery, and content extraction of
// documentation pages starting from a set of root URLs.
package crawl

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ragtools/docrag"
)

// DefaultMaxDepth bounds how many link hops the crawler follows from
// each root URL.
const DefaultMaxDepth = 5

// Frontier configuration.
const (
	// frontierExpectedURLs is the expected number of URLs for Bloom filter sizing.
	frontierExpectedURLs = 10000
	// frontierFalsePositiveRate is the acceptable false positive rate for deduplication.
	frontierFalsePositiveRate = 0.01
	// defaultMaxPages limits the number of pages processed to prevent runaway crawls.
	defaultMaxPages = 1000
)

// Crawler fetches documentation pages recursively from root URLs.
type Crawler struct {
	Fetcher   docrag.Fetcher
	Extractor docrag.Extractor
	Links     docrag.LinkExtractor

	// TokenCounter and RateLimiter are optional. Without a counter,
	// documents carry a zero token count; without a limiter, requests
	// are not throttled.
	TokenCounter docrag.TokenCounter
	RateLimiter  docrag.DomainLimiter

	// MaxDepth is the maximum number of link hops from a root URL.
	// Zero means DefaultMaxDepth.
	MaxDepth int

	// MaxPages caps the total number of pages fetched per root.
	// Zero means defaultMaxPages.
	MaxPages int

	RetryDelays []time.Duration
}

// Result holds the outcome of a crawl operation.
type Result struct {
	Saved  int
	Failed int
	Bytes  int
	Tokens int
}

// ProgressEvent reports progress during a crawl operation.
type ProgressEvent struct {
	Type  ProgressType
	URL   string
	Depth int
	Error error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// Crawl fetches every root URL and the pages reachable from it within
// MaxDepth link hops, same host and path prefix. Pages that fail to
// fetch or extract are counted and skipped; the crawl continues. The
// progress callback, if provided, receives events as crawling proceeds.
func (c *Crawler) Crawl(ctx context.Context, roots []string, progress ProgressFunc) ([]*docrag.Document, *Result, error) {
	var docs []*docrag.Document
	var result Result

	// URLs collected under one root are not re-fetched under another.
	collected := make(map[string]bool)

	for _, root := range roots {
		if err := c.crawlRoot(ctx, root, collected, &docs, &result, progress); err != nil {
			return nil, nil, err
		}
		if ctx.Err() != nil {
			break
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished})
	}

	return docs, &result, nil
}

// crawlRoot walks the link graph under a single root URL.
func (c *Crawler) crawlRoot(ctx context.Context, root string, collected map[string]bool, docs *[]*docrag.Document, result *Result, progress ProgressFunc) error {
	rootURL, err := url.Parse(root)
	if err != nil {
		return fmt.Errorf("invalid root URL %q: %w", root, err)
	}
	pathPrefix := rootURL.Path

	maxDepth := c.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	maxPages := c.MaxPages
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}

	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	frontier.Push(docrag.DiscoveredLink{
		URL:      root,
		Priority: docrag.PriorityNavigation,
		Depth:    0,
	})

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, URL: root})
	}

	processed := 0
	for {
		link, ok := frontier.Pop()
		if !ok {
			break
		}
		if processed >= maxPages {
			break
		}

		if ctx.Err() != nil {
			break
		}

		// Duplicates across roots never count against the page budget.
		if collected[link.URL] {
			continue
		}
		processed++

		linkURL, err := url.Parse(link.URL)
		if err != nil {
			result.Failed++
			continue
		}
		if c.RateLimiter != nil {
			if err := c.RateLimiter.Wait(ctx, linkURL.Host); err != nil {
				break // context canceled
			}
		}

		delays := c.RetryDelays
		if delays == nil {
			delays = DefaultRetryDelays()
		}
		fetchFn := func(ctx context.Context, url string) (string, error) {
			return c.Fetcher.Fetch(ctx, url)
		}
		html, err := FetchWithRetry(ctx, link.URL, fetchFn, nil, delays)
		if err != nil {
			result.Failed++
			if progress != nil {
				progress(ProgressEvent{Type: ProgressFailed, URL: link.URL, Depth: link.Depth, Error: err})
			}
			continue
		}

		// Follow links while within the depth budget.
		if link.Depth < maxDepth {
			links, err := c.Links.ExtractLinks(html, link.URL)
			if err == nil {
				for _, discovered := range links {
					discoveredURL, err := url.Parse(discovered.URL)
					if err != nil {
						continue
					}
					if discoveredURL.Host != rootURL.Host {
						continue
					}
					if !strings.HasPrefix(discoveredURL.Path, pathPrefix) {
						continue
					}
					discovered.Depth = link.Depth + 1
					frontier.Push(discovered)
				}
			}
		}

		extracted, err := c.Extractor.Extract(html)
		if err != nil {
			result.Failed++
			if progress != nil {
				progress(ProgressEvent{Type: ProgressFailed, URL: link.URL, Depth: link.Depth, Error: err})
			}
			continue
		}
		if strings.TrimSpace(extracted.Text) == "" {
			result.Failed++
			if progress != nil {
				progress(ProgressEvent{
					Type: ProgressFailed, URL: link.URL, Depth: link.Depth,
					Error: docrag.Errorf(docrag.EINVALID, "page has no textual content"),
				})
			}
			continue
		}

		doc := &docrag.Document{
			SourceURL:   link.URL,
			Title:       extracted.Title,
			Content:     extracted.Text,
			ContentHash: ComputeHash(extracted.Text),
			FetchedAt:   time.Now().UTC(),
		}
		if c.TokenCounter != nil {
			if tokens, err := c.TokenCounter.CountTokens(ctx, extracted.Text); err == nil {
				doc.TokenCount = tokens
			}
		}

		collected[link.URL] = true
		*docs = append(*docs, doc)
		result.Saved++
		result.Bytes += len(extracted.Text)
		result.Tokens += doc.TokenCount

		if progress != nil {
			progress(ProgressEvent{Type: ProgressCompleted, URL: link.URL, Depth: link.Depth})
		}
	}

	return nil
}
