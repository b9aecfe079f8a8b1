package main_test

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ragtools/docrag"
	main "github.com/ragtools/docrag/cmd/docrag"
	"github.com/ragtools/docrag/crawl"
	"github.com/ragtools/docrag/mock"
	"github.com/ragtools/docrag/split"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSiteCrawler returns a crawler backed by an in-memory site so build
// runs without a network.
func fakeSiteCrawler(pages map[string]string) *crawl.Crawler {
	return &crawl.Crawler{
		Fetcher: &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				page, ok := pages[url]
				if !ok {
					return "", fmt.Errorf("HTTP 404 for %s", url)
				}
				return page, nil
			},
		},
		Extractor: &mock.Extractor{
			ExtractFn: func(html string) (*docrag.ExtractResult, error) {
				return &docrag.ExtractResult{Title: "Page", Text: html}, nil
			},
		},
		Links: &mock.LinkExtractor{
			ExtractLinksFn: func(string, string) ([]docrag.DiscoveredLink, error) { return nil, nil },
		},
		TokenCounter: mock.WordCounter(),
		RateLimiter:  crawl.NewDomainLimiter(10000),
		RetryDelays:  []time.Duration{time.Millisecond},
	}
}

func TestBuildCmd(t *testing.T) {
	t.Parallel()

	t.Run("crawls, splits, and rebuilds the index", func(t *testing.T) {
		t.Parallel()

		var rebuilt []*docrag.Chunk
		m := main.NewMain()
		m.Logger = discardLogger()
		m.Crawler = fakeSiteCrawler(map[string]string{
			"https://example.com/docs/concepts/why":     "graphs model agent workflows as nodes and edges",
			"https://example.com/docs/concepts/state":   "state flows between nodes during execution",
			"https://example.com/docs/how-tos/streaming": "streaming surfaces intermediate node results",
		})
		m.Splitter = split.NewRecursiveSplitter(mock.WordCounter(),
			split.WithChunkSize(50), split.WithChunkOverlap(5))
		m.Index = &mock.IndexService{
			RebuildFn: func(_ context.Context, chunks []*docrag.Chunk) error {
				rebuilt = chunks
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		path := writeManifest(t, testManifest)
		err := m.Run(context.Background(), []string{"build", path}, stdout, stderr)
		require.NoError(t, err)

		require.Len(t, rebuilt, 3)
		out := stdout.String()
		assert.Contains(t, out, "Crawling 3 root URLs")
		assert.Contains(t, out, "Crawled 3 pages")
		assert.Contains(t, out, "Split into 3 chunks")
		assert.Contains(t, out, "Indexed 3 chunks")
	})

	t.Run("empty manifest builds an empty index", func(t *testing.T) {
		t.Parallel()

		var rebuilt []*docrag.Chunk
		rebuildCalled := false
		m := main.NewMain()
		m.Logger = discardLogger()
		m.Crawler = fakeSiteCrawler(nil)
		m.Splitter = split.NewRecursiveSplitter(mock.WordCounter())
		m.Index = &mock.IndexService{
			RebuildFn: func(_ context.Context, chunks []*docrag.Chunk) error {
				rebuildCalled = true
				rebuilt = chunks
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		path := writeManifest(t, "categories: {}\n")
		err := m.Run(context.Background(), []string{"build", path}, stdout, &bytes.Buffer{})
		require.NoError(t, err)

		assert.True(t, rebuildCalled)
		assert.Empty(t, rebuilt)
		assert.Contains(t, stdout.String(), "has no URLs")
	})

	t.Run("pages-dir dumps crawled pages as markdown", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.Logger = discardLogger()
		m.Crawler = fakeSiteCrawler(map[string]string{
			"https://example.com/docs/concepts/why":     "graphs model agent workflows",
			"https://example.com/docs/concepts/state":   "state flows between nodes",
			"https://example.com/docs/how-tos/streaming": "streaming surfaces results",
		})
		m.Splitter = split.NewRecursiveSplitter(mock.WordCounter())
		m.Index = &mock.IndexService{
			RebuildFn: func(context.Context, []*docrag.Chunk) error { return nil },
		}

		pagesDir := filepath.Join(t.TempDir(), "pages")
		stdout := &bytes.Buffer{}

		path := writeManifest(t, testManifest)
		err := m.Run(context.Background(),
			[]string{"build", path, "--pages-dir", pagesDir}, stdout, &bytes.Buffer{})
		require.NoError(t, err)

		assert.Contains(t, stdout.String(), "Wrote 3 pages to "+pagesDir)

		data, err := os.ReadFile(filepath.Join(pagesDir, "docs", "concepts", "why.md"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "source: https://example.com/docs/concepts/why")
		assert.Contains(t, string(data), "graphs model agent workflows")

		// No temp directory left behind after commit.
		_, err = os.Stat(pagesDir + ".tmp")
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("failed pages are reported but do not abort the build", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.Logger = discardLogger()
		// Only one of the three manifest URLs resolves.
		m.Crawler = fakeSiteCrawler(map[string]string{
			"https://example.com/docs/concepts/why": "graphs model workflows",
		})
		m.Splitter = split.NewRecursiveSplitter(mock.WordCounter())
		m.Index = &mock.IndexService{
			RebuildFn: func(context.Context, []*docrag.Chunk) error { return nil },
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		path := writeManifest(t, testManifest)
		err := m.Run(context.Background(), []string{"build", path}, stdout, stderr)
		require.NoError(t, err)

		assert.Contains(t, stdout.String(), "Crawled 1 pages")
		assert.Contains(t, stdout.String(), "2 failed")
		assert.Contains(t, stderr.String(), "skip https://example.com/docs/concepts/state")
	})
}
