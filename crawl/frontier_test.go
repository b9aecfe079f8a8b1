package crawl_test

import (
	"fmt"
	"testing"

	"github.com/ragtools/docrag"
	"github.com/ragtools/docrag/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrontier_Push(t *testing.T) {
	t.Parallel()

	t.Run("accepts new URLs and rejects duplicates", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier(100, 0.01)

		assert.True(t, f.Push(docrag.DiscoveredLink{URL: "https://example.com/a"}))
		assert.False(t, f.Push(docrag.DiscoveredLink{URL: "https://example.com/a"}))
		assert.Equal(t, 1, f.Len())
	})

	t.Run("treats URLs differing only by fragment as duplicates", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier(100, 0.01)

		assert.True(t, f.Push(docrag.DiscoveredLink{URL: "https://example.com/a#intro"}))
		assert.False(t, f.Push(docrag.DiscoveredLink{URL: "https://example.com/a#usage"}))
		assert.True(t, f.Seen("https://example.com/a"))

		link, ok := f.Pop()
		require.True(t, ok)
		assert.Equal(t, "https://example.com/a", link.URL)
	})
}

func TestFrontier_Pop(t *testing.T) {
	t.Parallel()

	t.Run("returns links in priority order", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier(100, 0.01)
		f.Push(docrag.DiscoveredLink{URL: "https://example.com/fallback", Priority: docrag.PriorityFallback})
		f.Push(docrag.DiscoveredLink{URL: "https://example.com/nav", Priority: docrag.PriorityNavigation})
		f.Push(docrag.DiscoveredLink{URL: "https://example.com/content", Priority: docrag.PriorityContent})

		var urls []string
		for {
			link, ok := f.Pop()
			if !ok {
				break
			}
			urls = append(urls, link.URL)
		}

		assert.Equal(t, []string{
			"https://example.com/nav",
			"https://example.com/content",
			"https://example.com/fallback",
		}, urls)
	})

	t.Run("prefers shallower links at equal priority", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier(100, 0.01)
		f.Push(docrag.DiscoveredLink{URL: "https://example.com/deep", Priority: docrag.PriorityContent, Depth: 3})
		f.Push(docrag.DiscoveredLink{URL: "https://example.com/shallow", Priority: docrag.PriorityContent, Depth: 1})

		link, ok := f.Pop()
		require.True(t, ok)
		assert.Equal(t, "https://example.com/shallow", link.URL)
	})

	t.Run("returns false when empty", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier(100, 0.01)
		_, ok := f.Pop()
		assert.False(t, ok)
	})
}

func TestFrontier_Seen(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000, 0.01)

	for i := 0; i < 100; i++ {
		f.Push(docrag.DiscoveredLink{URL: fmt.Sprintf("https://example.com/page-%d", i)})
	}

	for i := 0; i < 100; i++ {
		assert.True(t, f.Seen(fmt.Sprintf("https://example.com/page-%d", i)))
	}
	assert.False(t, f.Seen("https://example.com/never-pushed"))
}
