package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ragtools/docrag"
)

// SelectorConfig defines a CSS selector with its priority and source label.
type SelectorConfig struct {
	Selector string
	Priority docrag.LinkPriority
	Source   string
}

// defaultSelectorConfigs covers the navigation structures of common
// documentation frameworks, with MkDocs Material first.
var defaultSelectorConfigs = []SelectorConfig{
	{Selector: "nav a[href]", Priority: docrag.PriorityNavigation, Source: "nav"},
	{Selector: ".md-nav a[href]", Priority: docrag.PriorityNavigation, Source: "nav"},
	{Selector: "aside a[href]", Priority: docrag.PriorityNavigation, Source: "nav"},
	{Selector: "article a[href]", Priority: docrag.PriorityContent, Source: "content"},
	{Selector: "main a[href]", Priority: docrag.PriorityContent, Source: "content"},
}

// Ensure LinkExtractor implements docrag.LinkExtractor at compile time.
var _ docrag.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor extracts prioritized same-host links from HTML.
// Nav and sidebar links carry higher priority than in-content links;
// any remaining anchor is picked up as a low-priority fallback so sites
// with non-semantic markup still get crawled.
type LinkExtractor struct {
	configs []SelectorConfig
}

// NewLinkExtractor creates a LinkExtractor with the default selector set.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{configs: defaultSelectorConfigs}
}

// NewLinkExtractorWithConfigs creates a LinkExtractor with custom selectors.
func NewLinkExtractorWithConfigs(configs []SelectorConfig) *LinkExtractor {
	return &LinkExtractor{configs: configs}
}

// ExtractLinks parses HTML and returns discovered links with priority.
// Links are deduplicated by URL, keeping the highest priority version.
// External links (different host than baseURL) are filtered out.
// The returned links maintain document order based on first occurrence.
func (x *LinkExtractor) ExtractLinks(html string, baseURL string) ([]docrag.DiscoveredLink, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, docrag.Errorf(docrag.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, docrag.Errorf(docrag.EINVALID, "failed to parse HTML: %v", err)
	}

	// Track seen URLs with their index in the result slice for O(1) updates.
	seen := make(map[string]int)
	var links []docrag.DiscoveredLink

	collect := func(selector string, priority docrag.LinkPriority, source string) {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			href, exists := sel.Attr("href")
			if !exists || href == "" {
				return
			}

			if isNonHTTPLink(href) {
				return
			}

			resolved := resolveURL(base, href)
			if resolved == "" {
				return
			}

			if !isSameHost(base, resolved) {
				return
			}

			link := docrag.DiscoveredLink{
				URL:      resolved,
				Priority: priority,
				Text:     strings.TrimSpace(sel.Text()),
				Source:   source,
			}

			if idx, ok := seen[resolved]; ok {
				if priority > links[idx].Priority {
					links[idx] = link
				}
			} else {
				seen[resolved] = len(links)
				links = append(links, link)
			}
		})
	}

	for _, config := range x.configs {
		collect(config.Selector, config.Priority, config.Source)
	}

	// Fallback pass: any anchor under the base URL path prefix. Links
	// already found via semantic selectors keep their higher priority
	// through the deduplication logic. This ensures sites with
	// non-semantic HTML still get their links discovered.
	basePath := base.Path
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return
		}

		if isNonHTTPLink(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" {
			return
		}

		if !isSameHost(base, resolved) {
			return
		}

		resolvedURL, err := url.Parse(resolved)
		if err != nil {
			return
		}
		if basePath != "" && !strings.HasPrefix(resolvedURL.Path, basePath) {
			return
		}

		if _, ok := seen[resolved]; ok {
			return
		}
		seen[resolved] = len(links)
		links = append(links, docrag.DiscoveredLink{
			URL:      resolved,
			Priority: docrag.PriorityFallback,
			Text:     strings.TrimSpace(sel.Text()),
			Source:   "fallback",
		})
	})

	return links, nil
}

// resolveURL resolves a relative URL against a base URL.
// Returns empty string if the href cannot be parsed or points back at the
// base URL itself. Fragments are stripped for deduplication.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""

	result := resolved.String()
	baseNoFragment := *base
	baseNoFragment.Fragment = ""
	if result == baseNoFragment.String() {
		return ""
	}
	return result
}

// isSameHost checks if the resolved URL has the same host as the base URL.
// Exact host matching - subdomains are considered different hosts.
func isSameHost(base *url.URL, resolved string) bool {
	u, err := url.Parse(resolved)
	if err != nil {
		return false
	}
	return u.Host == base.Host
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
