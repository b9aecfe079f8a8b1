// Package goquery provides CSS-selector based content and link extraction
// from documentation pages.
package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ragtools/docrag"
)

// DefaultContentSelector targets the main content node of MkDocs Material
// sites, the framework used by the documentation corpora this tool targets.
const DefaultContentSelector = "article.md-content__inner"

// Ensure Extractor implements docrag.Extractor at compile time.
var _ docrag.Extractor = (*Extractor)(nil)

// Extractor extracts main textual content from HTML using a CSS selector.
// When the selector matches nothing, it falls back to the text of the
// whole page rather than failing.
type Extractor struct {
	selector string
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithContentSelector overrides the CSS selector used to locate the main
// content node. Defaults to DefaultContentSelector.
func WithContentSelector(selector string) ExtractorOption {
	return func(e *Extractor) {
		e.selector = selector
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...ExtractorOption) *Extractor {
	e := &Extractor{selector: DefaultContentSelector}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// blankRuns matches runs of three or more newlines (possibly with
// intervening spaces) for collapsing into paragraph breaks.
var blankRuns = regexp.MustCompile(`\n[ \t]*\n[ \t\n]*`)

// Extract processes raw HTML and returns the main content as plain text.
// The title comes from the page <title> element, falling back to the
// first h1.
func (e *Extractor) Extract(html string) (*docrag.ExtractResult, error) {
	if strings.TrimSpace(html) == "" {
		return nil, docrag.Errorf(docrag.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, docrag.Errorf(docrag.EINVALID, "failed to parse HTML: %v", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}

	// Main content by selector, raw page text as fallback.
	var text string
	if sel := doc.Find(e.selector); sel.Length() > 0 {
		text = sel.First().Text()
	} else {
		text = doc.Find("body").Text()
		if text == "" {
			text = doc.Text()
		}
	}

	text = strings.TrimSpace(blankRuns.ReplaceAllString(text, "\n\n"))

	return &docrag.ExtractResult{
		Title: title,
		Text:  text,
	}, nil
}
