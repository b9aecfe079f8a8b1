// Package readability provides an Extractor built on go-readability's
// article extraction heuristics.
package readability

import (
	"strings"

	"github.com/go-shiori/go-readability"
	"github.com/ragtools/docrag"
)

// Ensure Extractor implements docrag.Extractor at compile time.
var _ docrag.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
// The article HTML readability identifies is converted to markdown.
type Extractor struct {
	conv docrag.Converter
}

// NewExtractor creates a new Extractor that renders extracted article
// HTML to text with the given converter.
func NewExtractor(conv docrag.Converter) *Extractor {
	return &Extractor{conv: conv}
}

// Extract processes raw HTML and returns the main content. When
// readability finds no article node, the plain text content of the page
// is returned instead, so pages never drop out of a crawl solely because
// boilerplate removal failed.
func (e *Extractor) Extract(rawHTML string) (*docrag.ExtractResult, error) {
	if rawHTML == "" {
		return nil, docrag.Errorf(docrag.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(article.Content) == "" {
		return &docrag.ExtractResult{
			Title: article.Title,
			Text:  strings.TrimSpace(article.TextContent),
		}, nil
	}

	markdown, err := e.conv.Convert(article.Content)
	if err != nil {
		return nil, err
	}

	return &docrag.ExtractResult{
		Title: article.Title,
		Text:  strings.TrimSpace(markdown),
	}, nil
}
