// Package trafilatura provides a boilerplate-removing implementation of
// docrag.Extractor for documentation sites without a known content
// selector.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"github.com/ragtools/docrag"
	"golang.org/x/net/html"
)

// Ensure Extractor implements docrag.Extractor at compile time.
var _ docrag.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
// The content node is converted to Markdown via the configured converter.
// When trafilatura cannot identify a content node, the extractor falls
// back to the plain text of the whole page.
type Extractor struct {
	conv docrag.Converter
}

// NewExtractor creates a new Extractor using conv to turn extracted
// content HTML into Markdown.
func NewExtractor(conv docrag.Converter) *Extractor {
	return &Extractor{conv: conv}
}

// Extract processes raw HTML and returns the main content as Markdown.
func (e *Extractor) Extract(rawHTML string) (*docrag.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, docrag.Errorf(docrag.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil || result.ContentNode == nil {
		// No identifiable content node: fall back to the raw page text.
		text, textErr := pageText(rawHTML)
		if textErr != nil {
			return nil, textErr
		}
		return &docrag.ExtractResult{Text: text}, nil
	}

	contentHTML, err := renderNode(result.ContentNode)
	if err != nil {
		return nil, err
	}

	markdown, err := e.conv.Convert(contentHTML)
	if err != nil {
		return nil, err
	}

	return &docrag.ExtractResult{
		Title: result.Metadata.Title,
		Text:  strings.TrimSpace(markdown),
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// pageText returns the concatenated text content of the whole page.
func pageText(rawHTML string) (string, error) {
	root, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return strings.TrimSpace(sb.String()), nil
}
