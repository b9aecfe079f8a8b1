package mock

import "github.com/ragtools/docrag"

var _ docrag.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of docrag.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*docrag.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*docrag.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ docrag.Converter = (*Converter)(nil)

// Converter is a mock implementation of docrag.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ docrag.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of docrag.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html string, baseURL string) ([]docrag.DiscoveredLink, error)
}

func (l *LinkExtractor) ExtractLinks(html string, baseURL string) ([]docrag.DiscoveredLink, error) {
	return l.ExtractLinksFn(html, baseURL)
}
