package docrag

// ExtractResult holds the main textual content extracted from an HTML page.
type ExtractResult struct {
	// Title is the page title, when one can be determined.
	Title string

	// Text is the main content as plain text or markdown, with
	// boilerplate (nav, footer, sidebar) removed where possible.
	Text string
}

// Extractor extracts main textual content from HTML pages.
// When no main content node can be identified, implementations fall back
// to the raw page text rather than failing.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}

// Converter converts HTML to Markdown. Used by extractors that produce
// clean HTML rather than plain text.
type Converter interface {
	Convert(html string) (string, error)
}
