// Package fs provides file-based storage for crawled documentation.
package fs

import (
	"net/url"
	"strings"

	"github.com/ragtools/docrag"
)

// URLToPath converts a documentation URL to a relative file path.
// Example: https://example.com/docs/api/users → docs/api/users.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	path := u.Path

	// Handle root or trailing slash → index.md
	if path == "" || path == "/" {
		return "index.md", nil
	}

	// Remove leading slash
	path = strings.TrimPrefix(path, "/")

	// Trailing slash becomes index.md in that directory
	if strings.HasSuffix(path, "/") {
		return path + "index.md", nil
	}

	// Otherwise append .md
	return path + ".md", nil
}

// FormatDocument formats a document with YAML frontmatter.
func FormatDocument(doc *docrag.Document) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(doc.SourceURL)
	b.WriteString("\ntitle: ")
	b.WriteString(doc.Title)
	b.WriteString("\ncrawled: ")
	b.WriteString(doc.FetchedAt.Format("2006-01-02"))
	b.WriteString("\n---\n\n")
	b.WriteString(doc.Content)
	return b.String()
}
