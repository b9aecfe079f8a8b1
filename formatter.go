package docrag

import (
	"fmt"
	"strings"
)

// FormatResults renders search results as numbered document blocks for
// consumption by an LLM or a human reader. Each result is prefixed with a
// "==DOCUMENT i==" separator; blocks are joined by blank lines.
func FormatResults(results []SearchResult) string {
	if len(results) == 0 {
		return ""
	}

	parts := make([]string, 0, len(results))
	for i, r := range results {
		parts = append(parts, fmt.Sprintf("==DOCUMENT %d==\n%s", i+1, r.Chunk.Content))
	}

	return strings.Join(parts, "\n\n")
}
