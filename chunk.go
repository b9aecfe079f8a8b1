package docrag

import "context"

// Chunk represents a token-bounded slice of a document's text.
// Chunks are the retrieval unit: they are embedded, persisted in the
// index, and returned by searches.
type Chunk struct {
	ID         string `json:"id"`
	SourceURL  string `json:"sourceUrl"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	TokenCount int    `json:"tokenCount"`

	// Position is the chunk's ordinal within the full build, preserving
	// document order across the corpus.
	Position int `json:"position"`
}

// Validate returns an error if the chunk contains invalid fields.
func (c *Chunk) Validate() error {
	if c.SourceURL == "" {
		return Errorf(EINVALID, "chunk source URL required")
	}
	if c.Content == "" {
		return Errorf(EINVALID, "chunk content required")
	}
	return nil
}

// SearchResult represents a chunk matched by a similarity search.
type SearchResult struct {
	Chunk *Chunk  `json:"chunk"`
	Score float64 `json:"score"`
}

// IndexService is a persisted, similarity-searchable collection of
// embedded chunks. The index supports no update or delete operations;
// the only mutation is a full rebuild.
type IndexService interface {
	// Rebuild embeds the given chunks and replaces the entire index
	// with them. Chunks receive IDs during the rebuild.
	Rebuild(ctx context.Context, chunks []*Chunk) error

	// Search embeds the query and returns up to k chunks ordered by
	// descending similarity. Returns ENOTFOUND if no index has been
	// built yet.
	Search(ctx context.Context, query string, k int) ([]SearchResult, error)

	// Count returns the number of persisted chunks.
	// Returns ENOTFOUND if no index has been built yet.
	Count(ctx context.Context) (int, error)
}
