package docrag

import (
	"context"
	"time"
)

// Document represents a crawled documentation page.
// Documents are transient: they exist between crawling and chunking and
// are never persisted directly. Only chunks reach the index.
type Document struct {
	SourceURL   string    `json:"sourceUrl"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	ContentHash string    `json:"contentHash"`
	TokenCount  int       `json:"tokenCount"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.SourceURL == "" {
		return Errorf(EINVALID, "document source URL required")
	}
	if d.Content == "" {
		return Errorf(EINVALID, "document content required")
	}
	return nil
}

// DocumentStore persists crawled documents to storage with atomic
// semantics. Save writes to a temporary location; Commit makes changes
// permanent; Abort discards pending changes.
type DocumentStore interface {
	Save(ctx context.Context, doc *Document) error
	Commit() error
	Abort() error
}
