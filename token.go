package docrag

import "context"

// TokenCounter counts tokens in text for a specific model.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}

// Splitter splits documents into token-bounded chunks.
type Splitter interface {
	// Split breaks each document into chunks no longer than the
	// configured token budget, with consecutive chunks overlapping.
	// Chunk positions are assigned in corpus order.
	Split(ctx context.Context, docs []*Document) ([]*Chunk, error)
}
