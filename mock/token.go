package mock

import (
	"context"
	"strings"

	"github.com/ragtools/docrag"
)

var _ docrag.TokenCounter = (*TokenCounter)(nil)

// TokenCounter is a mock implementation of docrag.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return tc.CountTokensFn(ctx, text)
}

// WordCounter returns a TokenCounter that treats each whitespace-separated
// word as one token. Useful for deterministic chunking tests.
func WordCounter() *TokenCounter {
	return &TokenCounter{
		CountTokensFn: func(_ context.Context, text string) (int, error) {
			return len(strings.Fields(text)), nil
		},
	}
}

var _ docrag.Splitter = (*Splitter)(nil)

// Splitter is a mock implementation of docrag.Splitter.
type Splitter struct {
	SplitFn func(ctx context.Context, docs []*docrag.Document) ([]*docrag.Chunk, error)
}

func (s *Splitter) Split(ctx context.Context, docs []*docrag.Document) ([]*docrag.Chunk, error) {
	return s.SplitFn(ctx, docs)
}
