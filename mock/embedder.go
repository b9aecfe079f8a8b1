package mock

import (
	"context"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/ragtools/docrag"
)

var _ docrag.Embedder = (*Embedder)(nil)

// Embedder is a mock implementation of docrag.Embedder.
type Embedder struct {
	EmbedDocumentsFn func(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQueryFn     func(ctx context.Context, text string) ([]float32, error)
}

func (e *Embedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	return e.EmbedDocumentsFn(ctx, texts)
}

func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return e.EmbedQueryFn(ctx, text)
}

// HashEmbedder returns an Embedder producing deterministic vectors of the
// given dimension from a hash of the text. Identical texts embed
// identically, so exact-match queries rank their source chunk first.
func HashEmbedder(dim int) *Embedder {
	embed := func(text string) []float32 {
		v := make([]float32, dim)
		seed := xxhash.Sum64String(text)
		for i := range v {
			seed = seed*6364136223846793005 + 1442695040888963407
			v[i] = float32(math.Sin(float64(seed % 10007)))
		}
		return v
	}

	return &Embedder{
		EmbedDocumentsFn: func(_ context.Context, texts []string) ([][]float32, error) {
			vectors := make([][]float32, len(texts))
			for i, text := range texts {
				vectors[i] = embed(text)
			}
			return vectors, nil
		},
		EmbedQueryFn: func(_ context.Context, text string) ([]float32, error) {
			return embed(text), nil
		},
	}
}
