package docrag

import "context"

// Embedder converts text into numeric vectors for similarity comparison.
type Embedder interface {
	// EmbedDocuments embeds a batch of texts for storage in the index.
	// The result has one vector per input text, in input order.
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedQuery embeds a search query. Query embeddings may use a
	// different task type than document embeddings.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}
