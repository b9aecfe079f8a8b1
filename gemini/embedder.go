package gemini

import (
	"context"

	"github.com/ragtools/docrag"
	"golang.org/x/sync/errgroup"
	"google.golang.org/genai"
)

// DefaultEmbedModel is the embedding model used when none is configured.
const DefaultEmbedModel = "gemini-embedding-001"

// maxBatchSize is the maximum number of texts sent in one EmbedContent
// call, per the API's request limits.
const maxBatchSize = 100

// embedConcurrency bounds concurrent embedding requests during a build.
const embedConcurrency = 4

// Task types distinguish index-side and query-side embeddings.
const (
	taskDocument = "RETRIEVAL_DOCUMENT"
	taskQuery    = "RETRIEVAL_QUERY"
)

// Ensure Embedder implements docrag.Embedder at compile time.
var _ docrag.Embedder = (*Embedder)(nil)

// Embedder implements docrag.Embedder using the Gemini embedding API.
type Embedder struct {
	client *genai.Client
	model  string
}

// EmbedderOption configures an Embedder.
type EmbedderOption func(*Embedder)

// WithModel overrides the embedding model.
// Defaults to DefaultEmbedModel.
func WithModel(model string) EmbedderOption {
	return func(e *Embedder) {
		e.model = model
	}
}

// NewEmbedder creates a new Embedder.
func NewEmbedder(client *genai.Client, opts ...EmbedderOption) *Embedder {
	e := &Embedder{
		client: client,
		model:  DefaultEmbedModel,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Model returns the embedding model in use.
func (e *Embedder) Model() string {
	return e.model
}

// EmbedDocuments embeds a batch of texts for storage in the index.
// Texts are sent in API-sized batches with bounded concurrency; the
// result preserves input order.
func (e *Embedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	vectors := make([][]float32, len(texts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(embedConcurrency)

	for start := 0; start < len(texts); start += maxBatchSize {
		start := start
		end := min(start+maxBatchSize, len(texts))
		g.Go(func() error {
			batch, err := e.embed(gctx, texts[start:end], taskDocument)
			if err != nil {
				return err
			}
			copy(vectors[start:end], batch)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return vectors, nil
}

// EmbedQuery embeds a search query.
func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, docrag.Errorf(docrag.EINVALID, "query text required")
	}

	vectors, err := e.embed(ctx, []string{text}, taskQuery)
	if err != nil {
		return nil, err
	}

	return vectors[0], nil
}

// embed calls the EmbedContent API for a batch of texts.
func (e *Embedder) embed(ctx context.Context, texts []string, taskType string) ([][]float32, error) {
	contents := make([]*genai.Content, len(texts))
	for i, text := range texts {
		contents[i] = genai.NewContentFromText(text, "user")
	}

	config := &genai.EmbedContentConfig{
		TaskType: taskType,
	}

	result, err := e.client.Models.EmbedContent(ctx, e.model, contents, config)
	if err != nil {
		return nil, err
	}
	if result == nil || len(result.Embeddings) != len(texts) {
		return nil, docrag.Errorf(docrag.EINTERNAL,
			"embedding API returned %d vectors for %d texts", embeddingCount(result), len(texts))
	}

	vectors := make([][]float32, len(texts))
	for i, emb := range result.Embeddings {
		vectors[i] = emb.Values
	}

	return vectors, nil
}

func embeddingCount(result *genai.EmbedContentResponse) int {
	if result == nil {
		return 0
	}
	return len(result.Embeddings)
}
