package mock

import (
	"context"

	"github.com/ragtools/docrag"
)

var _ docrag.IndexService = (*IndexService)(nil)

// IndexService is a mock implementation of docrag.IndexService.
type IndexService struct {
	RebuildFn func(ctx context.Context, chunks []*docrag.Chunk) error
	SearchFn  func(ctx context.Context, query string, k int) ([]docrag.SearchResult, error)
	CountFn   func(ctx context.Context) (int, error)
}

func (s *IndexService) Rebuild(ctx context.Context, chunks []*docrag.Chunk) error {
	return s.RebuildFn(ctx, chunks)
}

func (s *IndexService) Search(ctx context.Context, query string, k int) ([]docrag.SearchResult, error) {
	return s.SearchFn(ctx, query, k)
}

func (s *IndexService) Count(ctx context.Context) (int, error) {
	return s.CountFn(ctx)
}
