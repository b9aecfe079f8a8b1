package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/ragtools/docrag"
)

// Ensure LoggingIndexService implements docrag.IndexService.
var _ docrag.IndexService = (*LoggingIndexService)(nil)

// LoggingIndexService wraps an IndexService with operation logging.
type LoggingIndexService struct {
	next   docrag.IndexService
	logger *slog.Logger
}

// NewLoggingIndexService creates a new LoggingIndexService.
func NewLoggingIndexService(next docrag.IndexService, logger *slog.Logger) *LoggingIndexService {
	return &LoggingIndexService{next: next, logger: logger}
}

// Rebuild delegates to the wrapped service and logs the operation.
func (s *LoggingIndexService) Rebuild(ctx context.Context, chunks []*docrag.Chunk) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("index rebuild",
			"chunks", len(chunks),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Rebuild(ctx, chunks)
}

// Search delegates to the wrapped service and logs the operation.
func (s *LoggingIndexService) Search(ctx context.Context, query string, k int) (results []docrag.SearchResult, err error) {
	defer func(begin time.Time) {
		s.logger.Info("index search",
			"query", query,
			"k", k,
			"results", len(results),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, query, k)
}

// Count delegates to the wrapped service.
func (s *LoggingIndexService) Count(ctx context.Context) (int, error) {
	return s.next.Count(ctx)
}
