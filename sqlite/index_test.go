package sqlite_test

import (
	"context"
	"testing"

	"github.com/ragtools/docrag"
	"github.com/ragtools/docrag/mock"
	"github.com/ragtools/docrag/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustOpenDB(t *testing.T) *sqlite.DB {
	t.Helper()

	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func testChunks() []*docrag.Chunk {
	return []*docrag.Chunk{
		{
			SourceURL:  "https://example.com/docs/graphs",
			Title:      "Graphs",
			Content:    "Graphs are composed of nodes and edges.",
			TokenCount: 8,
			Position:   0,
		},
		{
			SourceURL:  "https://example.com/docs/state",
			Title:      "State",
			Content:    "State is passed between nodes as a typed dictionary.",
			TokenCount: 10,
			Position:   1,
		},
		{
			SourceURL:  "https://example.com/docs/checkpoints",
			Title:      "Checkpoints",
			Content:    "Checkpoints persist graph state across invocations.",
			TokenCount: 7,
			Position:   2,
		},
		{
			SourceURL:  "https://example.com/docs/streaming",
			Title:      "Streaming",
			Content:    "Streaming emits intermediate results as the graph runs.",
			TokenCount: 9,
			Position:   3,
		},
	}
}

func TestIndexService_Rebuild(t *testing.T) {
	t.Parallel()

	t.Run("stores all chunks with generated IDs", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		svc := sqlite.NewIndexService(mustOpenDB(t), mock.HashEmbedder(16))

		chunks := testChunks()
		require.NoError(t, svc.Rebuild(ctx, chunks))

		count, err := svc.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, len(chunks), count)

		for _, chunk := range chunks {
			assert.NotEmpty(t, chunk.ID)
		}
	})

	t.Run("replaces previous contents entirely", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		svc := sqlite.NewIndexService(mustOpenDB(t), mock.HashEmbedder(16))

		require.NoError(t, svc.Rebuild(ctx, testChunks()))
		require.NoError(t, svc.Rebuild(ctx, testChunks()[:2]))

		count, err := svc.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("empty corpus builds an empty index", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		svc := sqlite.NewIndexService(mustOpenDB(t), mock.HashEmbedder(16))

		require.NoError(t, svc.Rebuild(ctx, testChunks()))
		require.NoError(t, svc.Rebuild(ctx, nil))

		count, err := svc.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, count)

		// Querying an empty index yields zero results, not an error.
		results, err := svc.Search(ctx, "anything", 3)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("rejects invalid chunks", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewIndexService(mustOpenDB(t), mock.HashEmbedder(16))

		err := svc.Rebuild(context.Background(), []*docrag.Chunk{{SourceURL: "https://example.com"}})
		require.Error(t, err)
		assert.Equal(t, docrag.EINVALID, docrag.ErrorCode(err))
	})
}

func TestIndexService_Search(t *testing.T) {
	t.Parallel()

	t.Run("ranks the exact-match chunk first", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		svc := sqlite.NewIndexService(mustOpenDB(t), mock.HashEmbedder(16))

		chunks := testChunks()
		require.NoError(t, svc.Rebuild(ctx, chunks))

		// The hash embedder maps identical text to identical vectors,
		// so querying with a chunk's own content scores it 1.0.
		results, err := svc.Search(ctx, chunks[2].Content, 3)
		require.NoError(t, err)
		require.Len(t, results, 3)

		assert.Equal(t, chunks[2].Content, results[0].Chunk.Content)
		assert.InDelta(t, 1.0, results[0].Score, 1e-6)
		assert.GreaterOrEqual(t, results[0].Score, results[1].Score)
		assert.GreaterOrEqual(t, results[1].Score, results[2].Score)
	})

	t.Run("returns fewer than k when the index is small", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		svc := sqlite.NewIndexService(mustOpenDB(t), mock.HashEmbedder(16))

		require.NoError(t, svc.Rebuild(ctx, testChunks()[:2]))

		results, err := svc.Search(ctx, "checkpoints", 3)
		require.NoError(t, err)
		assert.Len(t, results, 2)
	})

	t.Run("returns ENOTFOUND before any build", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewIndexService(mustOpenDB(t), mock.HashEmbedder(16))

		_, err := svc.Search(context.Background(), "anything", 3)
		require.Error(t, err)
		assert.Equal(t, docrag.ENOTFOUND, docrag.ErrorCode(err))
	})

	t.Run("rejects an empty query", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewIndexService(mustOpenDB(t), mock.HashEmbedder(16))

		_, err := svc.Search(context.Background(), "", 3)
		require.Error(t, err)
		assert.Equal(t, docrag.EINVALID, docrag.ErrorCode(err))
	})
}

func TestReloadingIndex(t *testing.T) {
	t.Parallel()

	t.Run("build then search round-trips through the file", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		path := t.TempDir() + "/index.db"
		embedder := mock.HashEmbedder(16)

		builder := sqlite.NewReloadingIndex(path, embedder)
		chunks := testChunks()
		require.NoError(t, builder.Rebuild(ctx, chunks))

		// A separate instance sees the build, as a server process would.
		searcher := sqlite.NewReloadingIndex(path, embedder)
		results, err := searcher.Search(ctx, chunks[0].Content, 3)
		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.Equal(t, chunks[0].Content, results[0].Chunk.Content)

		count, err := searcher.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, len(chunks), count)
	})

	t.Run("search on a missing file returns ENOTFOUND", func(t *testing.T) {
		t.Parallel()

		idx := sqlite.NewReloadingIndex(t.TempDir()+"/absent.db", mock.HashEmbedder(16))

		_, err := idx.Search(context.Background(), "anything", 3)
		require.Error(t, err)
		assert.Equal(t, docrag.ENOTFOUND, docrag.ErrorCode(err))
		assert.Contains(t, docrag.ErrorMessage(err), "docrag build")
	})

	t.Run("count on a missing file returns ENOTFOUND", func(t *testing.T) {
		t.Parallel()

		idx := sqlite.NewReloadingIndex(t.TempDir()+"/absent.db", mock.HashEmbedder(16))

		_, err := idx.Count(context.Background())
		require.Error(t, err)
		assert.Equal(t, docrag.ENOTFOUND, docrag.ErrorCode(err))
	})

	t.Run("rebuild picks up changes for later searches", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		path := t.TempDir() + "/index.db"
		embedder := mock.HashEmbedder(16)
		idx := sqlite.NewReloadingIndex(path, embedder)

		require.NoError(t, idx.Rebuild(ctx, testChunks()))
		require.NoError(t, idx.Rebuild(ctx, testChunks()[:1]))

		count, err := idx.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}
