package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/ragtools/docrag"
)

// Compile-time interface verification.
var _ docrag.IndexService = (*IndexService)(nil)

// IndexService implements docrag.IndexService using SQLite. Chunk
// embeddings are stored as little-endian float32 blobs and search is a
// brute-force cosine similarity scan, which is fine at documentation
// scale (thousands of chunks, not millions).
type IndexService struct {
	db       *DB
	embedder docrag.Embedder
}

// NewIndexService creates a new IndexService.
func NewIndexService(db *DB, embedder docrag.Embedder) *IndexService {
	return &IndexService{db: db, embedder: embedder}
}

// Rebuild replaces the entire index with embeddings for the given chunks.
// An empty chunk set produces an empty index: every record from the
// previous build is removed.
func (s *IndexService) Rebuild(ctx context.Context, chunks []*docrag.Chunk) error {
	for _, chunk := range chunks {
		if err := chunk.Validate(); err != nil {
			return err
		}
	}

	var vectors [][]float32
	dimension := 0
	if len(chunks) > 0 {
		texts := make([]string, len(chunks))
		for i, chunk := range chunks {
			texts[i] = chunk.Content
		}

		var err error
		vectors, err = s.embedder.EmbedDocuments(ctx, texts)
		if err != nil {
			return err
		}
		if len(vectors) != len(chunks) {
			return docrag.Errorf(docrag.EINTERNAL, "embedder returned %d vectors for %d chunks", len(vectors), len(chunks))
		}

		dimension = len(vectors[0])
		for i, vec := range vectors {
			if len(vec) != dimension {
				return docrag.Errorf(docrag.EINTERNAL, "inconsistent embedding dimension: chunk %d has %d, expected %d", i, len(vec), dimension)
			}
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM chunks"); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM index_meta"); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, source_url, title, content, token_count, position, embedding)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, chunk := range chunks {
		chunk.ID = uuid.New().String()
		if _, err := stmt.ExecContext(ctx, chunk.ID, chunk.SourceURL, chunk.Title,
			chunk.Content, chunk.TokenCount, chunk.Position, encodeVector(vectors[i])); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO index_meta (id, dimension, built_at) VALUES (1, ?, ?)
	`, dimension, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}

	return tx.Commit()
}

// Search embeds the query and returns the k most similar chunks by
// cosine similarity, best first.
func (s *IndexService) Search(ctx context.Context, query string, k int) ([]docrag.SearchResult, error) {
	if query == "" {
		return nil, docrag.Errorf(docrag.EINVALID, "query is required")
	}
	if k <= 0 {
		return nil, docrag.Errorf(docrag.EINVALID, "k must be positive, got %d", k)
	}

	var dimension int
	err := s.db.QueryRowContext(ctx, "SELECT dimension FROM index_meta WHERE id = 1").Scan(&dimension)
	if err == sql.ErrNoRows {
		return nil, docrag.Errorf(docrag.ENOTFOUND, "no documentation index has been built")
	}
	if err != nil {
		return nil, err
	}

	queryVec, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source_url, title, content, token_count, position, embedding
		FROM chunks
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []docrag.SearchResult
	for rows.Next() {
		var chunk docrag.Chunk
		var blob []byte

		if err := rows.Scan(&chunk.ID, &chunk.SourceURL, &chunk.Title, &chunk.Content,
			&chunk.TokenCount, &chunk.Position, &blob); err != nil {
			return nil, err
		}

		results = append(results, docrag.SearchResult{
			Chunk: &chunk,
			Score: docrag.Cosine(queryVec, decodeVector(blob)),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// Count returns the number of chunks in the index.
func (s *IndexService) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks").Scan(&count)
	return count, err
}

// encodeVector serializes a vector as little-endian float32 bytes.
func encodeVector(vec []float32) []byte {
	buf := make([]byte, 4*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(v))
	}
	return buf
}

// decodeVector deserializes little-endian float32 bytes into a vector.
func decodeVector(buf []byte) []float32 {
	vec := make([]float32, len(buf)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[4*i:]))
	}
	return vec
}
