package sqlite

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/ragtools/docrag"
)

// Compile-time interface verification.
var _ docrag.IndexService = (*ReloadingIndex)(nil)

// ReloadingIndex implements docrag.IndexService by opening the index
// file fresh on every call. Searches always see the latest build, even
// when a rebuild happened in another process while a server is running.
type ReloadingIndex struct {
	Path     string
	Embedder docrag.Embedder
}

// NewReloadingIndex creates an index backed by the database file at path.
func NewReloadingIndex(path string, embedder docrag.Embedder) *ReloadingIndex {
	return &ReloadingIndex{Path: path, Embedder: embedder}
}

// Rebuild replaces the index file contents, creating the file if needed.
func (r *ReloadingIndex) Rebuild(ctx context.Context, chunks []*docrag.Chunk) error {
	db := NewDB(r.Path)
	if err := db.Open(); err != nil {
		return err
	}
	defer db.Close()

	return NewIndexService(db, r.Embedder).Rebuild(ctx, chunks)
}

// Search opens the index file and searches it. Returns ENOTFOUND when
// the index file does not exist yet.
func (r *ReloadingIndex) Search(ctx context.Context, query string, k int) ([]docrag.SearchResult, error) {
	if err := r.stat(); err != nil {
		return nil, err
	}

	db := NewDB(r.Path)
	if err := db.Open(); err != nil {
		return nil, err
	}
	defer db.Close()

	return NewIndexService(db, r.Embedder).Search(ctx, query, k)
}

// Count opens the index file and reports how many chunks it holds.
func (r *ReloadingIndex) Count(ctx context.Context) (int, error) {
	if err := r.stat(); err != nil {
		return 0, err
	}

	db := NewDB(r.Path)
	if err := db.Open(); err != nil {
		return 0, err
	}
	defer db.Close()

	return NewIndexService(db, r.Embedder).Count(ctx)
}

func (r *ReloadingIndex) stat() error {
	if _, err := os.Stat(r.Path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return docrag.Errorf(docrag.ENOTFOUND, "no index at %q: run 'docrag build' first", r.Path)
		}
		return err
	}
	return nil
}
