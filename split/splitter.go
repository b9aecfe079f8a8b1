// Package split provides recursive character text splitting bounded by
// token counts. Text is split on progressively finer separators
// (paragraphs, lines, words, characters) and the pieces are merged back
// into chunks that fit the token budget, with consecutive chunks
// overlapping by a configurable number of tokens.
package split

import (
	"context"
	"strings"

	"github.com/ragtools/docrag"
)

// Default chunking parameters, in tokens.
const (
	DefaultChunkSize    = 8000
	DefaultChunkOverlap = 500
)

// defaultSeparators orders split points from coarsest to finest.
var defaultSeparators = []string{"\n\n", "\n", " ", ""}

// Ensure RecursiveSplitter implements docrag.Splitter at compile time.
var _ docrag.Splitter = (*RecursiveSplitter)(nil)

// RecursiveSplitter splits documents into token-bounded overlapping chunks.
type RecursiveSplitter struct {
	chunkSize    int
	chunkOverlap int
	counter      docrag.TokenCounter
	separators   []string
}

// Option configures a RecursiveSplitter.
type Option func(*RecursiveSplitter)

// WithChunkSize sets the maximum chunk size in tokens.
// Defaults to DefaultChunkSize.
func WithChunkSize(n int) Option {
	return func(s *RecursiveSplitter) {
		s.chunkSize = n
	}
}

// WithChunkOverlap sets the token overlap between consecutive chunks.
// Defaults to DefaultChunkOverlap. An overlap at or above the chunk size
// is clamped to half the chunk size so merging always makes progress.
func WithChunkOverlap(n int) Option {
	return func(s *RecursiveSplitter) {
		s.chunkOverlap = n
	}
}

// NewRecursiveSplitter creates a splitter that measures length with the
// given token counter.
func NewRecursiveSplitter(counter docrag.TokenCounter, opts ...Option) *RecursiveSplitter {
	s := &RecursiveSplitter{
		chunkSize:    DefaultChunkSize,
		chunkOverlap: DefaultChunkOverlap,
		counter:      counter,
		separators:   defaultSeparators,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.chunkOverlap >= s.chunkSize {
		s.chunkOverlap = s.chunkSize / 2
	}
	return s
}

// Split breaks each document into chunks no longer than the configured
// token budget. Chunk positions are assigned in corpus order.
func (s *RecursiveSplitter) Split(ctx context.Context, docs []*docrag.Document) ([]*docrag.Chunk, error) {
	var chunks []*docrag.Chunk
	position := 0

	for _, doc := range docs {
		pieces, err := s.splitText(ctx, doc.Content, s.separators)
		if err != nil {
			return nil, err
		}

		for _, piece := range pieces {
			tokens, err := s.counter.CountTokens(ctx, piece)
			if err != nil {
				return nil, err
			}
			chunks = append(chunks, &docrag.Chunk{
				SourceURL:  doc.SourceURL,
				Title:      doc.Title,
				Content:    piece,
				TokenCount: tokens,
				Position:   position,
			})
			position++
		}
	}

	return chunks, nil
}

// splitText recursively splits text on the coarsest separator present,
// descending to finer separators for pieces that still exceed the budget.
func (s *RecursiveSplitter) splitText(ctx context.Context, text string, separators []string) ([]string, error) {
	// Pick the first separator that occurs in the text; "" (split into
	// characters) is the last resort.
	separator := separators[len(separators)-1]
	var remaining []string
	for i, sep := range separators {
		if sep == "" || strings.Contains(text, sep) {
			separator = sep
			remaining = separators[i+1:]
			break
		}
	}

	splits := splitOn(text, separator)

	var final []string
	var good []string

	flush := func() error {
		if len(good) == 0 {
			return nil
		}
		merged, err := s.merge(ctx, good, separator)
		if err != nil {
			return err
		}
		final = append(final, merged...)
		good = nil
		return nil
	}

	for _, piece := range splits {
		tokens, err := s.counter.CountTokens(ctx, piece)
		if err != nil {
			return nil, err
		}

		if tokens <= s.chunkSize {
			good = append(good, piece)
			continue
		}

		// Piece is too large: emit accumulated pieces, then recurse.
		if err := flush(); err != nil {
			return nil, err
		}
		if len(remaining) == 0 {
			// No finer separator left; emit oversized piece as-is.
			final = append(final, piece)
			continue
		}
		sub, err := s.splitText(ctx, piece, remaining)
		if err != nil {
			return nil, err
		}
		final = append(final, sub...)
	}

	if err := flush(); err != nil {
		return nil, err
	}

	return final, nil
}

// merge greedily joins pieces into chunks within the token budget. When a
// chunk is emitted, trailing pieces totaling at most the overlap budget
// are retained to start the next chunk.
func (s *RecursiveSplitter) merge(ctx context.Context, splits []string, separator string) ([]string, error) {
	sepTokens, err := s.counter.CountTokens(ctx, separator)
	if err != nil {
		return nil, err
	}

	lengths := make([]int, len(splits))
	for i, piece := range splits {
		if lengths[i], err = s.counter.CountTokens(ctx, piece); err != nil {
			return nil, err
		}
	}

	var docs []string
	var current []string
	var currentLens []int
	total := 0

	joinLen := func(n int) int {
		// Separator tokens between n pieces.
		if n <= 1 {
			return 0
		}
		return sepTokens * (n - 1)
	}

	emit := func() {
		doc := strings.TrimSpace(strings.Join(current, separator))
		if doc != "" {
			docs = append(docs, doc)
		}
	}

	for i, piece := range splits {
		pieceLen := lengths[i]

		if len(current) > 0 && total+pieceLen+joinLen(len(current)+1) > s.chunkSize {
			emit()

			// Retain a tail of pieces within the overlap budget.
			for len(current) > 0 &&
				(total > s.chunkOverlap ||
					total+pieceLen+joinLen(len(current)+1) > s.chunkSize) {
				total -= currentLens[0]
				current = current[1:]
				currentLens = currentLens[1:]
			}
		}

		current = append(current, piece)
		currentLens = append(currentLens, pieceLen)
		total += pieceLen
	}

	if len(current) > 0 {
		emit()
	}

	return docs, nil
}

// splitOn splits text on the separator, dropping empty pieces.
// An empty separator splits into individual characters.
func splitOn(text, separator string) []string {
	var raw []string
	if separator == "" {
		raw = strings.Split(text, "")
	} else {
		raw = strings.Split(text, separator)
	}

	pieces := raw[:0]
	for _, piece := range raw {
		if piece != "" {
			pieces = append(pieces, piece)
		}
	}
	return pieces
}
