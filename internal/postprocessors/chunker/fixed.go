// Package chunker provides text chunking processors that split normalised
// document text into overlapping windows with byte offsets.
package chunker

import (
	"context"
	"fmt"

	"github.com/askdocs/askdocs-cli/internal/core/domain"
	"github.com/askdocs/askdocs-cli/internal/core/ports/driven"
)

// DefaultChunkSize is the default number of bytes per chunk.
const DefaultChunkSize = 1000

// DefaultOverlap is the default number of overlapping bytes between
// consecutive chunks.
const DefaultOverlap = 200

// Ensure Fixed implements the interface.
var _ driven.Chunker = (*Fixed)(nil)

// Fixed splits text into fixed-size windows with overlap.
type Fixed struct {
	size    int
	overlap int
}

// NewFixed creates a fixed-window chunker. A chunk size of zero or less is
// rejected; a negative overlap clamps to zero.
func NewFixed(size, overlap int) (*Fixed, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be > 0, got %d", domain.ErrInvalidInput, size)
	}
	if overlap < 0 {
		overlap = 0
	}
	return &Fixed{size: size, overlap: overlap}, nil
}

// Name returns the chunker name.
func (f *Fixed) Name() string {
	return "fixed"
}

// Chunk splits the text into windows of at most size bytes, each starting
// size-overlap bytes after the previous one. The step is forced to at
// least 1 so an overlap equal to or larger than the size still terminates.
func (f *Fixed) Chunk(_ context.Context, text string) ([]domain.Chunk, error) {
	if text == "" {
		return nil, nil
	}

	step := f.size - f.overlap
	if step < 1 {
		step = 1
	}

	chunks := make([]domain.Chunk, 0, len(text)/step+1)
	for start := 0; start < len(text); start += step {
		end := start + f.size
		if end > len(text) {
			end = len(text)
		}
		chunks = append(chunks, domain.Chunk{
			Index:     len(chunks),
			CharStart: start,
			CharEnd:   end,
			Snippet:   text[start:end],
		})
		if end == len(text) {
			break
		}
	}
	return chunks, nil
}
