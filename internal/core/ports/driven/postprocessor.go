package driven

import (
	"context"

	"github.com/askdocs/askdocs-cli/internal/core/domain"
)

// Chunker splits normalised text into chunks with byte offsets back into
// the source text. Embeddings are attached later in the ingest pipeline.
type Chunker interface {
	// Name returns the chunker name for logging and record metadata.
	Name() string

	// Chunk splits the text. Offsets satisfy text[CharStart:CharEnd] ==
	// Snippet for every returned chunk.
	Chunk(ctx context.Context, text string) ([]domain.Chunk, error)
}
