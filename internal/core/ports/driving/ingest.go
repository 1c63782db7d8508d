package driving

import (
	"context"

	"github.com/askdocs/askdocs-cli/internal/core/domain"
)

// IngestService ingests documents from the knowledge directory into the
// vector store.
type IngestService interface {
	// ListDocuments returns the filenames in the knowledge directory,
	// sorted lexicographically. Subdirectories are skipped.
	ListDocuments(ctx context.Context) ([]string, error)

	// Ingest processes the named documents. One result is returned per
	// input filename, in input order; a failure on one file never aborts
	// the rest of the batch.
	Ingest(ctx context.Context, filenames []string) ([]domain.IngestResult, error)

	// IngestAll processes every document in the knowledge directory.
	IngestAll(ctx context.Context) ([]domain.IngestResult, error)
}
