package driven

import (
	"context"

	"github.com/askdocs/askdocs-cli/internal/core/domain"
)

// RecordStore persists document records and loads them back as a flat
// corpus for ranking.
type RecordStore interface {
	// Write persists a document record and returns the path it was
	// written to. Writing a record for a (filename, checksum) pair that
	// already exists overwrites it; ingestion is idempotent.
	Write(ctx context.Context, record *domain.DocumentRecord) (string, error)

	// LoadCorpus reads every record in the store and flattens their
	// chunks into corpus entries, ordered by record filename and chunk
	// index. Malformed records and chunks whose embedding length does
	// not match the record's declared dimension are skipped with a
	// diagnostic, never failing the load.
	LoadCorpus(ctx context.Context) ([]domain.CorpusEntry, error)
}
