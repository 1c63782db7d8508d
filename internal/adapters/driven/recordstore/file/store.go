// Package file implements the RecordStore interface on the local
// filesystem. Each document record is one JSON file named
// {filename}.{checksum}.json inside the vectors directory.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/askdocs/askdocs-cli/internal/core/domain"
	"github.com/askdocs/askdocs-cli/internal/core/ports/driven"
	"github.com/askdocs/askdocs-cli/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.RecordStore = (*Store)(nil)

// Store persists document records as JSON files in a single directory.
type Store struct {
	dir string
}

// New creates a record store rooted at dir. The directory is created on
// the first write, not here, so a read-only query run never creates it.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the store's root directory.
func (s *Store) Dir() string {
	return s.dir
}

// Write persists the record at {dir}/{filename}.{checksum}.json. The file
// is written to a temp file and renamed into place, so readers never see a
// partial record. Re-ingesting an unchanged document lands on the same
// path and replaces the previous record, so a checksum never maps to two
// divergent files.
func (s *Store) Write(_ context.Context, record *domain.DocumentRecord) (string, error) {
	if record == nil || record.Filename == "" || record.Checksum == "" {
		return "", fmt.Errorf("%w: record needs filename and checksum", domain.ErrInvalidInput)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating vectors directory: %w", err)
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding record for %s: %w", record.Filename, err)
	}

	path := filepath.Join(s.dir, fmt.Sprintf("%s.%s.json", record.Filename, record.Checksum))

	tmp, err := os.CreateTemp(s.dir, ".record-*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("writing record for %s: %w", record.Filename, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("publishing record for %s: %w", record.Filename, err)
	}
	return path, nil
}

// LoadCorpus reads every record file and flattens the chunks into corpus
// entries. Files are visited in lexicographic name order, so the corpus
// order is stable across runs. Records that fail to parse and chunks whose
// embedding length disagrees with the record's declared dimension are
// skipped with a diagnostic.
func (s *Store) LoadCorpus(_ context.Context) ([]domain.CorpusEntry, error) {
	dirEntries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: vector store %s does not exist", domain.ErrNotFound, s.dir)
		}
		return nil, fmt.Errorf("reading vector store: %w", err)
	}

	var corpus []domain.CorpusEntry
	for _, entry := range dirEntries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ".json") {
			continue
		}

		record, err := s.readRecord(filepath.Join(s.dir, name))
		if err != nil {
			logger.Warn("skipping %s: %v", name, err)
			continue
		}

		for _, chunk := range record.Chunks {
			if len(chunk.Embedding) != record.EmbeddingDimension {
				logger.Warn("skipping %s chunk %d: embedding has %d dimensions, record declares %d",
					name, chunk.Index, len(chunk.Embedding), record.EmbeddingDimension)
				continue
			}
			corpus = append(corpus, domain.CorpusEntry{
				Filename: record.Filename,
				Checksum: record.Checksum,
				Chunk:    chunk,
			})
		}
	}
	return corpus, nil
}

func (s *Store) readRecord(path string) (*domain.DocumentRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var record domain.DocumentRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedRecord, err)
	}
	if record.Filename == "" || record.Checksum == "" {
		return nil, fmt.Errorf("%w: missing filename or checksum", domain.ErrMalformedRecord)
	}
	if record.EmbeddingDimension <= 0 {
		return nil, fmt.Errorf("%w: embedding dimension %d", domain.ErrMalformedRecord, record.EmbeddingDimension)
	}
	return &record, nil
}
