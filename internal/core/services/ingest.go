package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/askdocs/askdocs-cli/internal/core/domain"
	"github.com/askdocs/askdocs-cli/internal/core/ports/driven"
	"github.com/askdocs/askdocs-cli/internal/core/ports/driving"
	"github.com/askdocs/askdocs-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService turns documents from the knowledge directory into
// persisted, embedded records.
type IngestService struct {
	knowledgeDir string
	registry     driven.NormaliserRegistry
	chunker      driven.Chunker
	embedder     driven.EmbeddingService
	store        driven.RecordStore
	chunkSize    int
	overlap      int
}

// NewIngestService creates an ingest service. chunkSize and overlap are
// recorded in each document record so a stored corpus documents its own
// provenance.
func NewIngestService(
	knowledgeDir string,
	registry driven.NormaliserRegistry,
	chunker driven.Chunker,
	embedder driven.EmbeddingService,
	store driven.RecordStore,
	chunkSize, overlap int,
) *IngestService {
	return &IngestService{
		knowledgeDir: knowledgeDir,
		registry:     registry,
		chunker:      chunker,
		embedder:     embedder,
		store:        store,
		chunkSize:    chunkSize,
		overlap:      overlap,
	}
}

// ListDocuments returns the ingestable filenames in the knowledge
// directory, sorted lexicographically. The directory is created when
// missing so a fresh install has somewhere to drop documents.
func (s *IngestService) ListDocuments(_ context.Context) ([]string, error) {
	if err := os.MkdirAll(s.knowledgeDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating knowledge directory: %w", err)
	}

	entries, err := os.ReadDir(s.knowledgeDir)
	if err != nil {
		return nil, fmt.Errorf("reading knowledge directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, err := s.registry.ForFile(entry.Name()); err != nil {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// Ingest processes the named documents, one result per input in input
// order. A failure on one document never aborts the rest.
func (s *IngestService) Ingest(ctx context.Context, filenames []string) ([]domain.IngestResult, error) {
	results := make([]domain.IngestResult, 0, len(filenames))
	for _, name := range filenames {
		results = append(results, s.ingestOne(ctx, name))
	}
	return results, nil
}

// IngestAll processes every ingestable document in the knowledge
// directory.
func (s *IngestService) IngestAll(ctx context.Context) ([]domain.IngestResult, error) {
	names, err := s.ListDocuments(ctx)
	if err != nil {
		return nil, err
	}
	return s.Ingest(ctx, names)
}

func (s *IngestService) ingestOne(ctx context.Context, filename string) domain.IngestResult {
	result := domain.IngestResult{Filename: filename}

	raw, err := os.ReadFile(filepath.Join(s.knowledgeDir, filename))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			result.Status = domain.IngestMissing
			return result
		}
		result.Status = domain.IngestError
		result.Error = err.Error()
		return result
	}

	normaliser, err := s.registry.ForFile(filename)
	if err != nil {
		result.Status = domain.IngestUnsupported
		return result
	}

	text, err := normaliser.Normalise(ctx, filename, raw)
	if err != nil {
		result.Status = domain.IngestError
		result.Error = err.Error()
		return result
	}
	if text == "" {
		result.Status = domain.IngestEmpty
		return result
	}

	chunks, err := s.chunker.Chunk(ctx, text)
	if err != nil {
		result.Status = domain.IngestError
		result.Error = err.Error()
		return result
	}

	snippets := make([]string, len(chunks))
	for i, c := range chunks {
		snippets[i] = c.Snippet
	}
	embeddings, err := s.embedder.EmbedBatch(ctx, snippets)
	if err != nil {
		result.Status = domain.IngestError
		result.Error = err.Error()
		return result
	}
	for i := range chunks {
		chunks[i].Embedding = embeddings[i]
	}

	checksum := sha256.Sum256(raw)
	record := &domain.DocumentRecord{
		RecordID:           uuid.New().String(),
		Filename:           filename,
		Checksum:           hex.EncodeToString(checksum[:]),
		IngestTimestamp:    time.Now().Unix(),
		ChunkSize:          s.chunkSize,
		Overlap:            s.overlap,
		EmbeddingModel:     s.embedder.ModelName(),
		EmbeddingDimension: s.embedder.Dimensions(),
		Chunks:             chunks,
	}

	path, err := s.store.Write(ctx, record)
	if err != nil {
		result.Status = domain.IngestError
		result.Error = err.Error()
		return result
	}

	logger.Debug("ingested %s: %d chunks -> %s", filename, len(chunks), path)
	result.Status = domain.IngestOK
	result.Chunks = len(chunks)
	result.OutputPath = path
	return result
}
