package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/askdocs/askdocs-cli/internal/core/domain"
	"github.com/askdocs/askdocs-cli/internal/core/ports/driven"
	"github.com/askdocs/askdocs-cli/internal/core/ports/driving"
	"github.com/askdocs/askdocs-cli/internal/logger"
	"github.com/askdocs/askdocs-cli/internal/vector"
)

// Ensure QueryService implements the interface.
var _ driving.QueryService = (*QueryService)(nil)

// DefaultMaxAnswerChars bounds the assembled answer when no budget is
// configured.
const DefaultMaxAnswerChars = 1200

// reasonBudget caps the per-match relevance explanation.
const reasonBudget = 240

// QueryService answers questions against the ingested corpus.
type QueryService struct {
	store          driven.RecordStore
	embedder       driven.EmbeddingService
	summarizer     driven.Summarizer
	knowledgeDir   string
	maxAnswerChars int
}

// NewQueryService creates a query service. The summarizer is optional;
// when nil, answers are assembled by concatenating the top snippets.
func NewQueryService(
	store driven.RecordStore,
	embedder driven.EmbeddingService,
	summarizer driven.Summarizer,
	knowledgeDir string,
	maxAnswerChars int,
) *QueryService {
	if maxAnswerChars <= 0 {
		maxAnswerChars = DefaultMaxAnswerChars
	}
	return &QueryService{
		store:          store,
		embedder:       embedder,
		summarizer:     summarizer,
		knowledgeDir:   knowledgeDir,
		maxAnswerChars: maxAnswerChars,
	}
}

// Answer embeds the question, ranks every stored chunk by cosine
// similarity and assembles an answer from the top k matches.
func (s *QueryService) Answer(ctx context.Context, question string, topK int) (*domain.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: question is blank", domain.ErrInvalidInput)
	}
	if topK <= 0 {
		return nil, fmt.Errorf("%w: top-k must be > 0, got %d", domain.ErrInvalidInput, topK)
	}

	corpus, err := s.store.LoadCorpus(ctx)
	if err != nil {
		// No vector store yet means nothing has been ingested; that is
		// an empty answer, not a failure.
		if errors.Is(err, domain.ErrNotFound) {
			corpus = nil
		} else {
			return nil, err
		}
	}
	if len(corpus) == 0 {
		return &domain.Answer{
			Question: question,
			Answer:   "",
			Source:   domain.AnswerConcatenated,
			Matches:  []domain.Match{},
		}, nil
	}

	queryVec, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embedding question: %w", err)
	}

	vectors := make([][]float32, len(corpus))
	for i := range corpus {
		vectors[i] = corpus[i].Chunk.Embedding
	}

	hits, err := vector.TopK(queryVec, vectors, topK)
	if err != nil {
		return nil, err
	}

	matches := make([]domain.Match, 0, len(hits))
	for _, hit := range hits {
		entry := corpus[hit.Position]
		matches = append(matches, domain.Match{
			Filename:        entry.Filename,
			Checksum:        entry.Checksum,
			Index:           entry.Chunk.Index,
			CharStart:       entry.Chunk.CharStart,
			CharEnd:         entry.Chunk.CharEnd,
			Snippet:         entry.Chunk.Snippet,
			Score:           hit.Score,
			Link:            s.buildLink(entry),
			RelevanceReason: s.relevanceReason(ctx, question, entry.Chunk.Snippet),
		})
	}

	snippets := dedupeSnippets(matches)
	answer := truncateAtWord(strings.Join(snippets, "\n\n"), s.maxAnswerChars)
	source := domain.AnswerConcatenated

	if s.summarizer != nil {
		summary, err := s.summarizer.Summarize(ctx, question, snippets, s.maxAnswerChars)
		if err != nil {
			logger.Warn("summarizer failed, falling back to concatenated answer: %v", err)
		} else if summary != "" {
			answer = summary
			source = domain.AnswerSummarized
		}
	}

	return &domain.Answer{
		Question: question,
		Answer:   answer,
		Source:   source,
		Matches:  matches,
	}, nil
}

// buildLink points at the chunk inside the source document. When the
// knowledge file still exists the link is an absolute file:// URL,
// otherwise a relative path that names the vanished file.
func (s *QueryService) buildLink(entry domain.CorpusEntry) string {
	fragment := fmt.Sprintf("#chars=%d-%d", entry.Chunk.CharStart, entry.Chunk.CharEnd)

	path := filepath.Join(s.knowledgeDir, entry.Filename)
	if _, err := os.Stat(path); err == nil {
		if abs, err := filepath.Abs(path); err == nil {
			return "file://" + abs + fragment
		}
	}
	return "./" + entry.Filename + fragment
}

// relevanceReason asks the summarizer why a snippet matches. Best effort:
// any failure yields an empty reason, never an error.
func (s *QueryService) relevanceReason(ctx context.Context, question, snippet string) string {
	if s.summarizer == nil {
		return ""
	}
	prompt := "In one or two sentences, explain why the passage is relevant to: " + question
	reason, err := s.summarizer.Summarize(ctx, prompt, []string{snippet}, reasonBudget)
	if err != nil {
		logger.Debug("relevance reason unavailable: %v", err)
		return ""
	}
	return reason
}

// dedupeSnippets returns the match snippets in rank order with exact
// duplicates removed. Overlapping chunks from adjacent windows often
// carry identical text.
func dedupeSnippets(matches []domain.Match) []string {
	seen := make(map[string]struct{}, len(matches))
	snippets := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, ok := seen[m.Snippet]; ok {
			continue
		}
		seen[m.Snippet] = struct{}{}
		snippets = append(snippets, m.Snippet)
	}
	return snippets
}

// truncateAtWord cuts text to at most budget bytes, backing up to the
// last word boundary and appending an ellipsis when anything was cut.
func truncateAtWord(text string, budget int) string {
	if len(text) <= budget {
		return text
	}
	cut := text[:budget]
	if idx := strings.LastIndexAny(cut, " \n\t"); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimRight(cut, " \n\t") + "..."
}
