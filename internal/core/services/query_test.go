package services

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askdocs/askdocs-cli/internal/adapters/driven/embedding/offline"
	"github.com/askdocs/askdocs-cli/internal/adapters/driven/recordstore/file"
	"github.com/askdocs/askdocs-cli/internal/core/domain"
	"github.com/askdocs/askdocs-cli/internal/postprocessors/chunker"
)

// stubSummarizer returns a canned summary, or fails when broken.
type stubSummarizer struct {
	summary string
	broken  bool
	calls   int
}

func (s *stubSummarizer) Summarize(_ context.Context, _ string, _ []string, _ int) (string, error) {
	s.calls++
	if s.broken {
		return "", domain.ErrLLMUnavailable
	}
	return s.summary, nil
}

func (s *stubSummarizer) ModelName() string { return "stub" }

func (s *stubSummarizer) Close() error { return nil }

// seedCorpus ingests the given documents and returns the record store and
// knowledge directory used.
func seedCorpus(t *testing.T, docs map[string]string) (*file.Store, string) {
	t.Helper()
	knowledgeDir := t.TempDir()
	store := file.New(filepath.Join(t.TempDir(), "vectors"))
	fixed, err := chunker.NewFixed(200, 0)
	require.NoError(t, err)
	svc := NewIngestService(knowledgeDir, newTestRegistry(), fixed, offline.New(64), store, 200, 0)

	names := make([]string, 0, len(docs))
	for name, content := range docs {
		writeDoc(t, knowledgeDir, name, content)
		names = append(names, name)
	}
	results, err := svc.Ingest(context.Background(), names)
	require.NoError(t, err)
	for _, res := range results {
		require.Equal(t, domain.IngestOK, res.Status)
	}
	return store, knowledgeDir
}

func TestQueryService_Answer(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects blank question", func(t *testing.T) {
		svc := NewQueryService(file.New(t.TempDir()), offline.New(64), nil, t.TempDir(), 0)
		_, err := svc.Answer(ctx, "   ", 3)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("rejects non-positive top-k", func(t *testing.T) {
		svc := NewQueryService(file.New(t.TempDir()), offline.New(64), nil, t.TempDir(), 0)
		_, err := svc.Answer(ctx, "question", 0)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("empty corpus yields empty answer without error", func(t *testing.T) {
		svc := NewQueryService(file.New(t.TempDir()), offline.New(64), nil, t.TempDir(), 0)

		answer, err := svc.Answer(ctx, "anything ingested yet?", 3)
		require.NoError(t, err)
		assert.Empty(t, answer.Answer)
		assert.Empty(t, answer.Matches)
		assert.Equal(t, domain.AnswerConcatenated, answer.Source)
	})

	t.Run("missing vector store behaves like empty corpus", func(t *testing.T) {
		store := file.New(filepath.Join(t.TempDir(), "never-created"))
		svc := NewQueryService(store, offline.New(64), nil, t.TempDir(), 0)

		answer, err := svc.Answer(ctx, "anything?", 3)
		require.NoError(t, err)
		assert.Empty(t, answer.Matches)
	})

	t.Run("ranks matching document first", func(t *testing.T) {
		store, knowledgeDir := seedCorpus(t, map[string]string{
			"cooking.txt": "simmer the tomato sauce gently and season the pasta water with salt",
			"sailing.txt": "trim the mainsail and watch the wind shift across the harbor",
		})
		svc := NewQueryService(store, offline.New(64), nil, knowledgeDir, 0)

		answer, err := svc.Answer(ctx, "how should I season the pasta sauce", 2)
		require.NoError(t, err)
		require.NotEmpty(t, answer.Matches)

		assert.Equal(t, "cooking.txt", answer.Matches[0].Filename)
		assert.Equal(t, domain.AnswerConcatenated, answer.Source)
		assert.NotEmpty(t, answer.Answer)
		assert.Equal(t, "how should I season the pasta sauce", answer.Question)
	})

	t.Run("matches carry offsets scores and links", func(t *testing.T) {
		store, knowledgeDir := seedCorpus(t, map[string]string{
			"doc.txt": "a single document with enough words to form a chunk for the test",
		})
		svc := NewQueryService(store, offline.New(64), nil, knowledgeDir, 0)

		answer, err := svc.Answer(ctx, "document words", 1)
		require.NoError(t, err)
		require.Len(t, answer.Matches, 1)

		m := answer.Matches[0]
		assert.Equal(t, "doc.txt", m.Filename)
		assert.Len(t, m.Checksum, 64)
		assert.GreaterOrEqual(t, m.CharEnd, m.CharStart)
		assert.NotEmpty(t, m.Snippet)
		assert.Greater(t, m.Score, 0.0)
		assert.True(t, strings.HasPrefix(m.Link, "file://"), "link %q", m.Link)
		assert.Contains(t, m.Link, "#chars=")
	})

	t.Run("link degrades to relative when source file is gone", func(t *testing.T) {
		store, _ := seedCorpus(t, map[string]string{
			"gone.txt": "this document will not exist at query time",
		})
		// Point the query service at a different knowledge dir.
		svc := NewQueryService(store, offline.New(64), nil, t.TempDir(), 0)

		answer, err := svc.Answer(ctx, "document exist", 1)
		require.NoError(t, err)
		require.Len(t, answer.Matches, 1)
		assert.True(t, strings.HasPrefix(answer.Matches[0].Link, "./gone.txt#chars="))
	})

	t.Run("dimension mismatch fails the query", func(t *testing.T) {
		store, knowledgeDir := seedCorpus(t, map[string]string{
			"doc.txt": "stored with sixty four dimensions",
		})
		// Query embedder disagrees with the stored vectors.
		svc := NewQueryService(store, offline.New(32), nil, knowledgeDir, 0)

		_, err := svc.Answer(ctx, "anything", 1)
		assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
	})

	t.Run("summarizer answer is tagged summarized", func(t *testing.T) {
		store, knowledgeDir := seedCorpus(t, map[string]string{
			"doc.txt": "facts about the topic spread across the text",
		})
		sum := &stubSummarizer{summary: "A concise answer."}
		svc := NewQueryService(store, offline.New(64), sum, knowledgeDir, 0)

		answer, err := svc.Answer(ctx, "topic facts", 1)
		require.NoError(t, err)
		assert.Equal(t, "A concise answer.", answer.Answer)
		assert.Equal(t, domain.AnswerSummarized, answer.Source)
		assert.NotEmpty(t, answer.Matches[0].RelevanceReason)
	})

	t.Run("broken summarizer falls back to concatenated", func(t *testing.T) {
		store, knowledgeDir := seedCorpus(t, map[string]string{
			"doc.txt": "facts about the topic spread across the text",
		})
		svc := NewQueryService(store, offline.New(64), &stubSummarizer{broken: true}, knowledgeDir, 0)

		answer, err := svc.Answer(ctx, "topic facts", 1)
		require.NoError(t, err)
		assert.Equal(t, domain.AnswerConcatenated, answer.Source)
		assert.NotEmpty(t, answer.Answer)
		assert.Empty(t, answer.Matches[0].RelevanceReason)
	})

	t.Run("answer respects the character budget", func(t *testing.T) {
		long := strings.Repeat("lengthy sentence about the subject matter ", 30)
		store, knowledgeDir := seedCorpus(t, map[string]string{"doc.txt": long})
		svc := NewQueryService(store, offline.New(64), nil, knowledgeDir, 80)

		answer, err := svc.Answer(ctx, "subject matter", 5)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(answer.Answer), 80+len("..."))
		assert.True(t, strings.HasSuffix(answer.Answer, "..."))
	})
}

func TestTruncateAtWord(t *testing.T) {
	t.Run("short text untouched", func(t *testing.T) {
		assert.Equal(t, "short", truncateAtWord("short", 100))
	})

	t.Run("cuts at word boundary", func(t *testing.T) {
		got := truncateAtWord("alpha beta gamma delta", 16)
		assert.Equal(t, "alpha beta...", got)
	})

	t.Run("no boundary within budget", func(t *testing.T) {
		got := truncateAtWord("abcdefghij", 5)
		assert.Equal(t, "abcde...", got)
	})
}

func TestDedupeSnippets(t *testing.T) {
	matches := []domain.Match{
		{Snippet: "alpha"},
		{Snippet: "beta"},
		{Snippet: "alpha"},
	}
	assert.Equal(t, []string{"alpha", "beta"}, dedupeSnippets(matches))
}
