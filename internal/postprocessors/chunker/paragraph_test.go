package chunker

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/askdocs/askdocs-cli/internal/core/domain"
)

func TestNewParagraph(t *testing.T) {
	_, err := NewParagraph(0)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestParagraph_Chunk(t *testing.T) {
	ctx := context.Background()

	t.Run("empty text produces no chunks", func(t *testing.T) {
		p, _ := NewParagraph(100)
		chunks, err := p.Chunk(ctx, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(chunks) != 0 {
			t.Errorf("expected no chunks, got %d", len(chunks))
		}
	})

	t.Run("short paragraphs pack into one chunk", func(t *testing.T) {
		p, _ := NewParagraph(100)
		text := "first paragraph.\n\nsecond paragraph."
		chunks, err := p.Chunk(ctx, text)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(chunks) != 1 {
			t.Fatalf("expected 1 chunk, got %d", len(chunks))
		}
		if chunks[0].Snippet != text {
			t.Errorf("expected the whole text in one chunk, got %q", chunks[0].Snippet)
		}
	})

	t.Run("splits when the next paragraph would overflow", func(t *testing.T) {
		p, _ := NewParagraph(30)
		text := "aaaaaaaaaaaaaaaaaaaa\n\nbbbbbbbbbbbbbbbbbbbb"
		chunks, err := p.Chunk(ctx, text)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(chunks) != 2 {
			t.Fatalf("expected 2 chunks, got %d", len(chunks))
		}
		if chunks[0].Snippet != "aaaaaaaaaaaaaaaaaaaa" {
			t.Errorf("unexpected first snippet %q", chunks[0].Snippet)
		}
		if chunks[1].Snippet != "bbbbbbbbbbbbbbbbbbbb" {
			t.Errorf("unexpected second snippet %q", chunks[1].Snippet)
		}
	})

	t.Run("oversized paragraph becomes its own chunk", func(t *testing.T) {
		p, _ := NewParagraph(10)
		long := strings.Repeat("x", 50)
		text := "short.\n\n" + long
		chunks, err := p.Chunk(ctx, text)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(chunks) != 2 {
			t.Fatalf("expected 2 chunks, got %d", len(chunks))
		}
		if chunks[1].Snippet != long {
			t.Errorf("expected oversized paragraph kept whole")
		}
	})

	t.Run("offsets round-trip into the source text", func(t *testing.T) {
		p, _ := NewParagraph(25)
		text := "alpha beta.\n\ngamma delta.\n\nepsilon zeta eta theta."
		chunks, err := p.Chunk(ctx, text)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(chunks) < 2 {
			t.Fatalf("expected multiple chunks, got %d", len(chunks))
		}
		for i, c := range chunks {
			if text[c.CharStart:c.CharEnd] != c.Snippet {
				t.Errorf("chunk %d: offsets [%d, %d) do not recover snippet %q",
					i, c.CharStart, c.CharEnd, c.Snippet)
			}
		}
	})

	t.Run("indexes are sequential", func(t *testing.T) {
		p, _ := NewParagraph(5)
		text := "one\n\ntwo\n\nthree"
		chunks, _ := p.Chunk(ctx, text)
		for i, c := range chunks {
			if c.Index != i {
				t.Errorf("chunk %d: expected index %d, got %d", i, i, c.Index)
			}
		}
	})
}
