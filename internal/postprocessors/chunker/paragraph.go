package chunker

import (
	"context"
	"fmt"
	"strings"

	"github.com/askdocs/askdocs-cli/internal/core/domain"
	"github.com/askdocs/askdocs-cli/internal/core/ports/driven"
)

// Ensure Paragraph implements the interface.
var _ driven.Chunker = (*Paragraph)(nil)

// Paragraph packs whole paragraphs into chunks of at most size bytes.
// A single paragraph longer than the size becomes its own oversized chunk;
// paragraphs are never split.
type Paragraph struct {
	size int
}

// NewParagraph creates a paragraph-aware chunker.
func NewParagraph(size int) (*Paragraph, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be > 0, got %d", domain.ErrInvalidInput, size)
	}
	return &Paragraph{size: size}, nil
}

// Name returns the chunker name.
func (p *Paragraph) Name() string {
	return "paragraph"
}

// Chunk splits the text on blank lines and packs consecutive paragraphs
// until adding the next one would exceed the chunk size. Offsets are
// recovered by substring search from a running cursor; when a snippet
// cannot be located the cursor position is used as a best effort.
func (p *Paragraph) Chunk(_ context.Context, text string) ([]domain.Chunk, error) {
	if text == "" {
		return nil, nil
	}

	paragraphs := strings.Split(text, "\n\n")
	var chunks []domain.Chunk
	var group []string
	groupLen := 0
	cursor := 0

	flush := func() {
		if len(group) == 0 {
			return
		}
		snippet := strings.Join(group, "\n\n")
		start := cursor
		if idx := strings.Index(text[cursor:], snippet); idx >= 0 {
			start = cursor + idx
		}
		end := start + len(snippet)
		chunks = append(chunks, domain.Chunk{
			Index:     len(chunks),
			CharStart: start,
			CharEnd:   end,
			Snippet:   snippet,
		})
		cursor = end
		group = group[:0]
		groupLen = 0
	}

	for _, para := range paragraphs {
		if para == "" {
			continue
		}
		added := len(para)
		if len(group) > 0 {
			added += 2 // joining blank line
		}
		if groupLen+added > p.size {
			flush()
			added = len(para)
		}
		group = append(group, para)
		groupLen += added
	}
	flush()

	return chunks, nil
}
