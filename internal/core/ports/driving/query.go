package driving

import (
	"context"

	"github.com/askdocs/askdocs-cli/internal/core/domain"
)

// QueryService answers questions against the ingested corpus.
type QueryService interface {
	// Answer embeds the question, ranks the corpus by cosine similarity
	// and returns the top-k matches with an assembled answer. A blank
	// question or a topK of zero or less is rejected with ErrInvalidInput.
	Answer(ctx context.Context, question string, topK int) (*domain.Answer, error)
}
