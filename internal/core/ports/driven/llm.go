package driven

import "context"

// Summarizer condenses retrieved passages into a direct answer to a
// question. Implementations wrap an LLM backend; callers must treat
// failures as non-fatal and fall back to returning the raw passages.
type Summarizer interface {
	// Summarize produces an answer to question from the given passages,
	// at most maxChars characters long.
	Summarize(ctx context.Context, question string, passages []string, maxChars int) (string, error)

	// ModelName returns the model identifier for logging.
	ModelName() string

	// Close releases any resources held by the client.
	Close() error
}
