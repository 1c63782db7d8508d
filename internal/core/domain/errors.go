package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input
	// (non-positive chunk size, blank question, non-positive k).
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates a requested entity does not exist
	// (missing source file, missing vectors directory).
	ErrNotFound = errors.New("not found")

	// ErrDimensionMismatch indicates the query vector's length disagrees
	// with the corpus's declared embedding dimensionality. Vectors are
	// never truncated or padded to hide the disagreement.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrMalformedRecord indicates a record file or chunk could not be
	// parsed or validated. Loaders skip malformed entries rather than
	// aborting the whole load.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrUnsupportedType indicates no normaliser handles the file type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured or unreachable. Without a vector no meaningful result
	// can be produced, so this is fatal to the single operation.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrLLMUnavailable indicates the summarizer is not configured.
	// Answering degrades to the concatenation fallback.
	ErrLLMUnavailable = errors.New("LLM service unavailable")
)
