package driven

import "context"

// EmbeddingService generates vector embeddings for text.
// Implementations wrap a specific backend (OpenAI, Ollama, offline hashing).
type EmbeddingService interface {
	// Embed generates an embedding vector for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts in one call.
	// Backends without a batch endpoint loop over Embed.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size this service produces.
	Dimensions() int

	// ModelName returns the model identifier recorded with each document.
	ModelName() string

	// Ping verifies the backend is reachable and the model is available.
	Ping(ctx context.Context) error

	// Close releases any resources held by the service.
	Close() error
}
