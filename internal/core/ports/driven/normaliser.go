package driven

import "context"

// Normaliser extracts plain text from a raw document of a specific format.
// Each normaliser handles a set of file extensions (e.g. .txt, .md, .pdf).
type Normaliser interface {
	// Extensions returns the lower-case file extensions this normaliser
	// handles, including the leading dot.
	Extensions() []string

	// Normalise extracts the text content from the raw bytes and applies
	// whitespace normalisation, so chunk offsets are always computed
	// against a single canonical form of the text.
	Normalise(ctx context.Context, filename string, raw []byte) (string, error)
}

// NormaliserRegistry resolves a normaliser for a given filename.
type NormaliserRegistry interface {
	// ForFile returns the normaliser registered for the file's extension.
	// Returns ErrUnsupportedType when no normaliser handles it.
	ForFile(filename string) (Normaliser, error)

	// Register adds a normaliser for all of its extensions. A later
	// registration for the same extension wins.
	Register(n Normaliser)
}
