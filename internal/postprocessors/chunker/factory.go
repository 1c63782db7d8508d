package chunker

import (
	"github.com/askdocs/askdocs-cli/internal/core/ports/driven"
	"github.com/askdocs/askdocs-cli/internal/logger"
)

// Method names accepted by New.
const (
	MethodFixed     = "fixed"
	MethodParagraph = "paragraph"
)

// New creates the chunker selected by method. An unknown method falls back
// to the fixed-window chunker with a diagnostic.
func New(method string, size, overlap int) (driven.Chunker, error) {
	switch method {
	case MethodParagraph:
		return NewParagraph(size)
	case MethodFixed:
		return NewFixed(size, overlap)
	default:
		if method != "" {
			logger.Warn("unknown chunk method %q, using %q", method, MethodFixed)
		}
		return NewFixed(size, overlap)
	}
}
