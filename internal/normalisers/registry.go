package normalisers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/askdocs/askdocs-cli/internal/core/domain"
	"github.com/askdocs/askdocs-cli/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// Registry maps file extensions to normalisers.
type Registry struct {
	byExt map[string]driven.Normaliser
}

// NewRegistry creates an empty normaliser registry.
func NewRegistry() *Registry {
	return &Registry{byExt: make(map[string]driven.Normaliser)}
}

// Register adds a normaliser for all of its extensions. A later
// registration for the same extension wins.
func (r *Registry) Register(n driven.Normaliser) {
	for _, ext := range n.Extensions() {
		r.byExt[strings.ToLower(ext)] = n
	}
}

// ForFile returns the normaliser registered for the file's extension.
func (r *Registry) ForFile(filename string) (driven.Normaliser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	n, ok := r.byExt[ext]
	if !ok {
		return nil, fmt.Errorf("%w: no normaliser for extension %q", domain.ErrUnsupportedType, ext)
	}
	return n, nil
}

// Extensions returns all registered extensions, for diagnostics.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	return exts
}
