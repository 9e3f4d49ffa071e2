package readers

import (
	"sort"
	"strings"

	"github.com/sonarlabs/docingest/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.ReaderRegistry = (*Registry)(nil)

// Registry maps file extensions to reader strategies.
// It is built once from a strategy list and never mutated afterwards,
// so concurrent lookups need no locking. When two strategies claim the
// same extension the later one wins.
type Registry struct {
	byExtension map[string]driven.ReaderStrategy
}

// NewRegistry creates a registry from the given strategies.
func NewRegistry(strategies ...driven.ReaderStrategy) *Registry {
	byExtension := make(map[string]driven.ReaderStrategy)
	for _, strategy := range strategies {
		for _, ext := range strategy.Extensions() {
			byExtension[normaliseExtension(ext)] = strategy
		}
	}
	return &Registry{byExtension: byExtension}
}

// Resolve returns the strategy registered for the extension.
// The second return is false for unknown extensions.
func (r *Registry) Resolve(extension string) (driven.ReaderStrategy, bool) {
	strategy, ok := r.byExtension[normaliseExtension(extension)]
	return strategy, ok
}

// Extensions returns all registered extensions, sorted.
func (r *Registry) Extensions() []string {
	extensions := make([]string, 0, len(r.byExtension))
	for ext := range r.byExtension {
		extensions = append(extensions, ext)
	}
	sort.Strings(extensions)
	return extensions
}

// normaliseExtension lower-cases and ensures the leading dot, so ".TXT",
// "txt" and ".txt" all address the same entry.
func normaliseExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ext
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
