package driven

// ReaderRegistry maps file extensions to reader strategies.
// It is process-wide, read-only after construction, and injected into the
// transformer rather than accessed as ambient global state.
type ReaderRegistry interface {
	// Resolve returns the strategy for a lower-cased extension with
	// leading dot. The second return is false for unknown extensions,
	// in which case the transformer falls back to raw UTF-8 text.
	Resolve(extension string) (ReaderStrategy, bool)

	// Extensions returns all registered extensions, sorted.
	Extensions() []string
}
