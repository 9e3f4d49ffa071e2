package domain

// RawTextBlock is one piece of text produced by a reader strategy.
// It is the reader's output before unit creation and tagging.
type RawTextBlock struct {
	// Text is the block's content.
	Text string

	// Metadata contains reader-specific key-value pairs.
	// Keys here never override the ingestion tags.
	Metadata map[string]string
}

// ChangeType represents the type of watched-file change.
type ChangeType int

const (
	// ChangeCreated indicates a new file.
	ChangeCreated ChangeType = iota

	// ChangeUpdated indicates a modified file.
	ChangeUpdated

	// ChangeDeleted indicates a removed file.
	ChangeDeleted
)

// FileChange represents a change event from the directory watcher.
type FileChange struct {
	// Type is the kind of change.
	Type ChangeType

	// Path is the affected file's absolute path.
	Path string
}
