package driven

import (
	"context"

	"github.com/sonarlabs/docingest/internal/core/domain"
)

// ReaderStrategy parses one registered file type into raw text blocks.
// Each strategy handles specific file extensions (e.g., ".txt", ".csv").
type ReaderStrategy interface {
	// Name identifies the strategy (e.g., "plaintext", "pdf").
	Name() string

	// Extensions returns the lower-cased extensions this strategy handles,
	// including the leading dot.
	Extensions() []string

	// Read parses the file content into zero or more text blocks.
	Read(ctx context.Context, content []byte) ([]domain.RawTextBlock, error)
}

// PagedReader is a ReaderStrategy whose documents expose per-page access.
// The transformer routes paged strategies through the page pipeline
// (classification, OCR) instead of Read.
type PagedReader interface {
	ReaderStrategy

	// Open parses the content into a paged document handle.
	// The caller owns the handle and must Close it exactly once.
	Open(ctx context.Context, content []byte) (PagedDocument, error)
}

// PagedDocument is an open paged document.
// It stays open for the duration of one transformation call.
type PagedDocument interface {
	// PageCount returns the number of pages.
	PageCount() int

	// Page returns the 1-based page with its text layout geometry.
	Page(ctx context.Context, number int) (*domain.Page, error)

	// Render rasterises the 1-based page to an image for OCR.
	Render(ctx context.Context, number int) ([]byte, error)

	// Close releases the document's resources.
	Close() error
}
