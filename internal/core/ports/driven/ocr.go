package driven

import (
	"context"

	"github.com/sonarlabs/docingest/internal/core/domain"
)

// OCRService recognises text from a rendered page image.
// Implementations call an external provider and must not cache results;
// a given image always triggers a fresh call. Provider failures are
// wrapped in domain.ErrOCRProvider with the provider's message preserved
// verbatim. No retry happens at this level.
type OCRService interface {
	// Recognise extracts text from the page image bytes.
	Recognise(ctx context.Context, image []byte) (string, error)

	// Provider identifies the backing OCR provider.
	Provider() domain.OCRProvider

	// Close releases resources.
	Close() error
}
