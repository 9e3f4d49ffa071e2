package driving

import "github.com/sonarlabs/docingest/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetCoverageThreshold updates the page classifier's text coverage
	// cutoff. The threshold must be in (0, 1].
	SetCoverageThreshold(threshold float64) error

	// SetOCR configures the OCR provider.
	SetOCR(ocr domain.OCRSettings) error

	// SetStoreBackend selects the unit store backend.
	SetStoreBackend(backend domain.StoreBackend) error

	// SetRetrieverBackend selects the vector retriever backend.
	SetRetrieverBackend(backend domain.RetrieverBackend) error

	// Validate checks if current settings are consistent.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
