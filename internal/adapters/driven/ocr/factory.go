// Package ocr provides factory functions for creating OCR service adapters.
package ocr

import (
	"context"
	"fmt"

	"github.com/sonarlabs/docingest/internal/adapters/driven/ocr/googlevision"
	"github.com/sonarlabs/docingest/internal/adapters/driven/ocr/tesseract"
	"github.com/sonarlabs/docingest/internal/adapters/driven/ocr/vertex"
	"github.com/sonarlabs/docingest/internal/core/domain"
	"github.com/sonarlabs/docingest/internal/core/ports/driven"
)

// CreateOCRService creates the appropriate OCR service based on settings.
// Returns nil if no provider is configured; the ingestion pipeline then
// rejects pages that need OCR instead of calling anything.
// The prompt store supplies the transcription instruction for model-backed
// providers when the settings leave it empty; it may be nil.
// The returned service is rate limited per the settings.
func CreateOCRService(ctx context.Context, settings *domain.OCRSettings, prompts driven.PromptStore) (driven.OCRService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	var (
		svc driven.OCRService
		err error
	)
	switch settings.Provider {
	case domain.OCRProviderGoogleVision:
		svc, err = googlevision.NewService(ctx, googlevision.Config{
			CredentialsFile: settings.CredentialsFile,
			APIKey:          settings.APIKey,
		})

	case domain.OCRProviderVertex:
		svc, err = vertex.NewService(ctx, vertex.Config{
			Project:  settings.Project,
			Location: settings.Location,
			Model:    settings.Model,
			Prompt:   resolvePrompt(settings.Prompt, prompts),
		})

	case domain.OCRProviderTesseract:
		svc, err = tesseract.NewService(settings.Languages)

	default:
		return nil, fmt.Errorf("unsupported OCR provider: %s", settings.Provider)
	}
	if err != nil {
		return nil, err
	}

	return WithRateLimit(svc, RateLimitConfig{
		RequestsPerSecond: settings.RequestsPerSecond,
		Burst:             settings.Burst,
	}), nil
}

// resolvePrompt prefers the configured prompt, then the user-editable
// prompt file. An empty result lets the provider apply its built-in
// default.
func resolvePrompt(configured string, prompts driven.PromptStore) string {
	if configured != "" || prompts == nil {
		return configured
	}
	loaded, err := prompts.Load(driven.PromptOCRTranscribe)
	if err != nil {
		return ""
	}
	return loaded
}
