// Package tesseract implements OCR through a local Tesseract install.
// It is the only provider that works offline; builds without CGO get a
// stub that rejects recognition.
package tesseract

import (
	"context"
	"errors"
	"fmt"

	cgotesseract "github.com/sonarlabs/docingest/cgo/tesseract"
	"github.com/sonarlabs/docingest/internal/core/domain"
	"github.com/sonarlabs/docingest/internal/core/ports/driven"
)

// Ensure Service implements the interface.
var _ driven.OCRService = (*Service)(nil)

// Service recognises text using the Tesseract engine.
type Service struct {
	engine *cgotesseract.Engine
}

// NewService creates a Tesseract OCR service.
// Languages are Tesseract language codes ("eng", "deu"); empty keeps
// the install's default.
func NewService(languages []string) (*Service, error) {
	engine, err := cgotesseract.New(languages)
	if err != nil {
		return nil, fmt.Errorf("init tesseract: %w", err)
	}
	return &Service{engine: engine}, nil
}

// Recognise extracts text from the page image.
func (s *Service) Recognise(ctx context.Context, image []byte) (string, error) {
	text, err := s.engine.Recognise(ctx, image)
	if err != nil {
		// A non-CGO build cannot recognise at all; that is a build
		// configuration problem, not a provider failure.
		if errors.Is(err, domain.ErrNotImplemented) {
			return "", err
		}
		return "", fmt.Errorf("%w: %s", domain.ErrOCRProvider, err.Error())
	}
	return text, nil
}

// Provider identifies the backing provider.
func (s *Service) Provider() domain.OCRProvider {
	return domain.OCRProviderTesseract
}

// Close releases the engine.
func (s *Service) Close() error {
	return s.engine.Close()
}
