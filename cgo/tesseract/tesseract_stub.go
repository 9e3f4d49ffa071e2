//go:build !cgo

package tesseract

import (
	"context"

	"github.com/sonarlabs/docingest/internal/core/domain"
)

// Engine recognises text in images using a local Tesseract install.
// This is a stub for builds without CGO.
type Engine struct {
	languages []string
}

// New creates an engine.
// This is a stub for builds without CGO.
func New(languages []string) (*Engine, error) {
	return &Engine{languages: languages}, nil
}

// Recognise extracts text from the image bytes.
func (e *Engine) Recognise(_ context.Context, _ []byte) (string, error) {
	return "", domain.ErrNotImplemented
}

// Close releases resources.
func (e *Engine) Close() error {
	return nil
}
