//go:build cgo

package tesseract

import (
	"context"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"
)

// Engine recognises text in images using a local Tesseract install.
// The underlying client is not safe for concurrent use, so calls are
// serialised.
type Engine struct {
	mu     sync.Mutex
	client *gosseract.Client
}

// New creates an engine. Languages are Tesseract language codes
// ("eng", "deu"); empty keeps the install's default.
func New(languages []string) (*Engine, error) {
	client := gosseract.NewClient()
	if len(languages) > 0 {
		if err := client.SetLanguage(languages...); err != nil {
			client.Close()
			return nil, err
		}
	}
	return &Engine{client: client}, nil
}

// Recognise extracts text from the image bytes.
func (e *Engine) Recognise(ctx context.Context, image []byte) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := e.client.SetImageFromBytes(image); err != nil {
		return "", err
	}
	text, err := e.client.Text()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// Close releases the Tesseract client.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.client.Close()
}
