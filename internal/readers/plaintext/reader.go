package plaintext

import (
	"bytes"
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/sonarlabs/docingest/internal/core/domain"
	"github.com/sonarlabs/docingest/internal/core/ports/driven"
)

// Ensure Reader implements the interface.
var _ driven.ReaderStrategy = (*Reader)(nil)

// utf8BOM is the byte order mark some editors prepend to text files.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Reader handles plain text files.
type Reader struct{}

// New creates a new plain text reader.
func New() *Reader {
	return &Reader{}
}

// Name identifies the strategy.
func (r *Reader) Name() string {
	return "plaintext"
}

// Extensions returns the file extensions this reader handles.
func (r *Reader) Extensions() []string {
	return []string{
		".txt",
		".text",
		".log",
		".csv",
		".tsv",
		".json",
		".yaml",
		".yml",
		".toml",
		".xml",
	}
}

// Read converts the file content into a single text block.
// Content that is not valid UTF-8, or that embeds NUL bytes, is rejected
// as binary rather than ingested as garbage.
func (r *Reader) Read(_ context.Context, content []byte) ([]domain.RawTextBlock, error) {
	content = bytes.TrimPrefix(content, utf8BOM)

	if !utf8.Valid(content) || bytes.ContainsRune(content, 0) {
		return nil, fmt.Errorf("content is not text: %w", domain.ErrUnsupportedInput)
	}

	return []domain.RawTextBlock{{Text: string(content)}}, nil
}
