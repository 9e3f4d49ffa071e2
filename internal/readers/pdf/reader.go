package pdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/sonarlabs/docingest/internal/core/domain"
	"github.com/sonarlabs/docingest/internal/core/ports/driven"
)

// ErrPDFToolNotFound indicates the poppler tools are not installed.
var ErrPDFToolNotFound = errors.New("pdftotext/pdftoppm not found in PATH")

// Ensure Reader implements the paged interface.
var _ driven.PagedReader = (*Reader)(nil)

// Reader handles PDF files through the poppler command line tools.
// Page text and layout geometry come from pdftotext, page images for
// OCR from pdftoppm. File validation and page counting are done
// in-process before any external tool runs.
type Reader struct {
	runner driven.CommandRunner
}

// New creates a PDF reader using the system poppler tools.
func New() *Reader {
	return NewWithRunner(&execRunner{})
}

// NewWithRunner creates a PDF reader with a custom command runner.
// Used in tests to mock the external tools.
func NewWithRunner(runner driven.CommandRunner) *Reader {
	return &Reader{runner: runner}
}

// Name identifies the strategy.
func (r *Reader) Name() string {
	return "pdf"
}

// Extensions returns the file extensions this reader handles.
func (r *Reader) Extensions() []string {
	return []string{".pdf"}
}

// Open validates the content as a PDF and returns a paged handle.
// The content is staged to a temporary file for the poppler tools;
// Close removes it.
func (r *Reader) Open(_ context.Context, content []byte) (driven.PagedDocument, error) {
	path, err := stageTempFile(content)
	if err != nil {
		return nil, err
	}

	cfg := model.NewDefaultConfiguration()
	cfg.ValidationMode = model.ValidationRelaxed
	if err := api.ValidateFile(path, cfg); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("validate pdf (%v): %w", err, domain.ErrUnsupportedInput)
	}

	count, err := api.PageCountFile(path)
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("count pdf pages: %w", err)
	}

	return &document{path: path, count: count, runner: r.runner}, nil
}

// Read extracts the native text of every page, one block per page.
// Pages needing OCR come back empty here; the ingestion pipeline uses
// Open for the full page treatment and only falls back to Read when a
// caller treats PDF as a black-box format.
func (r *Reader) Read(ctx context.Context, content []byte) ([]domain.RawTextBlock, error) {
	doc, err := r.Open(ctx, content)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	blocks := make([]domain.RawTextBlock, 0, doc.PageCount())
	for number := 1; number <= doc.PageCount(); number++ {
		page, err := doc.Page(ctx, number)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, domain.RawTextBlock{
			Text:     page.Text,
			Metadata: map[string]string{domain.MetaPageLabel: strconv.Itoa(number)},
		})
	}
	return blocks, nil
}

// CheckAvailable reports whether the poppler tools are in PATH.
func CheckAvailable() error {
	for _, tool := range []string{"pdftotext", "pdftoppm"} {
		if _, err := exec.LookPath(tool); err != nil {
			return fmt.Errorf("%s: %w", tool, ErrPDFToolNotFound)
		}
	}
	return nil
}

// InstallInstructions returns platform-specific guidance for installing
// the poppler tools.
func InstallInstructions() string {
	return `PDF support requires the poppler tools (pdftotext, pdftoppm):

  macOS:         brew install poppler
  Debian/Ubuntu: sudo apt install poppler-utils
  Fedora:        sudo dnf install poppler-utils
  Arch:          sudo pacman -S poppler`
}

// stageTempFile writes the content to a temporary file and returns its path.
func stageTempFile(content []byte) (string, error) {
	tmp, err := os.CreateTemp("", "docingest-*.pdf")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	path := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(path)
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close temp file: %w", err)
	}
	return path, nil
}
