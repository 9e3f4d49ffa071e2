package pdf

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/sonarlabs/docingest/internal/core/domain"
	"github.com/sonarlabs/docingest/internal/core/ports/driven"
)

// Ensure document implements the interface.
var _ driven.PagedDocument = (*document)(nil)

// document is an open PDF staged to a temporary file.
// All page access shells out to the poppler tools against that file.
type document struct {
	path   string
	count  int
	runner driven.CommandRunner
}

// PageCount returns the number of pages.
func (d *document) PageCount() int {
	return d.count
}

// Page extracts one page's text and layout geometry via
// pdftotext -bbox-layout.
func (d *document) Page(ctx context.Context, number int) (*domain.Page, error) {
	if err := d.checkRange(number); err != nil {
		return nil, err
	}

	out, err := d.runner.Run(ctx, "pdftotext",
		"-bbox-layout",
		"-f", strconv.Itoa(number),
		"-l", strconv.Itoa(number),
		d.path, "-")
	if err != nil {
		return nil, fmt.Errorf("pdftotext failed: %w", err)
	}

	return parsePage(out, number)
}

// Render rasterises one page to a PNG via pdftoppm.
func (d *document) Render(ctx context.Context, number int) ([]byte, error) {
	if err := d.checkRange(number); err != nil {
		return nil, err
	}

	out, err := d.runner.Run(ctx, "pdftoppm",
		"-png",
		"-r", "300",
		"-f", strconv.Itoa(number),
		"-l", strconv.Itoa(number),
		"-singlefile",
		d.path)
	if err != nil {
		return nil, fmt.Errorf("pdftoppm failed: %w", err)
	}
	return out, nil
}

// Close removes the staged temporary file.
func (d *document) Close() error {
	return os.Remove(d.path)
}

func (d *document) checkRange(number int) error {
	if number < 1 || number > d.count {
		return fmt.Errorf("page %d out of range 1..%d: %w", number, d.count, domain.ErrInvalidInput)
	}
	return nil
}
