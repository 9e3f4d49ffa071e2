package services

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/sonarlabs/docingest/internal/core/domain"
	"github.com/sonarlabs/docingest/internal/core/ports/driven"
	"github.com/sonarlabs/docingest/internal/logger"
)

// Transformer turns one input file into an ordered sequence of tagged
// text units. It composes the reader registry, the page classifier and
// the OCR service.
type Transformer struct {
	registry   driven.ReaderRegistry
	classifier *domain.PageClassifier
	ocr        driven.OCRService
}

// NewTransformer creates a transformer.
// The OCR service is optional - without it, pages routed to OCR fail
// with domain.ErrOCRUnavailable.
func NewTransformer(
	registry driven.ReaderRegistry,
	classifier *domain.PageClassifier,
	ocr driven.OCRService,
) *Transformer {
	if classifier == nil {
		classifier = domain.NewPageClassifier(domain.DefaultCoverageThreshold)
	}
	return &Transformer{
		registry:   registry,
		classifier: classifier,
		ocr:        ocr,
	}
}

// Transform converts the file into tagged, finalised units.
// Output order follows page/document order. Any per-page failure aborts
// the whole file; no unit is silently dropped.
func (t *Transformer) Transform(ctx context.Context, fileName string, content []byte, tags domain.TenantTags) ([]*domain.TextUnit, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	logger.Debug("Transforming %s (ext=%q, %d bytes)", fileName, ext, len(content))

	// 1. Resolve a reader strategy by extension
	var (
		units []*domain.TextUnit
		err   error
	)
	strategy, resolved := t.resolve(ext)
	paged, isPaged := strategy.(driven.PagedReader)

	switch {
	case resolved && isPaged:
		units, err = t.transformPaged(ctx, fileName, content, paged)
	case resolved:
		units, err = t.transformWithReader(ctx, fileName, content, strategy)
	default:
		units, err = t.transformRawText(fileName, content)
	}
	if err != nil {
		return nil, err
	}

	// 3. Attach tenant tags uniformly, 4. finalise visibility
	for _, unit := range units {
		unit.ApplyTags(tags)
		unit.Finalise()
	}

	logger.Debug("Transformed %s into %d unit(s)", fileName, len(units))
	return units, nil
}

func (t *Transformer) resolve(ext string) (driven.ReaderStrategy, bool) {
	if t.registry == nil {
		return nil, false
	}
	return t.registry.Resolve(ext)
}

// transformPaged runs the per-page pipeline: title heuristic,
// classification, then native extraction or OCR. The document is opened
// and closed exactly once.
func (t *Transformer) transformPaged(ctx context.Context, fileName string, content []byte, reader driven.PagedReader) ([]*domain.TextUnit, error) {
	doc, err := reader.Open(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", fileName, err)
	}
	defer doc.Close()

	count := doc.PageCount()
	units := make([]*domain.TextUnit, 0, count)

	for number := 1; number <= count; number++ {
		page, err := doc.Page(ctx, number)
		if err != nil {
			return nil, fmt.Errorf("read page %d of %s: %w", number, fileName, err)
		}

		// 2. Title heuristic, then classify
		title := page.Title()
		classification, err := t.classifier.Classify(page)
		if err != nil {
			return nil, fmt.Errorf("classify page %d of %s: %w", number, fileName, err)
		}
		logger.Debug("Page %d/%d of %s: %s", number, count, fileName, classification)

		var text string
		if classification == domain.ClassificationNeedsOCR {
			text, err = t.recognisePage(ctx, doc, number)
			if err != nil {
				return nil, fmt.Errorf("ocr page %d of %s: %w", number, fileName, err)
			}
		} else {
			text = page.Text
		}

		unit := domain.NewTextUnit(text)
		unit.Metadata[domain.MetaPageLabel] = strconv.Itoa(number)
		unit.Metadata[domain.MetaTitle] = title
		units = append(units, unit)
	}

	return units, nil
}

func (t *Transformer) recognisePage(ctx context.Context, doc driven.PagedDocument, number int) (string, error) {
	if t.ocr == nil {
		return "", domain.ErrOCRUnavailable
	}
	image, err := doc.Render(ctx, number)
	if err != nil {
		return "", fmt.Errorf("render: %w", err)
	}
	return t.ocr.Recognise(ctx, image)
}

// transformWithReader delegates to a registered black-box strategy.
func (t *Transformer) transformWithReader(ctx context.Context, fileName string, content []byte, strategy driven.ReaderStrategy) ([]*domain.TextUnit, error) {
	blocks, err := strategy.Read(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("read %s with %s reader: %w", fileName, strategy.Name(), err)
	}

	units := make([]*domain.TextUnit, 0, len(blocks))
	for _, block := range blocks {
		unit := domain.NewTextUnit(block.Text)
		for k, v := range block.Metadata {
			unit.Metadata[k] = v
		}
		units = append(units, unit)
	}
	return units, nil
}

// transformRawText is the fallback for unknown extensions: the whole file
// becomes exactly one unit of UTF-8 text.
func (t *Transformer) transformRawText(fileName string, content []byte) ([]*domain.TextUnit, error) {
	if !utf8.Valid(content) || bytes.ContainsRune(content, 0) {
		return nil, fmt.Errorf("%s is not decodable as text: %w", fileName, domain.ErrUnsupportedInput)
	}
	return []*domain.TextUnit{domain.NewTextUnit(string(content))}, nil
}
