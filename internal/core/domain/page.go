package domain

import (
	"fmt"
	"strings"
)

// Rect is an axis-aligned bounding box in page coordinates.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float64 {
	return r.X1 - r.X0
}

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 {
	return r.Y1 - r.Y0
}

// Area returns the rectangle's area. Inverted rectangles have zero area.
func (r Rect) Area() float64 {
	w := r.Width()
	h := r.Height()
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// Span is a contiguous run of text within a line.
type Span struct {
	Text string
}

// Line is one line of text within a block.
type Line struct {
	Spans []Span
}

// TextBlock is a detected block of text with its bounding geometry.
type TextBlock struct {
	Bounds Rect
	Lines  []Line
}

// Page is one page of a paged document with its text layout.
type Page struct {
	// Number is the 1-based page number.
	Number int

	// Bounds is the page's bounding box.
	Bounds Rect

	// Blocks are the detected text blocks in reading order.
	Blocks []TextBlock

	// Text is the natively extracted page text.
	Text string
}

// TextCoverage returns the ratio of total text block area to page area.
// A page with no text blocks has zero coverage. A page with zero area is
// undefined input and returns ErrInvalidPageGeometry.
func (p *Page) TextCoverage() (float64, error) {
	pageArea := p.Bounds.Area()
	if pageArea <= 0 {
		return 0, fmt.Errorf("page %d: %w", p.Number, ErrInvalidPageGeometry)
	}

	var blockArea float64
	for _, block := range p.Blocks {
		blockArea += block.Bounds.Area()
	}
	return blockArea / pageArea, nil
}

// Title derives a page title from the first text block's first line's
// first span, trimmed. Pages without usable text synthesise
// "Document {page_number}".
func (p *Page) Title() string {
	if len(p.Blocks) > 0 {
		block := p.Blocks[0]
		if len(block.Lines) > 0 && len(block.Lines[0].Spans) > 0 {
			if title := strings.TrimSpace(block.Lines[0].Spans[0].Text); title != "" {
				return title
			}
		}
	}
	return fmt.Sprintf("Document %d", p.Number)
}
