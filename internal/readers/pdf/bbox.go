package pdf

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/sonarlabs/docingest/internal/core/domain"
)

// Structures matching the XML emitted by pdftotext -bbox-layout.
// Coordinates are PDF points with the origin at the top left.

type bboxDocument struct {
	XMLName xml.Name   `xml:"html"`
	Pages   []bboxPage `xml:"body>doc>page"`
}

type bboxPage struct {
	Width  float64    `xml:"width,attr"`
	Height float64    `xml:"height,attr"`
	Flows  []bboxFlow `xml:"flow"`
}

type bboxFlow struct {
	Blocks []bboxBlock `xml:"block"`
}

type bboxBlock struct {
	XMin  float64    `xml:"xMin,attr"`
	YMin  float64    `xml:"yMin,attr"`
	XMax  float64    `xml:"xMax,attr"`
	YMax  float64    `xml:"yMax,attr"`
	Lines []bboxLine `xml:"line"`
}

type bboxLine struct {
	Words []bboxWord `xml:"word"`
}

type bboxWord struct {
	Text string `xml:",chardata"`
}

// parsePage converts one page's layout XML into the domain page model.
// The XML is expected to contain exactly the requested page; a page with
// no text at all still has its page element, just no flows.
func parsePage(data []byte, number int) (*domain.Page, error) {
	var doc bboxDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse page layout: %w", err)
	}
	if len(doc.Pages) == 0 {
		return nil, fmt.Errorf("page %d missing from layout output", number)
	}

	raw := doc.Pages[0]
	page := &domain.Page{
		Number: number,
		Bounds: domain.Rect{X1: raw.Width, Y1: raw.Height},
	}

	var text strings.Builder
	for _, flow := range raw.Flows {
		for _, b := range flow.Blocks {
			block := domain.TextBlock{
				Bounds: domain.Rect{X0: b.XMin, Y0: b.YMin, X1: b.XMax, Y1: b.YMax},
			}
			for _, l := range b.Lines {
				words := make([]string, 0, len(l.Words))
				for _, w := range l.Words {
					words = append(words, strings.TrimSpace(w.Text))
				}
				// The layout output has no style runs, so a line maps
				// to a single span of its space-joined words.
				lineText := strings.Join(words, " ")
				block.Lines = append(block.Lines, domain.Line{
					Spans: []domain.Span{{Text: lineText}},
				})

				if text.Len() > 0 {
					text.WriteByte('\n')
				}
				text.WriteString(lineText)
			}
			page.Blocks = append(page.Blocks, block)
		}
	}
	page.Text = text.String()

	return page, nil
}
