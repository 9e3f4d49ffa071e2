package markdown

import (
	"context"
	"regexp"
	"strings"

	"github.com/sonarlabs/docingest/internal/core/domain"
	"github.com/sonarlabs/docingest/internal/core/ports/driven"
)

// Ensure Reader implements the interface.
var _ driven.ReaderStrategy = (*Reader)(nil)

// Reader handles Markdown files. Formatting is stripped so the stored
// text reads as prose; the first level-one heading becomes the title.
type Reader struct{}

// New creates a new Markdown reader.
func New() *Reader {
	return &Reader{}
}

// Name identifies the strategy.
func (r *Reader) Name() string {
	return "markdown"
}

// Extensions returns the file extensions this reader handles.
func (r *Reader) Extensions() []string {
	return []string{".md", ".markdown"}
}

// Read converts the file content into a single text block with the
// markdown formatting simplified away.
func (r *Reader) Read(_ context.Context, content []byte) ([]domain.RawTextBlock, error) {
	raw := string(content)

	block := domain.RawTextBlock{
		Text:     stripMarkdown(raw),
		Metadata: map[string]string{"format": "markdown"},
	}
	if title := firstHeading(raw); title != "" {
		block.Metadata[domain.MetaTitle] = title
	}

	return []domain.RawTextBlock{block}, nil
}

// firstHeading returns the first H1 heading, or "" when there is none.
func firstHeading(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "#"))
		}
	}
	return ""
}

var (
	codeBlockPattern    = regexp.MustCompile("(?s)```[^`]*```")
	inlineCodePattern   = regexp.MustCompile("`[^`]+`")
	imagePattern        = regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)
	linkPattern         = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	headingPattern      = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	blockquotePattern   = regexp.MustCompile(`(?m)^>\s*`)
	horizontalRule      = regexp.MustCompile(`(?m)^[-*_]{3,}\s*$`)
	listMarkerPattern   = regexp.MustCompile(`(?m)^\s*[-*+]\s+`)
	numberedListPattern = regexp.MustCompile(`(?m)^\s*\d+\.\s+`)
	extraNewlines       = regexp.MustCompile(`\n{3,}`)
)

// stripMarkdown removes common markdown formatting.
// It handles the constructs that matter for retrieval text; exotic
// syntax passes through unchanged.
func stripMarkdown(content string) string {
	content = codeBlockPattern.ReplaceAllString(content, "")
	content = inlineCodePattern.ReplaceAllString(content, "")
	content = imagePattern.ReplaceAllString(content, "")
	content = linkPattern.ReplaceAllString(content, "$1")
	content = headingPattern.ReplaceAllString(content, "")
	content = horizontalRule.ReplaceAllString(content, "")
	content = blockquotePattern.ReplaceAllString(content, "")
	content = listMarkerPattern.ReplaceAllString(content, "")
	content = numberedListPattern.ReplaceAllString(content, "")

	// Emphasis markers after the structural patterns, so rules and list
	// markers are still recognisable above.
	content = strings.ReplaceAll(content, "**", "")
	content = strings.ReplaceAll(content, "__", "")
	content = strings.ReplaceAll(content, "*", "")

	content = extraNewlines.ReplaceAllString(content, "\n\n")
	return strings.TrimSpace(content)
}
