package domain

// Classification is the page classifier's verdict for one page.
type Classification string

const (
	// ClassificationNativeText means the page's extracted text is usable as-is.
	ClassificationNativeText Classification = "native_text"

	// ClassificationNeedsOCR means the page must be re-derived via OCR.
	ClassificationNeedsOCR Classification = "needs_ocr"
)

// DefaultCoverageThreshold is the text coverage ratio below which a page
// is routed to OCR.
const DefaultCoverageThreshold = 0.30

// PageClassifier decides whether a page's native text is sufficient or
// OCR is required, based on text coverage. The computation is pure and
// in-memory; it never suspends.
type PageClassifier struct {
	threshold float64
}

// NewPageClassifier creates a classifier with the given coverage threshold.
// Thresholds at or below zero fall back to the default.
func NewPageClassifier(threshold float64) *PageClassifier {
	if threshold <= 0 {
		threshold = DefaultCoverageThreshold
	}
	return &PageClassifier{threshold: threshold}
}

// Threshold returns the configured coverage threshold.
func (c *PageClassifier) Threshold() float64 {
	return c.threshold
}

// Classify routes a page to native extraction or OCR.
// Coverage below the threshold means NeedsOCR; coverage at or above it,
// including exactly at the threshold, means NativeText. Zero text blocks
// always classify as NeedsOCR. Zero-area pages fail with
// ErrInvalidPageGeometry rather than dividing by zero.
func (c *PageClassifier) Classify(page *Page) (Classification, error) {
	coverage, err := page.TextCoverage()
	if err != nil {
		return "", err
	}
	if coverage < c.threshold {
		return ClassificationNeedsOCR, nil
	}
	return ClassificationNativeText, nil
}
