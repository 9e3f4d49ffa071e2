package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pageWithCoverage builds a 10x10 page with one block covering the given
// fraction of the page area
func pageWithCoverage(number int, coverage float64) *Page {
	page := &Page{
		Number: number,
		Bounds: Rect{X0: 0, Y0: 0, X1: 10, Y1: 10},
	}
	if coverage > 0 {
		page.Blocks = []TextBlock{
			{Bounds: Rect{X0: 0, Y0: 0, X1: 10, Y1: coverage * 10}},
		}
	}
	return page
}

// TestNewPageClassifier_DefaultThreshold tests threshold fallback behaviour
func TestNewPageClassifier_DefaultThreshold(t *testing.T) {
	tests := []struct {
		name      string
		threshold float64
		expected  float64
	}{
		{
			name:      "explicit threshold is kept",
			threshold: 0.5,
			expected:  0.5,
		},
		{
			name:      "zero falls back to default",
			threshold: 0,
			expected:  DefaultCoverageThreshold,
		},
		{
			name:      "negative falls back to default",
			threshold: -1,
			expected:  DefaultCoverageThreshold,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classifier := NewPageClassifier(tt.threshold)
			assert.Equal(t, tt.expected, classifier.Threshold())
		})
	}
}

// TestPageClassifier_Classify tests coverage routing
func TestPageClassifier_Classify(t *testing.T) {
	tests := []struct {
		name     string
		coverage float64
		expected Classification
	}{
		{
			name:     "high coverage is native text",
			coverage: 0.60,
			expected: ClassificationNativeText,
		},
		{
			name:     "low coverage needs ocr",
			coverage: 0.05,
			expected: ClassificationNeedsOCR,
		},
		{
			name:     "just below threshold needs ocr",
			coverage: 0.29,
			expected: ClassificationNeedsOCR,
		},
		{
			name:     "zero text blocks needs ocr",
			coverage: 0,
			expected: ClassificationNeedsOCR,
		},
	}

	classifier := NewPageClassifier(DefaultCoverageThreshold)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := classifier.Classify(pageWithCoverage(1, tt.coverage))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// TestPageClassifier_Classify_ExactThresholdIsNativeText tests the boundary
func TestPageClassifier_Classify_ExactThresholdIsNativeText(t *testing.T) {
	classifier := NewPageClassifier(DefaultCoverageThreshold)

	// 30 of 100 area units: coverage is exactly the threshold.
	page := &Page{
		Number: 1,
		Bounds: Rect{X0: 0, Y0: 0, X1: 10, Y1: 10},
		Blocks: []TextBlock{
			{Bounds: Rect{X0: 0, Y0: 0, X1: 10, Y1: 3}},
		},
	}

	result, err := classifier.Classify(page)
	require.NoError(t, err)
	assert.Equal(t, ClassificationNativeText, result)
}

// TestPageClassifier_Classify_ZeroAreaPage tests the fail-fast geometry guard
func TestPageClassifier_Classify_ZeroAreaPage(t *testing.T) {
	classifier := NewPageClassifier(DefaultCoverageThreshold)

	page := &Page{Number: 3, Bounds: Rect{X0: 0, Y0: 0, X1: 0, Y1: 0}}
	result, err := classifier.Classify(page)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPageGeometry)
	assert.Contains(t, err.Error(), "page 3")
	assert.Empty(t, result)
}

// TestPageClassifier_Classify_CustomThreshold tests a non-default cutoff
func TestPageClassifier_Classify_CustomThreshold(t *testing.T) {
	classifier := NewPageClassifier(0.50)

	result, err := classifier.Classify(pageWithCoverage(1, 0.40))
	require.NoError(t, err)
	assert.Equal(t, ClassificationNeedsOCR, result)

	result, err = classifier.Classify(pageWithCoverage(1, 0.60))
	require.NoError(t, err)
	assert.Equal(t, ClassificationNativeText, result)
}
