package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// layoutXML builds a minimal pdftotext -bbox-layout document around the
// given page body.
func layoutXML(pageBody string) []byte {
	return []byte(`<?xml version="1.0"?>
<html xmlns="http://www.w3.org/1999/xhtml">
<head><title></title></head>
<body>
<doc>
` + pageBody + `
</doc>
</body>
</html>`)
}

func TestParsePage_FullLayout(t *testing.T) {
	data := layoutXML(`<page width="612.000000" height="792.000000">
  <flow>
    <block xMin="72.0" yMin="72.0" xMax="540.0" yMax="96.0">
      <line xMin="72.0" yMin="72.0" xMax="540.0" yMax="96.0">
        <word xMin="72.0" yMin="72.0" xMax="200.0" yMax="96.0">Quarterly</word>
        <word xMin="210.0" yMin="72.0" xMax="320.0" yMax="96.0">Report</word>
      </line>
    </block>
    <block xMin="72.0" yMin="120.0" xMax="540.0" yMax="700.0">
      <line xMin="72.0" yMin="120.0" xMax="300.0" yMax="140.0">
        <word xMin="72.0" yMin="120.0" xMax="150.0" yMax="140.0">Revenue</word>
        <word xMin="160.0" yMin="120.0" xMax="220.0" yMax="140.0">grew</word>
      </line>
      <line xMin="72.0" yMin="150.0" xMax="300.0" yMax="170.0">
        <word xMin="72.0" yMin="150.0" xMax="180.0" yMax="170.0">strongly</word>
      </line>
    </block>
  </flow>
</page>`)

	page, err := parsePage(data, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 612.0, page.Bounds.Width())
	assert.Equal(t, 792.0, page.Bounds.Height())
	require.Len(t, page.Blocks, 2)

	first := page.Blocks[0]
	assert.Equal(t, 72.0, first.Bounds.X0)
	assert.Equal(t, 96.0, first.Bounds.Y1)
	require.Len(t, first.Lines, 1)
	require.Len(t, first.Lines[0].Spans, 1)
	assert.Equal(t, "Quarterly Report", first.Lines[0].Spans[0].Text)

	assert.Equal(t, "Quarterly Report\nRevenue grew\nstrongly", page.Text)
	assert.Equal(t, "Quarterly Report", page.Title())
}

func TestParsePage_EmptyPage(t *testing.T) {
	data := layoutXML(`<page width="612.0" height="792.0">
</page>`)

	page, err := parsePage(data, 3)
	require.NoError(t, err)

	assert.Equal(t, 3, page.Number)
	assert.Empty(t, page.Blocks)
	assert.Empty(t, page.Text)

	coverage, err := page.TextCoverage()
	require.NoError(t, err)
	assert.Zero(t, coverage)
	assert.Equal(t, "Document 3", page.Title())
}

func TestParsePage_MultipleFlows(t *testing.T) {
	data := layoutXML(`<page width="100.0" height="100.0">
  <flow>
    <block xMin="0" yMin="0" xMax="100" yMax="30">
      <line xMin="0" yMin="0" xMax="100" yMax="30">
        <word xMin="0" yMin="0" xMax="100" yMax="30">alpha</word>
      </line>
    </block>
  </flow>
  <flow>
    <block xMin="0" yMin="40" xMax="100" yMax="70">
      <line xMin="0" yMin="40" xMax="100" yMax="70">
        <word xMin="0" yMin="40" xMax="100" yMax="70">beta</word>
      </line>
    </block>
  </flow>
</page>`)

	page, err := parsePage(data, 1)
	require.NoError(t, err)

	require.Len(t, page.Blocks, 2)
	assert.Equal(t, "alpha\nbeta", page.Text)

	coverage, err := page.TextCoverage()
	require.NoError(t, err)
	assert.InDelta(t, 0.6, coverage, 1e-9)
}

func TestParsePage_MissingPageElement(t *testing.T) {
	data := layoutXML("")

	page, err := parsePage(data, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page 2 missing")
	assert.Nil(t, page)
}

func TestParsePage_MalformedXML(t *testing.T) {
	page, err := parsePage([]byte("not xml at all <<<"), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse page layout")
	assert.Nil(t, page)
}
