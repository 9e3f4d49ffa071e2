package pdf

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonarlabs/docingest/internal/core/domain"
	"github.com/sonarlabs/docingest/internal/core/ports/driven"
)

// mockRunner is a test double for CommandRunner.
type mockRunner struct {
	output   []byte
	err      error
	lastName string
	lastArgs []string
}

func (m *mockRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	m.lastName = name
	m.lastArgs = args
	return m.output, m.err
}

func TestNew(t *testing.T) {
	reader := New()
	require.NotNil(t, reader)
	assert.IsType(t, &Reader{}, reader)
}

func TestNewWithRunner(t *testing.T) {
	runner := &mockRunner{output: []byte("test output")}
	reader := NewWithRunner(runner)
	require.NotNil(t, reader)
	assert.Equal(t, runner, reader.runner)
}

func TestName(t *testing.T) {
	reader := New()
	assert.Equal(t, "pdf", reader.Name())
}

func TestExtensions(t *testing.T) {
	reader := New()
	assert.Equal(t, []string{".pdf"}, reader.Extensions())
}

func TestOpen_RejectsNonPDF(t *testing.T) {
	reader := New()
	ctx := context.Background()

	doc, err := reader.Open(ctx, []byte("this is not a pdf"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupportedInput)
	assert.Nil(t, doc)
}

func TestDocument_Page_WithMockRunner(t *testing.T) {
	runner := &mockRunner{
		output: layoutXML(`<page width="612.0" height="792.0">
  <flow>
    <block xMin="72.0" yMin="72.0" xMax="540.0" yMax="96.0">
      <line xMin="72.0" yMin="72.0" xMax="540.0" yMax="96.0">
        <word xMin="72.0" yMin="72.0" xMax="540.0" yMax="96.0">Hello</word>
      </line>
    </block>
  </flow>
</page>`),
	}
	doc := &document{path: "/tmp/staged.pdf", count: 3, runner: runner}

	page, err := doc.Page(context.Background(), 2)
	require.NoError(t, err)

	assert.Equal(t, 2, page.Number)
	assert.Equal(t, "Hello", page.Text)
	assert.Equal(t, "pdftotext", runner.lastName)
	assert.Contains(t, runner.lastArgs, "-bbox-layout")
	assert.Contains(t, runner.lastArgs, "/tmp/staged.pdf")
	// Page selection is passed through -f/-l.
	assert.Contains(t, runner.lastArgs, "-f")
	assert.Contains(t, runner.lastArgs, "2")
}

func TestDocument_Page_OutOfRange(t *testing.T) {
	tests := []struct {
		name   string
		number int
	}{
		{
			name:   "zero",
			number: 0,
		},
		{
			name:   "negative",
			number: -1,
		},
		{
			name:   "past last page",
			number: 4,
		},
	}

	doc := &document{path: "/tmp/staged.pdf", count: 3, runner: &mockRunner{}}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			page, err := doc.Page(context.Background(), tc.number)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Nil(t, page)
		})
	}
}

func TestDocument_Page_RunnerError(t *testing.T) {
	runner := &mockRunner{err: errors.New("tool crashed")}
	doc := &document{path: "/tmp/staged.pdf", count: 1, runner: runner}

	page, err := doc.Page(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pdftotext failed")
	assert.Nil(t, page)
}

func TestDocument_Render_WithMockRunner(t *testing.T) {
	pngBytes := []byte{0x89, 'P', 'N', 'G'}
	runner := &mockRunner{output: pngBytes}
	doc := &document{path: "/tmp/staged.pdf", count: 2, runner: runner}

	image, err := doc.Render(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, pngBytes, image)
	assert.Equal(t, "pdftoppm", runner.lastName)
	assert.Contains(t, runner.lastArgs, "-png")
	assert.Contains(t, runner.lastArgs, "-singlefile")
}

func TestDocument_Render_OutOfRange(t *testing.T) {
	doc := &document{path: "/tmp/staged.pdf", count: 2, runner: &mockRunner{}}

	image, err := doc.Render(context.Background(), 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, image)
}

func TestDocument_Render_RunnerError(t *testing.T) {
	runner := &mockRunner{err: errors.New("render blew up")}
	doc := &document{path: "/tmp/staged.pdf", count: 1, runner: runner}

	image, err := doc.Render(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pdftoppm failed")
	assert.Nil(t, image)
}

func TestDocument_Close_RemovesStagedFile(t *testing.T) {
	tmp, err := os.CreateTemp("", "docingest-test-*.pdf")
	require.NoError(t, err)
	path := tmp.Name()
	require.NoError(t, tmp.Close())

	doc := &document{path: path, count: 1, runner: &mockRunner{}}
	require.NoError(t, doc.Close())

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestInstallInstructions(t *testing.T) {
	instructions := InstallInstructions()
	assert.Contains(t, instructions, "pdftotext")
	assert.Contains(t, instructions, "brew install poppler")
	assert.Contains(t, instructions, "apt install poppler-utils")
}

func TestErrPDFToolNotFound(t *testing.T) {
	assert.Error(t, ErrPDFToolNotFound)
	assert.Contains(t, ErrPDFToolNotFound.Error(), "pdftotext")
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.PagedReader = (*Reader)(nil)
	var _ driven.PagedDocument = (*document)(nil)
}

// Integration test - only runs if the poppler tools are available.
func TestRead_Integration(t *testing.T) {
	if err := CheckAvailable(); err != nil {
		t.Skip("poppler tools not available, skipping integration test")
	}

	// This test would require a real PDF file.
	// For CI, we rely on the mock tests above.
	t.Skip("integration test requires sample PDF file")
}
