package unitcontent

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonarlabs/docingest/internal/adapters/driving/tui/messages"
	"github.com/sonarlabs/docingest/internal/adapters/driving/tui/styles"
	"github.com/sonarlabs/docingest/internal/core/domain"
)

// MockIngestService implements driving.IngestService for testing.
type MockIngestService struct {
	IngestFileFunc  func(ctx context.Context, fileName string, content []byte, tags domain.TenantTags) ([]*domain.TextUnit, error)
	IngestFilesFunc func(ctx context.Context, inputs []domain.IngestInput) (*domain.BatchResult, error)
	IngestTextFunc  func(ctx context.Context, fileName, text string, tags domain.TenantTags) ([]*domain.TextUnit, error)
	ListUnitsFunc   func(ctx context.Context, scope *domain.TenantScope) ([]domain.UnitSummary, error)
	GetUnitFunc     func(ctx context.Context, id string) (*domain.TextUnit, error)
	DeleteUnitFunc  func(ctx context.Context, id string) error
}

func (m *MockIngestService) IngestFile(ctx context.Context, fileName string, content []byte, tags domain.TenantTags) ([]*domain.TextUnit, error) {
	if m.IngestFileFunc != nil {
		return m.IngestFileFunc(ctx, fileName, content, tags)
	}
	return nil, nil
}

func (m *MockIngestService) IngestFiles(ctx context.Context, inputs []domain.IngestInput) (*domain.BatchResult, error) {
	if m.IngestFilesFunc != nil {
		return m.IngestFilesFunc(ctx, inputs)
	}
	return &domain.BatchResult{}, nil
}

func (m *MockIngestService) IngestText(ctx context.Context, fileName, text string, tags domain.TenantTags) ([]*domain.TextUnit, error) {
	if m.IngestTextFunc != nil {
		return m.IngestTextFunc(ctx, fileName, text, tags)
	}
	return nil, nil
}

func (m *MockIngestService) ListUnits(ctx context.Context, scope *domain.TenantScope) ([]domain.UnitSummary, error) {
	if m.ListUnitsFunc != nil {
		return m.ListUnitsFunc(ctx, scope)
	}
	return []domain.UnitSummary{}, nil
}

func (m *MockIngestService) GetUnit(ctx context.Context, id string) (*domain.TextUnit, error) {
	if m.GetUnitFunc != nil {
		return m.GetUnitFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockIngestService) DeleteUnit(ctx context.Context, id string) error {
	if m.DeleteUnitFunc != nil {
		return m.DeleteUnitFunc(ctx, id)
	}
	return nil
}

func testUnit() *domain.TextUnit {
	return &domain.TextUnit{
		ID:   "unit-1",
		Text: "Scanned page text recovered by OCR.",
		Metadata: map[string]string{
			domain.MetaFileName:  "report.pdf",
			domain.MetaPageLabel: "3",
		},
	}
}

func TestNewView(t *testing.T) {
	s := styles.DefaultStyles()
	mock := &MockIngestService{}

	view := NewView(s, mock)

	require.NotNil(t, view)
	assert.False(t, view.ready)
	assert.Empty(t, view.UnitID())
}

func TestView_SetUnitID(t *testing.T) {
	mock := &MockIngestService{
		GetUnitFunc: func(ctx context.Context, id string) (*domain.TextUnit, error) {
			assert.Equal(t, "unit-1", id)
			return testUnit(), nil
		},
	}
	view := NewView(nil, mock)

	cmd := view.SetUnitID("unit-1")

	require.NotNil(t, cmd)
	assert.Equal(t, "unit-1", view.UnitID())
	assert.True(t, view.loading)

	result := cmd()
	loaded, ok := result.(messages.UnitContentLoaded)
	require.True(t, ok)
	assert.NoError(t, loaded.Err)
	assert.Equal(t, "unit-1", loaded.UnitID)
	require.NotNil(t, loaded.Unit)
	assert.Equal(t, "Scanned page text recovered by OCR.", loaded.Unit.Text)
}

func TestView_SetUnitID_NoService(t *testing.T) {
	view := NewView(nil, nil)

	cmd := view.SetUnitID("unit-1")

	require.NotNil(t, cmd)
	result := cmd()
	loaded, ok := result.(messages.UnitContentLoaded)
	require.True(t, ok)
	assert.Error(t, loaded.Err)
}

func TestView_Update_UnitContentLoaded(t *testing.T) {
	view := NewView(nil, nil)
	view.width = 80
	view.height = 24
	view.loading = true

	msg := messages.UnitContentLoaded{UnitID: "unit-1", Unit: testUnit()}
	updated, cmd := view.Update(msg)

	assert.Equal(t, view, updated)
	assert.Nil(t, cmd)
	assert.False(t, view.loading)
	require.NotNil(t, view.Unit())
	assert.NotEmpty(t, view.lines)
}

func TestView_Update_UnitContentLoaded_Error(t *testing.T) {
	view := NewView(nil, nil)
	view.loading = true

	msg := messages.UnitContentLoaded{UnitID: "unit-1", Err: errors.New("unit not found")}
	view.Update(msg)

	assert.False(t, view.loading)
	assert.Error(t, view.Err())
}

func TestView_Update_WindowSize(t *testing.T) {
	view := NewView(nil, nil)

	msg := tea.WindowSizeMsg{Width: 100, Height: 30}
	view.Update(msg)

	assert.True(t, view.ready)
	assert.Equal(t, 100, view.width)
	assert.Equal(t, 30, view.height)
}

func TestView_Update_KeyMsg_Back(t *testing.T) {
	view := NewView(nil, nil)

	msg := tea.KeyMsg{Type: tea.KeyEsc}
	_, cmd := view.Update(msg)

	require.NotNil(t, cmd)
	result := cmd()
	changed, ok := result.(messages.ViewChanged)
	assert.True(t, ok)
	assert.Equal(t, messages.ViewUnits, changed.View)
}

func TestView_Scrolling(t *testing.T) {
	view := NewView(nil, nil)
	view.width = 80
	view.height = 10

	longText := strings.Repeat("line\n", 50)
	view.Update(messages.UnitContentLoaded{Unit: &domain.TextUnit{ID: "unit-1", Text: longText}})

	assert.Equal(t, 0, view.scrollOffset)

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 1, view.scrollOffset)

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 0, view.scrollOffset)

	// Cannot scroll above the top
	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 0, view.scrollOffset)

	// Jump to bottom and back
	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
	assert.Equal(t, view.maxScrollOffset(), view.scrollOffset)

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	assert.Equal(t, 0, view.scrollOffset)
}

func TestView_WrapContent_LongLines(t *testing.T) {
	view := NewView(nil, nil)
	view.width = 30

	view.Update(messages.UnitContentLoaded{Unit: &domain.TextUnit{
		ID:   "unit-1",
		Text: strings.Repeat("a", 100),
	}})

	require.NotEmpty(t, view.lines)
	for _, line := range view.lines {
		assert.LessOrEqual(t, len(line), 26)
	}
}

func TestView_View_Loading(t *testing.T) {
	view := NewView(styles.DefaultStyles(), nil)
	view.SetDimensions(80, 24)
	view.loading = true

	out := view.View()

	assert.Contains(t, out, "Loading unit...")
}

func TestView_View_WithUnit(t *testing.T) {
	view := NewView(styles.DefaultStyles(), nil)
	view.SetDimensions(80, 24)
	view.Update(messages.UnitContentLoaded{Unit: testUnit()})

	out := view.View()

	assert.Contains(t, out, "report.pdf (page 3)")
	assert.Contains(t, out, "Scanned page text recovered by OCR.")
}

func TestView_View_TitlePrefersMetadataTitle(t *testing.T) {
	unit := testUnit()
	unit.Metadata[domain.MetaTitle] = "Quarterly Report"

	view := NewView(styles.DefaultStyles(), nil)
	view.SetDimensions(80, 24)
	view.Update(messages.UnitContentLoaded{Unit: unit})

	out := view.View()

	assert.Contains(t, out, "Quarterly Report")
}

func TestView_View_Error(t *testing.T) {
	view := NewView(styles.DefaultStyles(), nil)
	view.SetDimensions(80, 24)
	view.err = errors.New("unit not found")

	out := view.View()

	assert.Contains(t, out, "Error: unit not found")
}

func TestView_View_Empty(t *testing.T) {
	view := NewView(styles.DefaultStyles(), nil)
	view.SetDimensions(80, 24)

	out := view.View()

	assert.Contains(t, out, "(No text)")
}
