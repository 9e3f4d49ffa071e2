package messages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sonarlabs/docingest/internal/core/domain"
)

func TestViewType_String(t *testing.T) {
	tests := []struct {
		name     string
		view     ViewType
		expected string
	}{
		{"menu", ViewMenu, "menu"},
		{"units", ViewUnits, "units"},
		{"unit content", ViewUnitContent, "unit_content"},
		{"retrieve", ViewRetrieve, "retrieve"},
		{"help", ViewHelp, "help"},
		{"unknown", ViewType(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.view.String())
		})
	}
}

func TestViewChanged(t *testing.T) {
	msg := ViewChanged{View: ViewRetrieve}

	assert.Equal(t, ViewRetrieve, msg.View)
}

func TestErrorOccurred(t *testing.T) {
	err := errors.New("something broke")
	msg := ErrorOccurred{Err: err}

	assert.Equal(t, err, msg.Err)
}

func TestUnitsLoaded(t *testing.T) {
	units := []domain.UnitSummary{
		{ID: "unit-1", Metadata: map[string]string{domain.MetaFileName: "a.txt"}},
	}
	msg := UnitsLoaded{Units: units}

	assert.Len(t, msg.Units, 1)
	assert.Equal(t, "unit-1", msg.Units[0].ID)
	assert.NoError(t, msg.Err)
}

func TestUnitsLoaded_Error(t *testing.T) {
	err := errors.New("store unavailable")
	msg := UnitsLoaded{Err: err}

	assert.Empty(t, msg.Units)
	assert.Equal(t, err, msg.Err)
}

func TestUnitSelected(t *testing.T) {
	msg := UnitSelected{UnitID: "unit-42"}

	assert.Equal(t, "unit-42", msg.UnitID)
}

func TestUnitContentLoaded(t *testing.T) {
	unit := domain.NewTextUnit("page text")
	msg := UnitContentLoaded{UnitID: unit.ID, Unit: unit}

	assert.Equal(t, unit.ID, msg.UnitID)
	assert.Equal(t, "page text", msg.Unit.Text)
	assert.NoError(t, msg.Err)
}

func TestUnitDeleted(t *testing.T) {
	msg := UnitDeleted{UnitID: "unit-1"}

	assert.Equal(t, "unit-1", msg.UnitID)
	assert.NoError(t, msg.Err)
}

func TestRetrieveCompleted(t *testing.T) {
	results := []domain.RetrievedUnit{
		{Unit: domain.TextUnit{ID: "unit-1", Text: "match"}, Score: 0.9},
	}
	msg := RetrieveCompleted{Results: results}

	assert.Len(t, msg.Results, 1)
	assert.Equal(t, 0.9, msg.Results[0].Score)
	assert.NoError(t, msg.Err)
}

func TestRetrieveCompleted_Error(t *testing.T) {
	err := errors.New("retriever down")
	msg := RetrieveCompleted{Err: err}

	assert.Empty(t, msg.Results)
	assert.Equal(t, err, msg.Err)
}
