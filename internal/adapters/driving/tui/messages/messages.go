// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/sonarlabs/docingest/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewUnits lists stored text units.
	ViewUnits
	// ViewUnitContent shows one unit's text.
	ViewUnitContent
	// ViewRetrieve is the retrieval query and results view.
	ViewRetrieve
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewUnits:
		return "units"
	case ViewUnitContent:
		return "unit_content"
	case ViewRetrieve:
		return "retrieve"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// UnitsLoaded carries the list of stored unit summaries from the service.
type UnitsLoaded struct {
	Units []domain.UnitSummary
	Err   error
}

// UnitSelected signals a unit was selected for the content view.
type UnitSelected struct {
	UnitID string
}

// UnitContentLoaded carries the full text of a unit.
type UnitContentLoaded struct {
	UnitID string
	Unit   *domain.TextUnit
	Err    error
}

// UnitDeleted signals a unit deletion completed.
type UnitDeleted struct {
	UnitID string
	Err    error
}

// RetrieveCompleted carries retrieval results back to the model.
type RetrieveCompleted struct {
	Results []domain.RetrievedUnit
	Err     error
}
