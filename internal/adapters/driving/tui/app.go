package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sonarlabs/docingest/internal/adapters/driving/tui/messages"
	"github.com/sonarlabs/docingest/internal/adapters/driving/tui/styles"
	"github.com/sonarlabs/docingest/internal/adapters/driving/tui/views/menu"
	"github.com/sonarlabs/docingest/internal/adapters/driving/tui/views/retrieve"
	"github.com/sonarlabs/docingest/internal/adapters/driving/tui/views/unitcontent"
	"github.com/sonarlabs/docingest/internal/adapters/driving/tui/views/units"
	"github.com/sonarlabs/docingest/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// scope restricts unit listings and retrievals to a tenant.
	scope *domain.TenantScope

	// styles holds the TUI styles.
	styles *styles.Styles

	// menuView is the main navigation menu.
	menuView *menu.View

	// unitsView is the stored-units list view component.
	unitsView *units.View

	// unitContentView is the unit text view component.
	unitContentView *unitcontent.View

	// retrieveView is the retrieval view component.
	retrieveView *retrieve.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// query is the current retrieval query (kept for accessor compatibility).
	query string

	// results holds the current retrieval results (kept for accessor compatibility).
	results []domain.RetrievedUnit

	// selectedIndex is the currently selected result (kept for accessor compatibility).
	selectedIndex int

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	menuView := menu.NewView(s)
	unitsView := units.NewView(s, ports.Ingest)
	unitContentView := unitcontent.NewView(s, ports.Ingest)
	retrieveView := retrieve.NewView(s, nil, ports.Retrieval)

	return &App{
		ports:           ports,
		ctx:             context.Background(),
		styles:          s,
		menuView:        menuView,
		unitsView:       unitsView,
		unitContentView: unitContentView,
		retrieveView:    retrieveView,
		currentView:     messages.ViewMenu, // Start with menu
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.retrieveView.WithContext(ctx)
	return a
}

// WithScope applies a tenant scope to unit listings and retrievals.
func (a *App) WithScope(scope *domain.TenantScope) *App {
	a.scope = scope
	a.unitsView.SetScope(scope)
	a.retrieveView.SetScope(scope)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("docingest - Document Ingestion"),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocognit,gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		// Forward to all views for proper sizing
		a.menuView.SetDimensions(msg.Width, msg.Height)
		a.unitsView.SetDimensions(msg.Width, msg.Height)
		a.unitContentView.SetDimensions(msg.Width, msg.Height)
		a.retrieveView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// Forward key messages to active view
		switch a.currentView {
		case messages.ViewMenu:
			a.menuView, cmd = a.menuView.Update(msg)
			return a, cmd

		case messages.ViewUnits:
			a.unitsView, cmd = a.unitsView.Update(msg)
			return a, cmd

		case messages.ViewUnitContent:
			a.unitContentView, cmd = a.unitContentView.Update(msg)
			return a, cmd

		case messages.ViewRetrieve:
			a.retrieveView, cmd = a.retrieveView.Update(msg)
			// Sync state from retrieveView for accessor compatibility
			a.query = a.retrieveView.Query()
			a.results = a.retrieveView.Results()
			a.selectedIndex = a.retrieveView.SelectedIndex()
			a.err = a.retrieveView.Err()
			return a, cmd

		case messages.ViewHelp:
			// Esc from help goes to menu
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
				return a, nil
			}
			return a, nil
		}
		return a, nil

	case messages.RetrieveCompleted:
		// Forward to retrieveView
		a.retrieveView, cmd = a.retrieveView.Update(msg)
		// Sync state
		a.results = a.retrieveView.Results()
		a.err = a.retrieveView.Err()
		a.selectedIndex = 0
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		// Initialise views when switching to them
		switch msg.View {
		case messages.ViewRetrieve:
			a.retrieveView.Reset()
			return a, a.retrieveView.Init()
		case messages.ViewUnits:
			return a, a.unitsView.Reload()
		case messages.ViewMenu, messages.ViewHelp, messages.ViewUnitContent:
			// Other views don't need special initialisation
		}
		return a, nil

	case messages.UnitsLoaded:
		a.unitsView, cmd = a.unitsView.Update(msg)
		return a, cmd

	case messages.UnitSelected:
		// Navigate to unit content
		a.currentView = messages.ViewUnitContent
		return a, a.unitContentView.SetUnitID(msg.UnitID)

	case messages.UnitContentLoaded:
		a.unitContentView, cmd = a.unitContentView.Update(msg)
		return a, cmd

	case messages.UnitDeleted:
		a.unitsView, cmd = a.unitsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		// Forward to current view
		switch a.currentView {
		case messages.ViewRetrieve:
			a.retrieveView, cmd = a.retrieveView.Update(msg)
		case messages.ViewUnits:
			a.unitsView, cmd = a.unitsView.Update(msg)
		case messages.ViewUnitContent:
			a.unitContentView, cmd = a.unitContentView.Update(msg)
		case messages.ViewMenu, messages.ViewHelp:
			// Other views don't handle error messages
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to active view
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewUnits:
		a.unitsView, cmd = a.unitsView.Update(msg)
	case messages.ViewUnitContent:
		a.unitContentView, cmd = a.unitContentView.Update(msg)
	case messages.ViewRetrieve:
		a.retrieveView, cmd = a.retrieveView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}

	return a, cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewMenu:
		return a.menuView.View()
	case messages.ViewUnits:
		return a.unitsView.View()
	case messages.ViewUnitContent:
		return a.unitContentView.View()
	case messages.ViewRetrieve:
		return a.retrieveView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back to Menu
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  q           Quit

Units:
  j/k, ↑/↓    Navigate units
  enter       Unit actions
  d           Delete unit
  r           Reload list
  esc         Back to Menu

Retrieve:
  (type)      Enter retrieval query
  enter       Submit query
  n           New query (in results)
  esc         Back to Menu

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Query returns the current retrieval query.
func (a *App) Query() string {
	return a.query
}

// Results returns the current retrieval results.
func (a *App) Results() []domain.RetrievedUnit {
	return a.results
}

// SelectedIndex returns the currently selected result index.
func (a *App) SelectedIndex() int {
	return a.selectedIndex
}

// Scope returns the active tenant scope.
func (a *App) Scope() *domain.TenantScope {
	return a.scope
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	// Also set retrieveView dimensions so it renders properly
	a.retrieveView.SetDimensions(width, height)
}
