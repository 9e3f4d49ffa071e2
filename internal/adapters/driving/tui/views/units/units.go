// Package units provides the stored-units list view component for the TUI.
package units

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sonarlabs/docingest/internal/adapters/driving/tui/messages"
	"github.com/sonarlabs/docingest/internal/adapters/driving/tui/styles"
	"github.com/sonarlabs/docingest/internal/core/domain"
	"github.com/sonarlabs/docingest/internal/core/ports/driving"
)

// ActionOption represents a unit action.
type ActionOption int

const (
	ActionShowText ActionOption = iota
	ActionDelete
	ActionCancel
)

// View is the stored-units list view.
type View struct {
	styles        *styles.Styles
	ingestService driving.IngestService

	scope        *domain.TenantScope
	units        []domain.UnitSummary
	selected     int
	width        int
	height       int
	ready        bool
	err          error
	loading      bool
	showingMenu  bool
	menuSelected ActionOption
	scrollOffset int
}

// NewView creates a new units view.
func NewView(s *styles.Styles, ingestService driving.IngestService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:        s,
		ingestService: ingestService,
		units:         []domain.UnitSummary{},
	}
}

// SetScope sets the tenant scope applied to unit listings.
func (v *View) SetScope(scope *domain.TenantScope) {
	v.scope = scope
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Reload returns a command that reloads the unit list.
func (v *View) Reload() tea.Cmd {
	v.loading = true
	v.err = nil
	v.showingMenu = false
	return v.loadUnits()
}

// loadUnits returns a command that lists stored units.
func (v *View) loadUnits() tea.Cmd {
	return func() tea.Msg {
		if v.ingestService == nil {
			return messages.UnitsLoaded{Err: fmt.Errorf("ingest service not available")}
		}

		units, err := v.ingestService.ListUnits(context.Background(), v.scope)
		return messages.UnitsLoaded{
			Units: units,
			Err:   err,
		}
	}
}

// Update handles messages for the units view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		if v.showingMenu {
			return v.handleMenuKeyMsg(msg)
		}
		return v.handleKeyMsg(msg)

	case messages.UnitsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.units = msg.Units
			v.err = nil
			if v.selected >= len(v.units) {
				v.selected = 0
				v.scrollOffset = 0
			}
		}
		return v, nil

	case messages.UnitDeleted:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		// Reload after deletion
		return v, v.Reload()

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses in list mode.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
			v.adjustScroll()
		}
	case "down", "j":
		if v.selected < len(v.units)-1 {
			v.selected++
			v.adjustScroll()
		}
	case "enter":
		if len(v.units) > 0 {
			v.showingMenu = true
			v.menuSelected = ActionShowText
		}
	case "d":
		if v.selected < len(v.units) {
			return v, v.deleteUnit(v.units[v.selected].ID)
		}
	case "r":
		return v, v.Reload()
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	return v, nil
}

// handleMenuKeyMsg handles key presses in action menu mode.
func (v *View) handleMenuKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.menuSelected > ActionShowText {
			v.menuSelected--
		}
	case "down", "j":
		if v.menuSelected < ActionCancel {
			v.menuSelected++
		}
	case "enter":
		return v.handleMenuSelect()
	case "esc":
		v.showingMenu = false
	}

	return v, nil
}

// handleMenuSelect handles selection of an action.
func (v *View) handleMenuSelect() (*View, tea.Cmd) {
	if v.selected >= len(v.units) {
		v.showingMenu = false
		return v, nil
	}

	unit := v.units[v.selected]

	switch v.menuSelected {
	case ActionShowText:
		v.showingMenu = false
		return v, func() tea.Msg {
			return messages.UnitSelected{UnitID: unit.ID}
		}
	case ActionDelete:
		v.showingMenu = false
		return v, v.deleteUnit(unit.ID)
	case ActionCancel:
		v.showingMenu = false
	}

	return v, nil
}

// deleteUnit returns a command that deletes the unit.
func (v *View) deleteUnit(unitID string) tea.Cmd {
	return func() tea.Msg {
		if v.ingestService == nil {
			return messages.UnitDeleted{UnitID: unitID, Err: fmt.Errorf("ingest service not available")}
		}

		err := v.ingestService.DeleteUnit(context.Background(), unitID)
		return messages.UnitDeleted{UnitID: unitID, Err: err}
	}
}

// adjustScroll adjusts the scroll offset to keep the selected item visible.
func (v *View) adjustScroll() {
	visibleItems := v.visibleItemCount()
	if v.selected < v.scrollOffset {
		v.scrollOffset = v.selected
	} else if v.selected >= v.scrollOffset+visibleItems {
		v.scrollOffset = v.selected - visibleItems + 1
	}
}

// visibleItemCount returns the number of items that can be displayed.
func (v *View) visibleItemCount() int {
	// Reserve lines for title, scope, help, and padding
	reserved := 8
	available := v.height - reserved
	if available < 1 {
		available = 1
	}
	return available
}

// View renders the units view.
func (v *View) View() string {
	var b strings.Builder

	title := fmt.Sprintf("Stored Units (%d)", len(v.units))
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n")

	if scope := v.renderScope(); scope != "" {
		b.WriteString(v.styles.Subtitle.Render(scope))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Loading state
	if v.loading {
		b.WriteString(v.styles.Muted.Render("Loading units..."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	// Error state
	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	// Empty state
	if len(v.units) == 0 {
		b.WriteString(v.styles.Muted.Render("No units stored."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	// Action menu overlay
	if v.showingMenu {
		b.WriteString(v.renderActionMenu())
		return b.String()
	}

	// Units list
	visibleItems := v.visibleItemCount()
	for i := v.scrollOffset; i < len(v.units) && i < v.scrollOffset+visibleItems; i++ {
		line := v.renderUnit(i, &v.units[i])
		b.WriteString(line)
		b.WriteString("\n")
	}

	// Scroll indicator
	if len(v.units) > visibleItems {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]",
			v.scrollOffset+1,
			min(v.scrollOffset+visibleItems, len(v.units)),
			len(v.units))))
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderScope formats the active tenant scope for the header.
func (v *View) renderScope() string {
	if v.scope == nil {
		return ""
	}

	parts := make([]string, 0, 4)
	if v.scope.UserID != "" {
		parts = append(parts, "user="+v.scope.UserID)
	}
	if v.scope.ProjectID != "" {
		parts = append(parts, "project="+v.scope.ProjectID)
	}
	if v.scope.OrgID != "" {
		parts = append(parts, "org="+v.scope.OrgID)
	}
	if v.scope.FileID != "" {
		parts = append(parts, "file="+v.scope.FileID)
	}
	if len(parts) == 0 {
		return ""
	}
	return "Scope: " + strings.Join(parts, " ")
}

// renderUnit renders a single unit line.
func (v *View) renderUnit(index int, unit *domain.UnitSummary) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}

	label := unitLabel(unit)

	maxLabelLen := v.width/2 - 4
	if maxLabelLen < 10 {
		maxLabelLen = 10
	}
	if len(label) > maxLabelLen {
		label = label[:maxLabelLen-3] + "..."
	}

	// Truncate the id if needed
	id := unit.ID
	maxIDLen := v.width/2 - 4
	if maxIDLen < 10 {
		maxIDLen = 10
	}
	if len(id) > maxIDLen {
		id = "..." + id[len(id)-maxIDLen+3:]
	}

	if index == v.selected {
		return v.styles.Selected.Render(fmt.Sprintf("%s%-*s  %s", indicator, maxLabelLen, label, id))
	}

	return v.styles.Normal.Render(indicator) +
		v.styles.Normal.Render(fmt.Sprintf("%-*s  ", maxLabelLen, label)) +
		v.styles.Muted.Render(id)
}

// unitLabel derives a display label from unit metadata.
func unitLabel(unit *domain.UnitSummary) string {
	fileName := unit.Metadata[domain.MetaFileName]
	page := unit.Metadata[domain.MetaPageLabel]

	switch {
	case fileName != "" && page != "":
		return fmt.Sprintf("%s (page %s)", fileName, page)
	case fileName != "":
		return fileName
	default:
		return unit.ID
	}
}

// renderActionMenu renders the action menu overlay.
func (v *View) renderActionMenu() string {
	var b strings.Builder

	if v.selected < len(v.units) {
		unit := v.units[v.selected]
		b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("Actions for: %s", unitLabel(&unit))))
		b.WriteString("\n\n")
	}

	options := []struct {
		action ActionOption
		label  string
	}{
		{ActionShowText, "Show Text"},
		{ActionDelete, "Delete"},
		{ActionCancel, "Cancel"},
	}

	for _, opt := range options {
		indicator := "  "
		if v.menuSelected == opt.action {
			indicator = "> "
			b.WriteString(v.styles.Selected.Render(fmt.Sprintf("%s%s", indicator, opt.label)))
		} else {
			b.WriteString(v.styles.Normal.Render(fmt.Sprintf("%s%s", indicator, opt.label)))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[↑/↓] navigate  [enter] select  [esc] cancel"))

	return b.String()
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓] navigate  [enter] actions  [d] delete  [r] reload  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Units returns the current list of units.
func (v *View) Units() []domain.UnitSummary {
	return v.units
}

// SelectedIndex returns the currently selected unit index.
func (v *View) SelectedIndex() int {
	return v.selected
}

// SelectedUnit returns the currently selected unit summary.
func (v *View) SelectedUnit() *domain.UnitSummary {
	if v.selected < len(v.units) {
		return &v.units[v.selected]
	}
	return nil
}

// IsShowingMenu returns true if the action menu is visible.
func (v *View) IsShowingMenu() bool {
	return v.showingMenu
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
