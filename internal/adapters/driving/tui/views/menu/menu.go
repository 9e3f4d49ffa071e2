// Package menu provides the main menu view for the TUI.
package menu

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sonarlabs/docingest/internal/adapters/driving/tui/messages"
	"github.com/sonarlabs/docingest/internal/adapters/driving/tui/styles"
)

// Item represents a single menu entry.
type Item struct {
	Label string
	View  messages.ViewType
	Quit  bool
}

// View displays the main menu.
type View struct {
	items    []Item
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewView creates a new menu view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		items: []Item{
			{Label: "Units", View: messages.ViewUnits},
			{Label: "Retrieve", View: messages.ViewRetrieve},
			{Label: "Help", View: messages.ViewHelp},
			{Label: "Quit", Quit: true},
		},
		selected: 0,
		styles:   s,
		width:    80,
		height:   24,
	}
}

// Init initialises the menu view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles menu navigation and selection.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // handling only relevant key types
		switch msg.Type {
		case tea.KeyUp:
			v.moveUp()
		case tea.KeyDown:
			v.moveDown()
		case tea.KeyEnter:
			return v, v.selectItem()
		default:
			// Handle other keys
		}
		switch msg.String() {
		case "k":
			v.moveUp()
		case "j":
			v.moveDown()
		case "q":
			return v, func() tea.Msg { return messages.Quit{} }
		}
	}
	return v, nil
}

// View renders the menu.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("docingest"))
	b.WriteString("\n")
	b.WriteString(v.styles.Subtitle.Render("Document ingestion and retrieval"))
	b.WriteString("\n\n")

	for i, item := range v.items {
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render("> " + item.Label))
		} else {
			b.WriteString(v.styles.Normal.Render("  " + item.Label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("↑/↓ navigate · enter select · q quit"))

	return lipgloss.Place(
		v.width,
		v.height,
		lipgloss.Center, //nolint:misspell // lipgloss API uses American spelling
		lipgloss.Center, //nolint:misspell // lipgloss API uses American spelling
		b.String(),
	)
}

// selectItem returns the command for the currently selected entry.
func (v *View) selectItem() tea.Cmd {
	item := v.items[v.selected]
	if item.Quit {
		return func() tea.Msg { return messages.Quit{} }
	}
	return func() tea.Msg { return messages.ViewChanged{View: item.View} }
}

// moveUp moves selection up.
func (v *View) moveUp() {
	if v.selected > 0 {
		v.selected--
	}
}

// moveDown moves selection down.
func (v *View) moveDown() {
	if v.selected < len(v.items)-1 {
		v.selected++
	}
}

// Selected returns the index of the selected item.
func (v *View) Selected() int {
	return v.selected
}

// Items returns the menu items.
func (v *View) Items() []Item {
	return v.items
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}
