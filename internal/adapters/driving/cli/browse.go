package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sonarlabs/docingest/internal/adapters/driving/tui"
	"github.com/sonarlabs/docingest/internal/core/domain"
)

var (
	browseUserID    string
	browseProjectID string
	browseOrgID     string
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface.

Browse stored units, run tenant-scoped retrieval queries, and delete
units with keyboard navigation. The --user/--project/--org flags
restrict the unit list and retrieval to one tenant.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Select / Search
  Esc      - Back / Cancel
  q        - Quit`,
	RunE: runBrowse,
}

func init() {
	browseCmd.Flags().StringVar(&browseUserID, "user", "", "restrict to a user id")
	browseCmd.Flags().StringVar(&browseProjectID, "project", "", "restrict to a project id")
	browseCmd.Flags().StringVar(&browseOrgID, "org", "", "restrict to an organisation id")
	rootCmd.AddCommand(browseCmd)
}

// scopeFromBrowseFlags builds the tenant scope for the TUI session.
// Returns nil when no flag is set, meaning no restriction.
func scopeFromBrowseFlags() *domain.TenantScope {
	scope := &domain.TenantScope{
		UserID:    browseUserID,
		ProjectID: browseProjectID,
		OrgID:     browseOrgID,
	}
	if scope.IsZero() {
		return nil
	}
	return scope
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	// Panic recovery keeps stack traces visible outside the alt screen
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	scope := scopeFromBrowseFlags()
	if err := scope.Validate(); err != nil {
		return err
	}

	ports := &tui.Ports{
		Ingest:    ingestService,
		Retrieval: retrievalService,
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	app.WithContext(cmd.Context()).WithScope(scope)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
