package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sonarlabs/docingest/internal/core/domain"
)

// Scope flags for the list command.
var (
	listUserID    string
	listProjectID string
	listOrgID     string
	listFileID    string
)

var unitsCmd = &cobra.Command{
	Use:   "units",
	Short: "Manage stored text units",
	Long:  `List or delete the text units produced by ingestion.`,
}

var unitsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored units",
	Long: `Lists stored unit summaries. Scope flags restrict the listing
to one tenant; the user, project and org ids must be supplied together.`,
	Args: cobra.NoArgs,
	RunE: runUnitsList,
}

var unitsDeleteCmd = &cobra.Command{
	Use:   "delete [unit-id]",
	Short: "Delete a stored unit",
	Args:  cobra.ExactArgs(1),
	RunE:  runUnitsDelete,
}

func init() {
	unitsListCmd.Flags().StringVar(&listUserID, "user", "", "restrict to a user id")
	unitsListCmd.Flags().StringVar(&listProjectID, "project", "", "restrict to a project id")
	unitsListCmd.Flags().StringVar(&listOrgID, "org", "", "restrict to an organisation id")
	unitsListCmd.Flags().StringVar(&listFileID, "file-id", "", "restrict to a file id")

	unitsCmd.AddCommand(unitsListCmd)
	unitsCmd.AddCommand(unitsDeleteCmd)
	rootCmd.AddCommand(unitsCmd)
}

// scopeFromListFlags builds the listing scope, nil when unrestricted.
func scopeFromListFlags() *domain.TenantScope {
	if listUserID == "" && listProjectID == "" && listOrgID == "" && listFileID == "" {
		return nil
	}
	return &domain.TenantScope{
		UserID:    listUserID,
		ProjectID: listProjectID,
		OrgID:     listOrgID,
		FileID:    listFileID,
	}
}

func runUnitsList(cmd *cobra.Command, _ []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	ctx := context.Background()

	summaries, err := ingestService.ListUnits(ctx, scopeFromListFlags())
	if err != nil {
		return fmt.Errorf("failed to list units: %w", err)
	}

	if len(summaries) == 0 {
		cmd.Println("No units stored.")
		return nil
	}

	cmd.Println("Units:")
	cmd.Println()
	for i := range summaries {
		meta := summaries[i].Metadata
		cmd.Printf("  %s\n", summaries[i].ID)
		if file := meta[domain.MetaFileName]; file != "" {
			cmd.Printf("    File: %s\n", file)
		}
		if page := meta[domain.MetaPageLabel]; page != "" {
			cmd.Printf("    Page: %s\n", page)
		}
		if title := meta[domain.MetaTitle]; title != "" {
			cmd.Printf("    Title: %s\n", title)
		}
		cmd.Println()
	}

	cmd.Printf("Total: %d unit(s)\n", len(summaries))
	return nil
}

func runUnitsDelete(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	unitID := args[0]

	if err := ingestService.DeleteUnit(context.Background(), unitID); err != nil {
		return fmt.Errorf("failed to delete unit: %w", err)
	}

	cmd.Printf("Deleted unit %s.\n", unitID)
	return nil
}
