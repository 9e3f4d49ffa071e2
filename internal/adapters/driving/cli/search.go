package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sonarlabs/docingest/internal/core/domain"
)

var (
	searchLimit     int
	searchJSON      bool
	searchUserID    string
	searchProjectID string
	searchOrgID     string
	searchFileID    string
	searchDocIDs    []string
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Retrieve relevant units",
	Long: `Performs tenant-scoped retrieval over stored units.

Scope flags restrict results to one tenant. The user, project and org
ids must be supplied together. --doc-id pins retrieval to explicit
documents and may be repeated.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().StringVar(&searchUserID, "user", "", "restrict to a user id")
	searchCmd.Flags().StringVar(&searchProjectID, "project", "", "restrict to a project id")
	searchCmd.Flags().StringVar(&searchOrgID, "org", "", "restrict to an organisation id")
	searchCmd.Flags().StringVar(&searchFileID, "file-id", "", "restrict to a file id")
	searchCmd.Flags().StringSliceVar(&searchDocIDs, "doc-id", nil, "restrict to explicit document ids")
	rootCmd.AddCommand(searchCmd)
}

// scopeFromSearchFlags builds the retrieval scope, nil when unrestricted.
func scopeFromSearchFlags() *domain.TenantScope {
	if searchUserID == "" && searchProjectID == "" && searchOrgID == "" &&
		searchFileID == "" && len(searchDocIDs) == 0 {
		return nil
	}
	return &domain.TenantScope{
		DocIDs:    searchDocIDs,
		UserID:    searchUserID,
		ProjectID: searchProjectID,
		OrgID:     searchOrgID,
		FileID:    searchFileID,
	}
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}

	ctx := context.Background()

	results, err := retrievalService.Retrieve(ctx, query, scopeFromSearchFlags(), searchLimit)
	if err != nil {
		return fmt.Errorf("retrieval failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}

	return outputSearchTable(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.RetrievedUnit) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.RetrievedUnit) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		unit := results[i].Unit
		label := unit.Metadata[domain.MetaTitle]
		if label == "" {
			label = unit.Metadata[domain.MetaFileName]
		}
		if label == "" {
			label = unit.ID
		}

		cmd.Printf("  [%d] %s (%.2f)\n", i+1, label, results[i].Score)
		if file := unit.Metadata[domain.MetaFileName]; file != "" {
			source := file
			if page := unit.Metadata[domain.MetaPageLabel]; page != "" {
				source = fmt.Sprintf("%s, page %s", file, page)
			}
			cmd.Printf("      Source: %s\n", source)
		}
		if snippet := snippetOf(unit.Text); snippet != "" {
			cmd.Printf("      %s\n", snippet)
		}
		cmd.Println()
	}

	return nil
}

// snippetOf returns the first line of text, truncated for display.
func snippetOf(text string) string {
	const maxLen = 120
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			text = text[:i]
			break
		}
	}
	if len(text) > maxLen {
		return text[:maxLen] + "..."
	}
	return text
}
