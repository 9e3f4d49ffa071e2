package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sonarlabs/docingest/internal/connectors/github"
	"github.com/sonarlabs/docingest/internal/core/domain"
)

// Tenant tag flags shared by the ingest subcommands. The user, project
// and org ids must be supplied together or not at all.
var (
	tagUserID    string
	tagProjectID string
	tagOrgID     string
	tagFileID    string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file...]",
	Short: "Ingest files into the unit store",
	Long: `Transforms files into tagged text units and stores them.

PDF pages become one unit each, with scanned pages routed through the
configured OCR provider. Plain text and markdown files become a single
unit. Re-ingesting a file name replaces the units it produced before.

Tenant tags attach ownership to every produced unit:

  docingest ingest report.pdf --user u1 --project p1 --org o1`,
	Args: cobra.ArbitraryArgs,
	RunE: runIngest,
}

var ingestTextCmd = &cobra.Command{
	Use:   "text [name] [text]",
	Short: "Ingest a raw text string",
	Long: `Stores a text string as a single unit under the given name.
With one argument the text is read from stdin.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runIngestText,
}

var ingestGithubCmd = &cobra.Command{
	Use:   "github [owner/repo]",
	Short: "Ingest files from a GitHub repository",
	Long: `Fetches files from a GitHub repository tree and ingests them
as a batch. Set GITHUB_TOKEN to raise the API rate limit and to access
private repositories.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngestGithub,
}

var (
	githubBranch   string
	githubPatterns []string
)

func init() {
	ingestCmd.PersistentFlags().StringVar(&tagUserID, "user", "", "user id tag")
	ingestCmd.PersistentFlags().StringVar(&tagProjectID, "project", "", "project id tag")
	ingestCmd.PersistentFlags().StringVar(&tagOrgID, "org", "", "organisation id tag")
	ingestCmd.PersistentFlags().StringVar(&tagFileID, "file-id", "", "stable file id tag (single file only)")

	ingestGithubCmd.Flags().StringVar(&githubBranch, "branch", "", "branch to fetch (default: repository default)")
	ingestGithubCmd.Flags().StringSliceVar(&githubPatterns, "pattern", nil, "glob patterns narrowing fetched paths")

	ingestCmd.AddCommand(ingestTextCmd)
	ingestCmd.AddCommand(ingestGithubCmd)
	rootCmd.AddCommand(ingestCmd)
}

// tagsFromFlags builds the tag set for one file name.
func tagsFromFlags(fileName string) domain.TenantTags {
	return domain.TenantTags{
		FileName:  fileName,
		FileID:    tagFileID,
		ProjectID: tagProjectID,
		UserID:    tagUserID,
		OrgID:     tagOrgID,
	}
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}
	if len(args) == 0 {
		return cmd.Help()
	}
	if len(args) > 1 && tagFileID != "" {
		return errors.New("--file-id identifies a single file; drop it for batches")
	}

	ctx := context.Background()

	if len(args) == 1 {
		return ingestSingleFile(ctx, cmd, args[0])
	}
	return ingestBatch(ctx, cmd, args)
}

func ingestSingleFile(ctx context.Context, cmd *cobra.Command, path string) error {
	fileName := filepath.Base(path)
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	units, err := ingestService.IngestFile(ctx, fileName, content, tagsFromFlags(fileName))
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Printf("Ingested %s: %d unit(s)\n", fileName, len(units))
	return nil
}

func ingestBatch(ctx context.Context, cmd *cobra.Command, paths []string) error {
	inputs := make([]domain.IngestInput, 0, len(paths))
	for _, path := range paths {
		fileName := filepath.Base(path)
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		inputs = append(inputs, domain.IngestInput{
			FileName: fileName,
			Content:  content,
			Tags:     tagsFromFlags(fileName),
		})
	}

	result, err := ingestService.IngestFiles(ctx, inputs)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	reportBatch(cmd, result)
	return nil
}

// reportBatch prints a batch result, one line per failed file.
func reportBatch(cmd *cobra.Command, result *domain.BatchResult) {
	cmd.Printf("Ingested %d unit(s)\n", len(result.Units))
	if len(result.Failed) == 0 {
		return
	}
	cmd.Printf("%d file(s) failed:\n", len(result.Failed))
	for _, failure := range result.Failed {
		cmd.Printf("  %s: %v\n", failure.FileName, failure.Err)
	}
}

func runIngestText(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	name := args[0]
	var text string
	if len(args) == 2 {
		text = args[1]
	} else {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = string(data)
	}

	units, err := ingestService.IngestText(context.Background(), name, text, tagsFromFlags(name))
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Printf("Ingested %s: %d unit(s)\n", name, len(units))
	return nil
}

func runIngestGithub(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}
	if tagFileID != "" {
		return errors.New("--file-id identifies a single file; drop it for repositories")
	}

	repo := args[0]
	ctx := context.Background()

	fetcher := github.NewFetcher(ctx, os.Getenv("GITHUB_TOKEN"))
	cmd.Printf("Fetching %s...\n", repo)

	inputs, err := fetcher.Fetch(ctx, github.Config{
		Repo:         repo,
		Branch:       githubBranch,
		FilePatterns: githubPatterns,
	}, tagsFromFlags(""))
	if err != nil {
		return fmt.Errorf("fetch %s: %w", repo, err)
	}
	if len(inputs) == 0 {
		cmd.Println("No matching files found.")
		return nil
	}

	cmd.Printf("Ingesting %d file(s)...\n", len(inputs))
	result, err := ingestService.IngestFiles(ctx, inputs)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	reportBatch(cmd, result)
	return nil
}
