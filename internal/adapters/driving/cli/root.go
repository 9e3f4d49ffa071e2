package cli

import (
	"github.com/spf13/cobra"

	"github.com/sonarlabs/docingest/internal/core/ports/driving"
	"github.com/sonarlabs/docingest/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services injected by the composition root. Commands guard against
// nil services so the CLI stays testable without full wiring.
var (
	ingestService    driving.IngestService
	retrievalService driving.RetrievalService
	settingsService  driving.SettingsService
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "docingest",
	Short: "Ingest documents into tenant-scoped retrievable units",
	Long: `Docingest turns documents into tagged text units.

PDF pages, plain text and markdown files are split into per-page units,
scanned pages are routed through OCR, and every unit carries the tenant
tags supplied at ingestion. Stored units can be listed, deleted and
retrieved with tenant-scoped queries.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// Services bundles the driving services the CLI depends on.
type Services struct {
	Ingest    driving.IngestService
	Retrieval driving.RetrievalService
	Settings  driving.SettingsService
}

// SetServices injects the services used by the commands.
func SetServices(s Services) {
	ingestService = s.Ingest
	retrievalService = s.Retrieval
	settingsService = s.Settings
}

// SetVersion overrides the reported version.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
