package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sonarlabs/docingest/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage application settings",
	Long: `View and configure ingestion, OCR, storage and retrieval options.

Use subcommands to configure specific settings.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runConfigShow,
}

var configThresholdCmd = &cobra.Command{
	Use:   "threshold [value]",
	Short: "Set the OCR routing threshold",
	Long: `Sets the text coverage threshold that routes PDF pages to OCR.

Pages whose text blocks cover less than this fraction of the page area
are treated as scanned and transcribed with the OCR provider. Pages at
or above it keep their embedded text.`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigThreshold,
}

var configOCRCmd = &cobra.Command{
	Use:   "ocr",
	Short: "Configure the OCR provider",
	Long:  `Configure the provider used to transcribe scanned PDF pages.`,
	RunE:  runConfigOCR,
}

var configStoreCmd = &cobra.Command{
	Use:   "store [backend]",
	Short: "Select the unit store backend",
	Long: `Selects where ingested units are persisted.

Available backends:
  memory - in-memory, lost on exit
  sqlite - local SQLite database (default)
  redis  - Redis with a RediSearch index`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigStore,
}

var configRetrieverCmd = &cobra.Command{
	Use:   "retriever",
	Short: "Configure the vector retriever",
	Long:  `Configure the vector index backend used by the search command.`,
	RunE:  runConfigRetriever,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configThresholdCmd)
	configCmd.AddCommand(configOCRCmd)
	configCmd.AddCommand(configStoreCmd)
	configCmd.AddCommand(configRetrieverCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Ingest]")
	cmd.Printf("  Coverage threshold: %.2f\n", settings.Ingest.CoverageThreshold)
	cmd.Printf("  Max parallel files: %d\n", settings.Ingest.ParallelFiles())
	cmd.Println()

	cmd.Println("[OCR]")
	if settings.OCR.Provider == "" {
		cmd.Println("  Provider: (not set)")
	} else {
		cmd.Printf("  Provider: %s\n", settings.OCR.Provider.Description())
		switch settings.OCR.Provider {
		case domain.OCRProviderGoogleVision:
			if settings.OCR.CredentialsFile != "" {
				cmd.Printf("  Credentials file: %s\n", settings.OCR.CredentialsFile)
			}
			if settings.OCR.APIKey != "" {
				cmd.Printf("  API Key: %s\n", maskAPIKey(settings.OCR.APIKey))
			}
		case domain.OCRProviderVertex:
			cmd.Printf("  Project: %s\n", settings.OCR.Project)
			if settings.OCR.Location != "" {
				cmd.Printf("  Location: %s\n", settings.OCR.Location)
			}
			if settings.OCR.Model != "" {
				cmd.Printf("  Model: %s\n", settings.OCR.Model)
			}
		case domain.OCRProviderTesseract:
			if len(settings.OCR.Languages) > 0 {
				cmd.Printf("  Languages: %s\n", strings.Join(settings.OCR.Languages, ", "))
			}
		}
	}
	status := "configured"
	if !settings.OCR.IsConfigured() {
		status = "not configured (scanned pages will fail)"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()

	cmd.Println("[Store]")
	cmd.Printf("  Backend: %s\n", settings.Store.Backend.Description())
	if settings.Store.DataDir != "" {
		cmd.Printf("  Data dir: %s\n", settings.Store.DataDir)
	}
	if settings.Store.Backend == domain.StoreBackendRedis {
		cmd.Printf("  Redis: %s\n", settings.Store.RedisAddr)
	}
	cmd.Println()

	cmd.Println("[Retriever]")
	cmd.Printf("  Backend: %s\n", settings.Retriever.Backend.Description())
	if settings.Retriever.Backend == domain.RetrieverBackendQdrant {
		cmd.Printf("  URL: %s\n", settings.Retriever.QdrantURL)
		if settings.Retriever.QdrantCollection != "" {
			cmd.Printf("  Collection: %s\n", settings.Retriever.QdrantCollection)
		}
	}
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runConfigThreshold(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	threshold, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid threshold %q: %w", args[0], err)
	}

	if err := settingsService.SetCoverageThreshold(threshold); err != nil {
		return fmt.Errorf("failed to set threshold: %w", err)
	}

	cmd.Printf("Coverage threshold set to %.2f.\n", threshold)
	return nil
}

func runConfigOCR(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Println("Select OCR Provider")
	providers := domain.AllOCRProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	idx := parseChoice(readLine(reader), len(providers), 1)
	selected := providers[idx-1]

	ocr := domain.OCRSettings{Provider: selected}

	switch selected {
	case domain.OCRProviderGoogleVision:
		cmd.Print("Service account key file [application default credentials]: ")
		ocr.CredentialsFile = readLine(reader)
		if ocr.CredentialsFile == "" {
			cmd.Print("API key (optional): ")
			ocr.APIKey = readPassword()
			cmd.Println()
		}

	case domain.OCRProviderVertex:
		cmd.Print("GCP project: ")
		ocr.Project = readLine(reader)
		if ocr.Project == "" {
			return errors.New("a project is required for the Vertex provider")
		}
		cmd.Print("Location [us-central1]: ")
		ocr.Location = readLine(reader)
		cmd.Print("Model [gemini-1.5-flash]: ")
		ocr.Model = readLine(reader)

	case domain.OCRProviderTesseract:
		cmd.Print("Languages, comma separated [eng]: ")
		if langs := readLine(reader); langs != "" {
			for _, lang := range strings.Split(langs, ",") {
				if lang = strings.TrimSpace(lang); lang != "" {
					ocr.Languages = append(ocr.Languages, lang)
				}
			}
		}
	}

	if err := settingsService.SetOCR(ocr); err != nil {
		return fmt.Errorf("failed to configure ocr provider: %w", err)
	}

	cmd.Printf("OCR provider configured: %s\n", selected.Description())
	return nil
}

func runConfigStore(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	reader := bufio.NewReader(cmd.InOrStdin())

	var backend domain.StoreBackend
	if len(args) == 1 {
		backend = domain.StoreBackend(args[0])
	} else {
		cmd.Println("Select Store Backend")
		backends := domain.AllStoreBackends()
		for i, b := range backends {
			cmd.Printf("  %d. %s\n", i+1, b.Description())
		}
		cmd.Print("\nEnter choice [2]: ")
		idx := parseChoice(readLine(reader), len(backends), 2)
		backend = backends[idx-1]
	}

	if backend == domain.StoreBackendRedis {
		settings, err := settingsService.Get()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		current := settings.Store.RedisAddr
		if current == "" {
			current = "localhost:6379"
		}
		cmd.Printf("Redis address [%s]: ", current)
		addr := readLine(reader)
		if addr == "" {
			addr = current
		}
		settings.Store.Backend = backend
		settings.Store.RedisAddr = addr
		if err := settingsService.Save(settings); err != nil {
			return fmt.Errorf("failed to set store backend: %w", err)
		}
	} else {
		if err := settingsService.SetStoreBackend(backend); err != nil {
			return fmt.Errorf("failed to set store backend: %w", err)
		}
	}

	cmd.Printf("Store backend set to: %s\n", backend.Description())
	return nil
}

func runConfigRetriever(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Println("Select Retriever Backend")
	backends := domain.AllRetrieverBackends()
	for i, b := range backends {
		cmd.Printf("  %d. %s\n", i+1, b.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	idx := parseChoice(readLine(reader), len(backends), 1)
	backend := backends[idx-1]

	if backend == domain.RetrieverBackendQdrant {
		settings, err := settingsService.Get()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		cmd.Print("Qdrant URL [http://localhost:6333]: ")
		url := readLine(reader)
		if url == "" {
			url = "http://localhost:6333"
		}
		cmd.Print("Collection [units]: ")
		collection := readLine(reader)
		if collection == "" {
			collection = "units"
		}
		cmd.Print("API key (optional): ")
		apiKey := readPassword()
		cmd.Println()

		settings.Retriever.Backend = backend
		settings.Retriever.QdrantURL = url
		settings.Retriever.QdrantCollection = collection
		settings.Retriever.QdrantAPIKey = apiKey
		if err := settingsService.Save(settings); err != nil {
			return fmt.Errorf("failed to configure retriever: %w", err)
		}
	} else {
		if err := settingsService.SetRetrieverBackend(backend); err != nil {
			return fmt.Errorf("failed to configure retriever: %w", err)
		}
		if backend == domain.RetrieverBackendRedis {
			cmd.Println("Note: the redis retriever reuses the redis store connection.")
			cmd.Println("Run 'docingest config store redis' if the store is not on redis yet.")
		}
	}

	cmd.Printf("Retriever backend set to: %s\n", backend.Description())
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
