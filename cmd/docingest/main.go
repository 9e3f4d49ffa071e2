// Command docingest is the entry point wiring adapters to core services.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/sonarlabs/docingest/internal/adapters/driven/config/file"
	"github.com/sonarlabs/docingest/internal/adapters/driven/ocr"
	"github.com/sonarlabs/docingest/internal/adapters/driven/retriever/qdrant"
	"github.com/sonarlabs/docingest/internal/adapters/driven/storage/memory"
	redisstore "github.com/sonarlabs/docingest/internal/adapters/driven/storage/redis"
	"github.com/sonarlabs/docingest/internal/adapters/driven/storage/sqlite"
	"github.com/sonarlabs/docingest/internal/adapters/driving/cli"
	"github.com/sonarlabs/docingest/internal/core/domain"
	"github.com/sonarlabs/docingest/internal/core/ports/driven"
	"github.com/sonarlabs/docingest/internal/core/services"
	"github.com/sonarlabs/docingest/internal/logger"
	"github.com/sonarlabs/docingest/internal/readers"
	"github.com/sonarlabs/docingest/internal/readers/markdown"
	"github.com/sonarlabs/docingest/internal/readers/pdf"
	"github.com/sonarlabs/docingest/internal/readers/plaintext"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	ctx := context.Background()

	// Settings come from ~/.docingest/config.toml (DOCINGEST_CONFIG_DIR
	// overrides the directory).
	configDir := os.Getenv("DOCINGEST_CONFIG_DIR")
	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("opening config store: %w", err)
	}

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	// Driven adapters degrade to nil on failure so configuration and
	// inspection commands keep working; affected operations report the
	// missing dependency instead.
	var prompts driven.PromptStore
	if store, err := file.NewPromptStore(promptDir(configDir)); err == nil {
		prompts = store
	} else {
		logger.Warn("Prompt store unavailable: %v", err)
	}

	ocrService, err := ocr.CreateOCRService(ctx, &settings.OCR, prompts)
	if err != nil {
		logger.Warn("OCR unavailable: %v", err)
		ocrService = nil
	}

	store, closeStore, err := buildStore(ctx, settings.Store)
	if err != nil {
		logger.Warn("Unit store unavailable: %v", err)
		store = nil
	}
	if closeStore != nil {
		defer closeStore()
	}

	retriever := buildRetriever(settings.Retriever, store)

	registry := readers.NewRegistry(
		plaintext.New(),
		markdown.New(),
		pdf.New(),
	)
	classifier := domain.NewPageClassifier(settings.Ingest.CoverageThreshold)
	transformer := services.NewTransformer(registry, classifier, ocrService)

	cli.SetServices(cli.Services{
		Ingest:    services.NewIngestService(transformer, store, settings.Ingest),
		Retrieval: services.NewRetrievalService(retriever),
		Settings:  settingsService,
	})
	cli.SetVersion(version)

	return cli.Execute()
}

// promptDir keeps prompt files beside the config file when the config
// directory is overridden.
func promptDir(configDir string) string {
	if configDir == "" {
		return ""
	}
	return filepath.Join(configDir, "prompts")
}

// buildStore creates the configured unit store. The returned func closes
// backends that hold connections.
func buildStore(ctx context.Context, cfg domain.StoreSettings) (driven.UnitStore, func(), error) {
	switch cfg.Backend {
	case domain.StoreBackendMemory:
		return memory.NewUnitStore(), nil, nil

	case domain.StoreBackendSQLite:
		store, err := sqlite.NewStore(cfg.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		return store, func() { _ = store.Close() }, nil

	case domain.StoreBackendRedis:
		store, err := redisstore.NewStore(ctx, redisstore.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("opening redis store: %w", err)
		}
		return store, func() { _ = store.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend: %s", cfg.Backend)
	}
}

// buildRetriever creates the configured retriever. The redis backend
// reuses the unit store's RediSearch index, so it requires the redis
// store to be active.
func buildRetriever(cfg domain.RetrieverSettings, store driven.UnitStore) driven.Retriever {
	switch cfg.Backend {
	case domain.RetrieverBackendQdrant:
		return qdrant.NewRetriever(qdrant.Config{
			URL:        cfg.QdrantURL,
			APIKey:     cfg.QdrantAPIKey,
			Collection: cfg.QdrantCollection,
			Model:      cfg.QdrantModel,
		})

	case domain.RetrieverBackendRedis:
		if redisStore, ok := store.(*redisstore.Store); ok {
			return redisStore
		}
		logger.Warn("Retriever backend %q needs the redis store backend; retrieval disabled", cfg.Backend)
		return nil

	default:
		return nil
	}
}
