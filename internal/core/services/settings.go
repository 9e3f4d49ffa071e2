package services

import (
	"fmt"

	"github.com/sonarlabs/docingest/internal/core/domain"
	"github.com/sonarlabs/docingest/internal/core/ports/driven"
	"github.com/sonarlabs/docingest/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyCoverageThreshold = "ingest.coverage_threshold"
	keyMaxParallelFiles  = "ingest.max_parallel_files"
	keyOCRProvider       = "ocr.provider"
	keyOCRCredentials    = "ocr.credentials_file"
	keyOCRAPIKey         = "ocr.api_key"
	keyOCRLanguages      = "ocr.languages"
	keyOCRRate           = "ocr.requests_per_second"
	keyOCRBurst          = "ocr.burst"
	keyVertexProject     = "ocr.vertex.project"
	keyVertexLocation    = "ocr.vertex.location"
	keyVertexModel       = "ocr.vertex.model"
	keyVertexPrompt      = "ocr.vertex.prompt"
	keyStoreBackend      = "store.backend"
	keyStoreDataDir      = "store.data_dir"
	keyRedisAddr         = "store.redis.addr"
	keyRedisPassword     = "store.redis.password"
	keyRedisDB           = "store.redis.db"
	keyRetrieverBackend  = "retriever.backend"
	keyQdrantURL         = "retriever.qdrant.url"
	keyQdrantAPIKey      = "retriever.qdrant.api_key"
	keyQdrantCollection  = "retriever.qdrant.collection"
	keyQdrantModel       = "retriever.qdrant.model"
	keyWatchDebounce     = "watch.debounce_ms"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Ingest: domain.IngestSettings{
			CoverageThreshold: s.getFloat(keyCoverageThreshold, defaults.Ingest.CoverageThreshold),
			MaxParallelFiles:  s.getInt(keyMaxParallelFiles, defaults.Ingest.MaxParallelFiles),
		},
		OCR: domain.OCRSettings{
			Provider:          s.getOCRProvider(defaults.OCR.Provider),
			CredentialsFile:   s.configStore.GetString(keyOCRCredentials),
			APIKey:            s.configStore.GetString(keyOCRAPIKey),
			Project:           s.configStore.GetString(keyVertexProject),
			Location:          s.configStore.GetString(keyVertexLocation),
			Model:             s.configStore.GetString(keyVertexModel),
			Prompt:            s.configStore.GetString(keyVertexPrompt),
			Languages:         s.configStore.GetStringSlice(keyOCRLanguages),
			RequestsPerSecond: s.configStore.GetFloat(keyOCRRate),
			Burst:             s.configStore.GetInt(keyOCRBurst),
		},
		Store: domain.StoreSettings{
			Backend:       s.getStoreBackend(defaults.Store.Backend),
			DataDir:       s.configStore.GetString(keyStoreDataDir),
			RedisAddr:     s.configStore.GetString(keyRedisAddr),
			RedisPassword: s.configStore.GetString(keyRedisPassword),
			RedisDB:       s.configStore.GetInt(keyRedisDB),
		},
		Retriever: domain.RetrieverSettings{
			Backend:          s.getRetrieverBackend(defaults.Retriever.Backend),
			QdrantURL:        s.configStore.GetString(keyQdrantURL),
			QdrantAPIKey:     s.configStore.GetString(keyQdrantAPIKey),
			QdrantCollection: s.configStore.GetString(keyQdrantCollection),
			QdrantModel:      s.configStore.GetString(keyQdrantModel),
		},
		Watch: domain.WatchSettings{
			DebounceMillis: s.getInt(keyWatchDebounce, defaults.Watch.DebounceMillis),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	// Save ingest settings
	if err := s.configStore.Set(keyCoverageThreshold, settings.Ingest.CoverageThreshold); err != nil {
		return fmt.Errorf("save coverage threshold: %w", err)
	}
	if err := s.configStore.Set(keyMaxParallelFiles, settings.Ingest.MaxParallelFiles); err != nil {
		return fmt.Errorf("save max parallel files: %w", err)
	}

	// Save OCR settings
	if err := s.configStore.Set(keyOCRProvider, settings.OCR.Provider.String()); err != nil {
		return fmt.Errorf("save ocr provider: %w", err)
	}
	if settings.OCR.CredentialsFile != "" {
		if err := s.configStore.Set(keyOCRCredentials, settings.OCR.CredentialsFile); err != nil {
			return fmt.Errorf("save ocr credentials file: %w", err)
		}
	}
	if settings.OCR.APIKey != "" {
		if err := s.configStore.Set(keyOCRAPIKey, settings.OCR.APIKey); err != nil {
			return fmt.Errorf("save ocr api_key: %w", err)
		}
	}
	if settings.OCR.Project != "" {
		if err := s.configStore.Set(keyVertexProject, settings.OCR.Project); err != nil {
			return fmt.Errorf("save vertex project: %w", err)
		}
	}
	if settings.OCR.Location != "" {
		if err := s.configStore.Set(keyVertexLocation, settings.OCR.Location); err != nil {
			return fmt.Errorf("save vertex location: %w", err)
		}
	}
	if settings.OCR.Model != "" {
		if err := s.configStore.Set(keyVertexModel, settings.OCR.Model); err != nil {
			return fmt.Errorf("save vertex model: %w", err)
		}
	}
	if len(settings.OCR.Languages) > 0 {
		if err := s.configStore.Set(keyOCRLanguages, settings.OCR.Languages); err != nil {
			return fmt.Errorf("save ocr languages: %w", err)
		}
	}

	// Save store settings
	if err := s.configStore.Set(keyStoreBackend, settings.Store.Backend.String()); err != nil {
		return fmt.Errorf("save store backend: %w", err)
	}
	if settings.Store.DataDir != "" {
		if err := s.configStore.Set(keyStoreDataDir, settings.Store.DataDir); err != nil {
			return fmt.Errorf("save store data dir: %w", err)
		}
	}
	if settings.Store.RedisAddr != "" {
		if err := s.configStore.Set(keyRedisAddr, settings.Store.RedisAddr); err != nil {
			return fmt.Errorf("save redis addr: %w", err)
		}
	}

	// Save retriever settings
	if err := s.configStore.Set(keyRetrieverBackend, settings.Retriever.Backend.String()); err != nil {
		return fmt.Errorf("save retriever backend: %w", err)
	}
	if settings.Retriever.QdrantURL != "" {
		if err := s.configStore.Set(keyQdrantURL, settings.Retriever.QdrantURL); err != nil {
			return fmt.Errorf("save qdrant url: %w", err)
		}
	}
	if settings.Retriever.QdrantCollection != "" {
		if err := s.configStore.Set(keyQdrantCollection, settings.Retriever.QdrantCollection); err != nil {
			return fmt.Errorf("save qdrant collection: %w", err)
		}
	}

	// Save watch settings
	if err := s.configStore.Set(keyWatchDebounce, settings.Watch.DebounceMillis); err != nil {
		return fmt.Errorf("save watch debounce: %w", err)
	}

	return nil
}

// SetCoverageThreshold updates the page classifier's text coverage cutoff.
func (s *SettingsService) SetCoverageThreshold(threshold float64) error {
	if threshold <= 0 || threshold > 1 {
		return fmt.Errorf("%w: coverage threshold %v outside (0, 1]", domain.ErrInvalidInput, threshold)
	}
	if err := s.configStore.Set(keyCoverageThreshold, threshold); err != nil {
		return fmt.Errorf("save coverage threshold: %w", err)
	}
	return nil
}

// SetOCR configures the OCR provider.
func (s *SettingsService) SetOCR(ocr domain.OCRSettings) error {
	if !ocr.Provider.IsValid() {
		return fmt.Errorf("%w: invalid ocr provider: %s", domain.ErrInvalidInput, ocr.Provider)
	}
	if ocr.Provider == domain.OCRProviderVertex && ocr.Project == "" {
		return fmt.Errorf("%w: vertex provider requires a project", domain.ErrInvalidInput)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.OCR = ocr
	return s.Save(settings)
}

// SetStoreBackend selects the unit store backend.
func (s *SettingsService) SetStoreBackend(backend domain.StoreBackend) error {
	if !backend.IsValid() {
		return fmt.Errorf("%w: invalid store backend: %s", domain.ErrInvalidInput, backend)
	}
	if err := s.configStore.Set(keyStoreBackend, backend.String()); err != nil {
		return fmt.Errorf("save store backend: %w", err)
	}
	return nil
}

// SetRetrieverBackend selects the vector retriever backend.
func (s *SettingsService) SetRetrieverBackend(backend domain.RetrieverBackend) error {
	if !backend.IsValid() {
		return fmt.Errorf("%w: invalid retriever backend: %s", domain.ErrInvalidInput, backend)
	}
	if err := s.configStore.Set(keyRetrieverBackend, backend.String()); err != nil {
		return fmt.Errorf("save retriever backend: %w", err)
	}
	return nil
}

// Validate checks if current settings are consistent.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if t := settings.Ingest.CoverageThreshold; t <= 0 || t > 1 {
		return fmt.Errorf("coverage threshold %v outside (0, 1]", t)
	}

	if !settings.Store.Backend.IsValid() {
		return fmt.Errorf("invalid store backend: %s", settings.Store.Backend)
	}
	if settings.Store.Backend == domain.StoreBackendRedis && settings.Store.RedisAddr == "" {
		return fmt.Errorf("store backend %q requires a redis address", settings.Store.Backend)
	}

	if !settings.Retriever.Backend.IsValid() {
		return fmt.Errorf("invalid retriever backend: %s", settings.Retriever.Backend)
	}
	switch settings.Retriever.Backend {
	case domain.RetrieverBackendQdrant:
		if settings.Retriever.QdrantURL == "" {
			return fmt.Errorf("retriever backend %q requires a qdrant url", settings.Retriever.Backend)
		}
	case domain.RetrieverBackendRedis:
		if settings.Store.Backend != domain.StoreBackendRedis {
			return fmt.Errorf("retriever backend %q requires the redis store backend", settings.Retriever.Backend)
		}
	}

	// An unset OCR provider is valid: pages routed to OCR fail until
	// one is configured.
	if p := settings.OCR.Provider; p != "" {
		if !settings.OCR.IsConfigured() {
			return fmt.Errorf("ocr provider %q is not fully configured", p)
		}
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getOCRProvider(defaultVal domain.OCRProvider) domain.OCRProvider {
	val := s.configStore.GetString(keyOCRProvider)
	if val == "" {
		return defaultVal
	}
	provider := domain.OCRProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}

func (s *SettingsService) getStoreBackend(defaultVal domain.StoreBackend) domain.StoreBackend {
	val := s.configStore.GetString(keyStoreBackend)
	if val == "" {
		return defaultVal
	}
	backend := domain.StoreBackend(val)
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}

func (s *SettingsService) getRetrieverBackend(defaultVal domain.RetrieverBackend) domain.RetrieverBackend {
	val := s.configStore.GetString(keyRetrieverBackend)
	if val == "" {
		return defaultVal
	}
	backend := domain.RetrieverBackend(val)
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}
