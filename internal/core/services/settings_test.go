package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonarlabs/docingest/internal/adapters/driven/storage/memory"
	"github.com/sonarlabs/docingest/internal/core/domain"
)

func TestNewSettingsService(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NotNil(t, service)
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	require.NotNil(t, settings)

	// Verify defaults
	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Ingest.CoverageThreshold, settings.Ingest.CoverageThreshold)
	assert.Equal(t, defaults.Ingest.MaxParallelFiles, settings.Ingest.MaxParallelFiles)
	assert.Equal(t, defaults.Store.Backend, settings.Store.Backend)
	assert.Equal(t, defaults.Retriever.Backend, settings.Retriever.Backend)
	assert.Equal(t, defaults.Watch.DebounceMillis, settings.Watch.DebounceMillis)
	assert.False(t, settings.OCR.IsConfigured())
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("ingest.coverage_threshold", 0.45)
	_ = store.Set("ingest.max_parallel_files", 8)
	_ = store.Set("ocr.provider", "vertex")
	_ = store.Set("ocr.vertex.project", "my-project")
	_ = store.Set("store.backend", "memory")
	_ = store.Set("retriever.backend", "qdrant")
	_ = store.Set("retriever.qdrant.url", "http://localhost:6333")

	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, 0.45, settings.Ingest.CoverageThreshold)
	assert.Equal(t, 8, settings.Ingest.MaxParallelFiles)
	assert.Equal(t, domain.OCRProviderVertex, settings.OCR.Provider)
	assert.Equal(t, "my-project", settings.OCR.Project)
	assert.True(t, settings.OCR.IsConfigured())
	assert.Equal(t, domain.StoreBackendMemory, settings.Store.Backend)
	assert.Equal(t, domain.RetrieverBackendQdrant, settings.Retriever.Backend)
	assert.Equal(t, "http://localhost:6333", settings.Retriever.QdrantURL)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("ocr.provider", "invalid_provider")
	_ = store.Set("store.backend", "invalid_backend")
	_ = store.Set("retriever.backend", "invalid_backend")

	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	// Invalid values should fall back to defaults
	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.OCR.Provider, settings.OCR.Provider)
	assert.Equal(t, defaults.Store.Backend, settings.Store.Backend)
	assert.Equal(t, defaults.Retriever.Backend, settings.Retriever.Backend)
}

func TestSettingsService_Save(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	settings := &domain.AppSettings{
		Ingest: domain.IngestSettings{
			CoverageThreshold: 0.25,
			MaxParallelFiles:  2,
		},
		OCR: domain.OCRSettings{
			Provider:  domain.OCRProviderTesseract,
			Languages: []string{"eng", "deu"},
		},
		Store: domain.StoreSettings{
			Backend:   domain.StoreBackendRedis,
			RedisAddr: "localhost:6379",
		},
		Retriever: domain.RetrieverSettings{
			Backend:          domain.RetrieverBackendQdrant,
			QdrantURL:        "http://localhost:6333",
			QdrantCollection: "units",
		},
		Watch: domain.WatchSettings{
			DebounceMillis: 250,
		},
	}

	err := service.Save(settings)
	require.NoError(t, err)

	// Verify values were stored
	retrieved, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, 0.25, retrieved.Ingest.CoverageThreshold)
	assert.Equal(t, 2, retrieved.Ingest.MaxParallelFiles)
	assert.Equal(t, domain.OCRProviderTesseract, retrieved.OCR.Provider)
	assert.Equal(t, []string{"eng", "deu"}, retrieved.OCR.Languages)
	assert.Equal(t, domain.StoreBackendRedis, retrieved.Store.Backend)
	assert.Equal(t, "localhost:6379", retrieved.Store.RedisAddr)
	assert.Equal(t, domain.RetrieverBackendQdrant, retrieved.Retriever.Backend)
	assert.Equal(t, "http://localhost:6333", retrieved.Retriever.QdrantURL)
	assert.Equal(t, "units", retrieved.Retriever.QdrantCollection)
	assert.Equal(t, 250, retrieved.Watch.DebounceMillis)
}

func TestSettingsService_SetCoverageThreshold_Valid(t *testing.T) {
	tests := []struct {
		name      string
		threshold float64
	}{
		{"low threshold", 0.1},
		{"default threshold", 0.3},
		{"maximum threshold", 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewConfigStore()
			service := NewSettingsService(store)

			err := service.SetCoverageThreshold(tt.threshold)
			require.NoError(t, err)

			settings, err := service.Get()
			require.NoError(t, err)
			assert.Equal(t, tt.threshold, settings.Ingest.CoverageThreshold)
		})
	}
}

func TestSettingsService_SetCoverageThreshold_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		threshold float64
	}{
		{"zero", 0},
		{"negative", -0.3},
		{"above one", 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewConfigStore()
			service := NewSettingsService(store)

			err := service.SetCoverageThreshold(tt.threshold)

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestSettingsService_SetOCR_Valid(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	err := service.SetOCR(domain.OCRSettings{
		Provider: domain.OCRProviderVertex,
		Project:  "my-project",
		Location: "europe-west1",
	})
	require.NoError(t, err)

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.OCRProviderVertex, settings.OCR.Provider)
	assert.Equal(t, "my-project", settings.OCR.Project)
	assert.Equal(t, "europe-west1", settings.OCR.Location)
}

func TestSettingsService_SetOCR_InvalidProvider(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	err := service.SetOCR(domain.OCRSettings{Provider: "clippy"})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsService_SetOCR_VertexRequiresProject(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	err := service.SetOCR(domain.OCRSettings{Provider: domain.OCRProviderVertex})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "project")
}

func TestSettingsService_SetStoreBackend(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	err := service.SetStoreBackend(domain.StoreBackendMemory)
	require.NoError(t, err)

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.StoreBackendMemory, settings.Store.Backend)

	err = service.SetStoreBackend(domain.StoreBackend("etcd"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsService_SetRetrieverBackend(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	err := service.SetRetrieverBackend(domain.RetrieverBackendRedis)
	require.NoError(t, err)

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.RetrieverBackendRedis, settings.Retriever.Backend)

	err = service.SetRetrieverBackend(domain.RetrieverBackend("pinecone"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsService_Validate_DefaultsAreValid(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	err := service.Validate()

	assert.NoError(t, err)
}

func TestSettingsService_Validate_RedisStoreRequiresAddr(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("store.backend", "redis")

	service := NewSettingsService(store)

	err := service.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis address")
}

func TestSettingsService_Validate_QdrantRetrieverRequiresURL(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("retriever.backend", "qdrant")

	service := NewSettingsService(store)

	err := service.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "qdrant url")
}

func TestSettingsService_Validate_RedisRetrieverRequiresRedisStore(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("retriever.backend", "redis")

	service := NewSettingsService(store)

	err := service.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis store backend")
}

func TestSettingsService_Validate_RedisRetrieverWithRedisStore(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("store.backend", "redis")
	_ = store.Set("store.redis.addr", "localhost:6379")
	_ = store.Set("retriever.backend", "redis")

	service := NewSettingsService(store)

	err := service.Validate()

	assert.NoError(t, err)
}

func TestSettingsService_GetDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	defaults := service.GetDefaults()

	assert.Equal(t, domain.DefaultAppSettings(), defaults)
}
