package domain

const unknownDescription = "Unknown"

// OCRProvider identifies an optical character recognition service.
type OCRProvider string

// Available OCR providers.
const (
	// OCRProviderGoogleVision is the Google Cloud Vision text detection API.
	OCRProviderGoogleVision OCRProvider = "googlevision"

	// OCRProviderVertex is Gemini multimodal recognition via Vertex AI.
	OCRProviderVertex OCRProvider = "vertex"

	// OCRProviderTesseract is local Tesseract (requires a cgo build).
	OCRProviderTesseract OCRProvider = "tesseract"
)

// IsValid returns true if the OCR provider is recognised.
func (p OCRProvider) IsValid() bool {
	switch p {
	case OCRProviderGoogleVision, OCRProviderVertex, OCRProviderTesseract:
		return true
	default:
		return false
	}
}

// IsLocal returns true if this provider runs without network access.
func (p OCRProvider) IsLocal() bool {
	return p == OCRProviderTesseract
}

// String returns the string representation.
func (p OCRProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p OCRProvider) Description() string {
	switch p {
	case OCRProviderGoogleVision:
		return "Google Cloud Vision (cloud)"
	case OCRProviderVertex:
		return "Vertex AI Gemini (cloud)"
	case OCRProviderTesseract:
		return "Tesseract (local)"
	default:
		return unknownDescription
	}
}

// AllOCRProviders returns all available OCR providers.
func AllOCRProviders() []OCRProvider {
	return []OCRProvider{
		OCRProviderGoogleVision,
		OCRProviderVertex,
		OCRProviderTesseract,
	}
}

// OCRSettings holds OCR provider configuration.
type OCRSettings struct {
	// Provider is the OCR service provider.
	Provider OCRProvider

	// CredentialsFile is a service account key path (Google providers).
	// Empty means application default credentials.
	CredentialsFile string

	// APIKey is an API key alternative to credentials (Google Vision).
	APIKey string

	// Project is the GCP project (Vertex).
	Project string

	// Location is the GCP region (Vertex).
	Location string

	// Model is the recognition model name (Vertex).
	Model string

	// Prompt overrides the transcription instruction (Vertex).
	Prompt string

	// Languages are recognition language hints (Tesseract).
	Languages []string

	// RequestsPerSecond is the sustained provider call rate.
	RequestsPerSecond float64

	// Burst is the maximum burst of provider calls.
	Burst int
}

// IsConfigured returns true if the OCR provider is set up.
func (s OCRSettings) IsConfigured() bool {
	if !s.Provider.IsValid() {
		return false
	}
	if s.Provider == OCRProviderVertex && s.Project == "" {
		return false
	}
	return true
}

// StoreBackend identifies a unit store implementation.
type StoreBackend string

// Available store backends.
const (
	// StoreBackendMemory keeps units in process memory only.
	StoreBackendMemory StoreBackend = "memory"

	// StoreBackendSQLite persists units to a local SQLite database.
	StoreBackendSQLite StoreBackend = "sqlite"

	// StoreBackendRedis persists units to a RediSearch index.
	StoreBackendRedis StoreBackend = "redis"
)

// IsValid returns true if the store backend is recognised.
func (b StoreBackend) IsValid() bool {
	switch b {
	case StoreBackendMemory, StoreBackendSQLite, StoreBackendRedis:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b StoreBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StoreBackend) Description() string {
	switch b {
	case StoreBackendMemory:
		return "In-memory (ephemeral)"
	case StoreBackendSQLite:
		return "SQLite (local file)"
	case StoreBackendRedis:
		return "Redis (RediSearch index)"
	default:
		return unknownDescription
	}
}

// AllStoreBackends returns all available store backends.
func AllStoreBackends() []StoreBackend {
	return []StoreBackend{
		StoreBackendMemory,
		StoreBackendSQLite,
		StoreBackendRedis,
	}
}

// DefaultMaxParallelFiles bounds per-file concurrency in batch ingestion.
const DefaultMaxParallelFiles = 4

// IngestSettings holds ingestion pipeline configuration.
type IngestSettings struct {
	// CoverageThreshold is the classifier's text coverage cutoff.
	CoverageThreshold float64

	// MaxParallelFiles bounds concurrent per-file transformation in
	// batch ingestion. Zero or negative falls back to the default.
	MaxParallelFiles int
}

// ParallelFiles returns the effective batch concurrency bound.
func (s IngestSettings) ParallelFiles() int {
	if s.MaxParallelFiles <= 0 {
		return DefaultMaxParallelFiles
	}
	return s.MaxParallelFiles
}

// StoreSettings holds unit store configuration.
type StoreSettings struct {
	// Backend selects the store implementation.
	Backend StoreBackend

	// DataDir is the local data directory (SQLite).
	// Empty means the default under the user's home directory.
	DataDir string

	// RedisAddr is the Redis host:port (Redis backend).
	RedisAddr string

	// RedisPassword authenticates to Redis when set.
	RedisPassword string

	// RedisDB is the Redis logical database number.
	RedisDB int
}

// RetrieverBackend identifies a vector index retriever implementation.
type RetrieverBackend string

// Available retriever backends.
const (
	// RetrieverBackendNone disables retrieval.
	RetrieverBackendNone RetrieverBackend = "none"

	// RetrieverBackendQdrant queries a Qdrant collection over REST.
	RetrieverBackendQdrant RetrieverBackend = "qdrant"

	// RetrieverBackendRedis queries the RediSearch index that also
	// backs the Redis store.
	RetrieverBackendRedis RetrieverBackend = "redis"
)

// IsValid returns true if the retriever backend is recognised.
func (b RetrieverBackend) IsValid() bool {
	switch b {
	case RetrieverBackendNone, RetrieverBackendQdrant, RetrieverBackendRedis:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b RetrieverBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b RetrieverBackend) Description() string {
	switch b {
	case RetrieverBackendNone:
		return "Disabled"
	case RetrieverBackendQdrant:
		return "Qdrant (REST)"
	case RetrieverBackendRedis:
		return "Redis (RediSearch index)"
	default:
		return unknownDescription
	}
}

// AllRetrieverBackends returns all available retriever backends.
func AllRetrieverBackends() []RetrieverBackend {
	return []RetrieverBackend{
		RetrieverBackendNone,
		RetrieverBackendQdrant,
		RetrieverBackendRedis,
	}
}

// RetrieverSettings holds vector retriever configuration.
type RetrieverSettings struct {
	// Backend selects the retriever implementation.
	Backend RetrieverBackend

	// QdrantURL is the Qdrant base URL.
	QdrantURL string

	// QdrantAPIKey authenticates Qdrant requests when set.
	QdrantAPIKey string

	// QdrantCollection is the collection queried for units.
	QdrantCollection string

	// QdrantModel names the server-side query embedding model.
	QdrantModel string
}

// DefaultWatchDebounceMillis is the watcher's change coalescing window.
const DefaultWatchDebounceMillis = 500

// WatchSettings holds directory watch configuration.
type WatchSettings struct {
	// DebounceMillis is the quiet period before a change is emitted,
	// so one save burst becomes one ingestion. Zero or negative falls
	// back to the default.
	DebounceMillis int
}

// Debounce returns the effective debounce window in milliseconds.
func (s WatchSettings) Debounce() int {
	if s.DebounceMillis <= 0 {
		return DefaultWatchDebounceMillis
	}
	return s.DebounceMillis
}

// AppSettings aggregates all application settings.
type AppSettings struct {
	// Ingest configures the ingestion pipeline.
	Ingest IngestSettings

	// OCR configures the OCR provider.
	OCR OCRSettings

	// Store configures unit persistence.
	Store StoreSettings

	// Retriever configures the vector retriever.
	Retriever RetrieverSettings

	// Watch configures the directory watcher.
	Watch WatchSettings
}

// DefaultAppSettings returns settings with sensible defaults:
// SQLite persistence, no OCR provider, no retriever. An unset OCR
// provider means pages routed to OCR fail until one is configured.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Ingest: IngestSettings{
			CoverageThreshold: DefaultCoverageThreshold,
			MaxParallelFiles:  DefaultMaxParallelFiles,
		},
		Store: StoreSettings{
			Backend: StoreBackendSQLite,
		},
		Retriever: RetrieverSettings{
			Backend: RetrieverBackendNone,
		},
		Watch: WatchSettings{
			DebounceMillis: DefaultWatchDebounceMillis,
		},
	}
}
