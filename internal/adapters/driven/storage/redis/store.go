package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/sonarlabs/docingest/internal/core/domain"
	"github.com/sonarlabs/docingest/internal/core/ports/driven"
)

// Ensure Store implements both ports.
var (
	_ driven.UnitStore = (*Store)(nil)
	_ driven.Retriever = (*Store)(nil)
)

const (
	// keyPrefix namespaces unit hashes in the keyspace.
	keyPrefix = "unit:"

	// Field names in the unit hash. Tenant tags reuse the metadata key
	// names so the index schema and the metadata vocabulary stay aligned.
	fieldText               = "text"
	fieldMetadata           = "metadata"
	fieldEmbedExcluded      = "embed_excluded"
	fieldGenerationExcluded = "generation_excluded"

	// maxListResults caps a single scoped listing.
	maxListResults = 10000
)

// Config holds Redis connection configuration.
type Config struct {
	Addr      string
	Password  string
	DB        int
	PoolSize  int
	IndexName string
}

// DefaultConfig returns the default Redis configuration.
func DefaultConfig() Config {
	return Config{
		Addr:      "localhost:6379",
		PoolSize:  10,
		IndexName: "docingest-units",
	}
}

// Store is a RediSearch-backed unit store and retriever.
type Store struct {
	client *redis.Client
	index  string
}

// NewStore connects to Redis and ensures the search index exists.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Addr == "" {
		cfg.Addr = "localhost:6379"
	}
	if cfg.IndexName == "" {
		cfg.IndexName = "docingest-units"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
		// FT.SEARCH replies are parsed as flat RESP2 arrays.
		Protocol: 2,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	s := &Store{
		client: client,
		index:  cfg.IndexName,
	}

	if err := s.ensureIndex(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("creating search index: %w", err)
	}

	return s, nil
}

// ensureIndex creates the full-text index if it does not exist.
func (s *Store) ensureIndex(ctx context.Context) error {
	if _, err := s.client.Do(ctx, "FT.INFO", s.index).Result(); err == nil {
		return nil
	}

	_, err := s.client.Do(ctx, "FT.CREATE", s.index,
		"ON", "HASH",
		"PREFIX", "1", keyPrefix,
		"SCHEMA",
		fieldText, "TEXT",
		domain.MetaFileName, "TEXT",
		domain.MetaDocID, "TAG",
		domain.MetaOrgID, "TAG",
		domain.MetaUserID, "TAG",
		domain.MetaProjectID, "TAG",
		domain.MetaFileID, "TAG",
	).Result()
	if err != nil {
		return fmt.Errorf("FT.CREATE: %w", err)
	}
	return nil
}

// Put stores the units, replacing any with the same id.
// Each unit's hash is rewritten from scratch so stale fields from an
// earlier version never linger.
func (s *Store) Put(ctx context.Context, units []*domain.TextUnit) error {
	if len(units) == 0 {
		return nil
	}

	pipe := s.client.Pipeline()
	for _, unit := range units {
		metadataJSON, err := json.Marshal(unit.Metadata)
		if err != nil {
			return fmt.Errorf("marshalling metadata: %w", err)
		}
		embedJSON, err := json.Marshal(unit.EmbedExcluded)
		if err != nil {
			return fmt.Errorf("marshalling embed exclusions: %w", err)
		}
		generationJSON, err := json.Marshal(unit.GenerationExcluded)
		if err != nil {
			return fmt.Errorf("marshalling generation exclusions: %w", err)
		}

		key := keyPrefix + unit.ID
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key,
			fieldText, unit.Text,
			fieldMetadata, string(metadataJSON),
			fieldEmbedExcluded, string(embedJSON),
			fieldGenerationExcluded, string(generationJSON),
			domain.MetaDocID, unit.ID,
			domain.MetaFileName, unit.Metadata[domain.MetaFileName],
			domain.MetaOrgID, unit.Metadata[domain.MetaOrgID],
			domain.MetaUserID, unit.Metadata[domain.MetaUserID],
			domain.MetaProjectID, unit.Metadata[domain.MetaProjectID],
			domain.MetaFileID, unit.Metadata[domain.MetaFileID],
		)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("saving units: %w", err)
	}
	return nil
}

// Delete removes a unit by id.
func (s *Store) Delete(ctx context.Context, id string) error {
	deleted, err := s.client.Del(ctx, keyPrefix+id).Result()
	if err != nil {
		return fmt.Errorf("deleting unit: %w", err)
	}
	if deleted == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List returns summaries of units matching the scope, ordered by id.
func (s *Store) List(ctx context.Context, scope *domain.TenantScope) ([]domain.UnitSummary, error) {
	query := filterQuery(domain.BuildFilter(scope))

	reply, err := s.client.Do(ctx, "FT.SEARCH", s.index, query,
		"RETURN", "1", fieldMetadata,
		"LIMIT", "0", fmt.Sprintf("%d", maxListResults),
	).Result()
	if err != nil {
		return nil, fmt.Errorf("listing units: %w", err)
	}

	hits, err := parseSearchReply(reply, false)
	if err != nil {
		return nil, fmt.Errorf("parsing listing reply: %w", err)
	}

	summaries := make([]domain.UnitSummary, 0, len(hits))
	for _, hit := range hits {
		summary := domain.UnitSummary{ID: unitID(hit.key)}
		if raw := hit.fields[fieldMetadata]; raw != "" {
			if err := json.Unmarshal([]byte(raw), &summary.Metadata); err != nil {
				return nil, fmt.Errorf("unmarshalling metadata: %w", err)
			}
		}
		summaries = append(summaries, summary)
	}

	sort.Slice(summaries, func(i, j int) bool { return summaries[i].ID < summaries[j].ID })
	return summaries, nil
}

// Get retrieves a full unit by id.
func (s *Store) Get(ctx context.Context, id string) (*domain.TextUnit, error) {
	fields, err := s.client.HGetAll(ctx, keyPrefix+id).Result()
	if err != nil {
		return nil, fmt.Errorf("fetching unit: %w", err)
	}
	if len(fields) == 0 {
		return nil, domain.ErrNotFound
	}
	return hashToUnit(id, fields)
}

// Close closes the Redis connection.
func (s *Store) Close() error {
	return s.client.Close()
}

// unitID strips the keyspace prefix from a hash key.
func unitID(key string) string {
	if len(key) > len(keyPrefix) && key[:len(keyPrefix)] == keyPrefix {
		return key[len(keyPrefix):]
	}
	return key
}

// hashToUnit rebuilds a unit from its hash fields.
func hashToUnit(id string, fields map[string]string) (*domain.TextUnit, error) {
	unit := &domain.TextUnit{
		ID:   id,
		Text: fields[fieldText],
	}

	if raw := fields[fieldMetadata]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &unit.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshalling metadata: %w", err)
		}
	}
	if raw := fields[fieldEmbedExcluded]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &unit.EmbedExcluded); err != nil {
			return nil, fmt.Errorf("unmarshalling embed exclusions: %w", err)
		}
	}
	if raw := fields[fieldGenerationExcluded]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &unit.GenerationExcluded); err != nil {
			return nil, fmt.Errorf("unmarshalling generation exclusions: %w", err)
		}
	}

	return unit, nil
}
