package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/sonarlabs/docingest/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/sonarlabs/docingest/internal/core/domain"
	"github.com/sonarlabs/docingest/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.UnitStore = (*Store)(nil)

// Store is a SQLite-backed unit store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.docingest/data/units.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".docingest", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "units.db")

	// WAL mode for concurrent readers during batch ingestion
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial_schema.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// Put stores the units, replacing any with the same id.
// The whole batch is written in one transaction.
func (s *Store) Put(ctx context.Context, units []*domain.TextUnit) error {
	if len(units) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

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

		_, err = tx.ExecContext(ctx, `
			INSERT INTO units (id, text, metadata, embed_excluded, generation_excluded,
				file_name, org_id, user_id, project_id, file_id)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				text = excluded.text,
				metadata = excluded.metadata,
				embed_excluded = excluded.embed_excluded,
				generation_excluded = excluded.generation_excluded,
				file_name = excluded.file_name,
				org_id = excluded.org_id,
				user_id = excluded.user_id,
				project_id = excluded.project_id,
				file_id = excluded.file_id
		`, unit.ID, unit.Text, string(metadataJSON), string(embedJSON), string(generationJSON),
			unit.Metadata[domain.MetaFileName], unit.Metadata[domain.MetaOrgID],
			unit.Metadata[domain.MetaUserID], unit.Metadata[domain.MetaProjectID],
			unit.Metadata[domain.MetaFileID])
		if err != nil {
			return fmt.Errorf("saving unit %s: %w", unit.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing units: %w", err)
	}
	return nil
}

// Delete removes a unit by id.
func (s *Store) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM units WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting unit: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deletion: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List returns summaries of units matching the scope, ordered by id.
// The scoping rules here mirror the predicate filter: explicit ids
// become an id set, and the tenant triple restricts only when complete.
func (s *Store) List(ctx context.Context, scope *domain.TenantScope) ([]domain.UnitSummary, error) {
	query := "SELECT id, metadata FROM units"
	var (
		conds []string
		args  []any
	)

	if scope != nil {
		if len(scope.DocIDs) > 0 {
			placeholders := strings.TrimSuffix(strings.Repeat("?,", len(scope.DocIDs)), ",")
			conds = append(conds, fmt.Sprintf("id IN (%s)", placeholders))
			for _, id := range scope.DocIDs {
				args = append(args, id)
			}
		}
		if scope.IsTenantScoped() {
			conds = append(conds, "org_id = ?", "user_id = ?", "project_id = ?")
			args = append(args, scope.OrgID, scope.UserID, scope.ProjectID)
			if scope.FileID != "" {
				conds = append(conds, "file_id = ?")
				args = append(args, scope.FileID)
			}
		}
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing units: %w", err)
	}
	defer rows.Close()

	summaries := make([]domain.UnitSummary, 0)
	for rows.Next() {
		var (
			summary      domain.UnitSummary
			metadataJSON string
		)
		if err := rows.Scan(&summary.ID, &metadataJSON); err != nil {
			return nil, fmt.Errorf("scanning unit summary: %w", err)
		}
		if err := json.Unmarshal([]byte(metadataJSON), &summary.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshalling metadata: %w", err)
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating units: %w", err)
	}
	return summaries, nil
}

// Get retrieves a full unit by id.
func (s *Store) Get(ctx context.Context, id string) (*domain.TextUnit, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, text, metadata, embed_excluded, generation_excluded
		FROM units WHERE id = ?
	`, id)

	var (
		unit           domain.TextUnit
		metadataJSON   string
		embedJSON      string
		generationJSON string
	)
	if err := row.Scan(&unit.ID, &unit.Text, &metadataJSON, &embedJSON, &generationJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning unit: %w", err)
	}

	if err := json.Unmarshal([]byte(metadataJSON), &unit.Metadata); err != nil {
		return nil, fmt.Errorf("unmarshalling metadata: %w", err)
	}
	if err := json.Unmarshal([]byte(embedJSON), &unit.EmbedExcluded); err != nil {
		return nil, fmt.Errorf("unmarshalling embed exclusions: %w", err)
	}
	if err := json.Unmarshal([]byte(generationJSON), &unit.GenerationExcluded); err != nil {
		return nil, fmt.Errorf("unmarshalling generation exclusions: %w", err)
	}

	return &unit, nil
}
