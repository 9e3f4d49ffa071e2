package driving

import (
	"context"

	"github.com/sonarlabs/docingest/internal/core/domain"
)

// IngestService accepts documents for ingestion and manages stored units.
// All calls are synchronous: the caller awaits full completion even though
// the implementation may suspend on document parsing, OCR or the store.
type IngestService interface {
	// IngestFile transforms one file into tagged units, supersedes any
	// stored units sharing its file name within the tags' tenant scope,
	// and writes the new units to the store.
	IngestFile(ctx context.Context, fileName string, content []byte, tags domain.TenantTags) ([]*domain.TextUnit, error)

	// IngestFiles ingests a batch. Files are transformed concurrently
	// and independently; one file's failure never aborts its siblings
	// and commits nothing for that file.
	IngestFiles(ctx context.Context, inputs []domain.IngestInput) (*domain.BatchResult, error)

	// IngestText ingests a raw text string as a single unit under the
	// given file name.
	IngestText(ctx context.Context, fileName, text string, tags domain.TenantTags) ([]*domain.TextUnit, error)

	// ListUnits returns summaries of stored units matching the scope.
	// A nil scope lists everything.
	ListUnits(ctx context.Context, scope *domain.TenantScope) ([]domain.UnitSummary, error)

	// GetUnit returns one stored unit by id, including its text.
	GetUnit(ctx context.Context, id string) (*domain.TextUnit, error)

	// DeleteUnit removes one unit by id.
	DeleteUnit(ctx context.Context, id string) error
}
