package driven

import (
	"context"

	"github.com/sonarlabs/docingest/internal/core/domain"
)

// UnitStore persists text units.
// The store is the only mutable shared resource in the ingestion core.
// It offers no cross-file transactions: concurrent deletes and writes on
// disjoint ids are safe, and callers own any delete-then-write ordering.
type UnitStore interface {
	// Put stores the units. Existing units with the same id are replaced.
	Put(ctx context.Context, units []*domain.TextUnit) error

	// Delete removes a unit by id.
	// Returns domain.ErrNotFound if the unit does not exist.
	Delete(ctx context.Context, id string) error

	// List returns summaries of units matching the scope.
	// A nil scope matches everything.
	List(ctx context.Context, scope *domain.TenantScope) ([]domain.UnitSummary, error)

	// Get retrieves a full unit by id.
	// Returns domain.ErrNotFound if the unit does not exist.
	Get(ctx context.Context, id string) (*domain.TextUnit, error)

	// Close releases resources.
	Close() error
}
