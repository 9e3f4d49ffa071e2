package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/sonarlabs/docingest/internal/core/domain"
	"github.com/sonarlabs/docingest/internal/core/ports/driven"
)

// Ensure UnitStore implements the interface.
var _ driven.UnitStore = (*UnitStore)(nil)

// UnitStore is an in-memory implementation of driven.UnitStore.
// Units are stored by value, so callers cannot mutate stored state
// through retained pointers.
type UnitStore struct {
	mu    sync.RWMutex
	units map[string]domain.TextUnit
}

// NewUnitStore creates a new in-memory unit store.
func NewUnitStore() *UnitStore {
	return &UnitStore{
		units: make(map[string]domain.TextUnit),
	}
}

// Put stores the units, replacing any with the same id.
func (s *UnitStore) Put(_ context.Context, units []*domain.TextUnit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, unit := range units {
		stored := *unit
		stored.Metadata = copyMetadata(unit.Metadata)
		s.units[unit.ID] = stored
	}
	return nil
}

// Delete removes a unit by id.
func (s *UnitStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.units[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.units, id)
	return nil
}

// List returns summaries of units matching the scope, ordered by id for
// deterministic output.
func (s *UnitStore) List(_ context.Context, scope *domain.TenantScope) ([]domain.UnitSummary, error) {
	filter := domain.BuildFilter(scope)

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.UnitSummary, 0, len(s.units))
	for id := range s.units {
		unit := s.units[id]
		if !filter.Matches(unit.Metadata) {
			continue
		}
		result = append(result, unit.Summary())
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// Get retrieves a full unit by id.
func (s *UnitStore) Get(_ context.Context, id string) (*domain.TextUnit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	unit, ok := s.units[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	unit.Metadata = copyMetadata(unit.Metadata)
	return &unit, nil
}

// Close releases resources. Nothing to release in memory.
func (s *UnitStore) Close() error {
	return nil
}

// copyMetadata creates a shallow copy of metadata.
func copyMetadata(src map[string]string) map[string]string {
	if src == nil {
		return nil
	}
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
