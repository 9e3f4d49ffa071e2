package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/sonarlabs/docingest/internal/core/domain"
	"github.com/sonarlabs/docingest/internal/core/ports/driven"
	"github.com/sonarlabs/docingest/internal/core/ports/driving"
	"github.com/sonarlabs/docingest/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService orchestrates ingestion: per-file transformation,
// supersede-on-rename dedup and unit persistence.
type IngestService struct {
	transformer *Transformer
	store       driven.UnitStore
	settings    domain.IngestSettings
}

// NewIngestService creates an ingestion orchestrator.
func NewIngestService(transformer *Transformer, store driven.UnitStore, settings domain.IngestSettings) *IngestService {
	return &IngestService{
		transformer: transformer,
		store:       store,
		settings:    settings,
	}
}

// IngestFile ingests a single file.
func (s *IngestService) IngestFile(ctx context.Context, fileName string, content []byte, tags domain.TenantTags) ([]*domain.TextUnit, error) {
	if s.store == nil {
		return nil, domain.ErrStoreUnavailable
	}
	tags.FileName = fileName
	if err := domain.ScopeFromTags(tags).Validate(); err != nil {
		return nil, fmt.Errorf("ingest %s: %w", fileName, err)
	}

	logger.Section("Ingest " + fileName)

	// 1. Dedup scan: find stored units this file supersedes
	superseded, err := s.scanSuperseded(ctx, []domain.IngestInput{{FileName: fileName, Tags: tags}})
	if err != nil {
		return nil, fmt.Errorf("dedup scan: %w", err)
	}

	// 2. Transform, then delete-before-write for this file
	units, err := s.ingestOne(ctx, domain.IngestInput{FileName: fileName, Content: content, Tags: tags}, superseded[fileName])
	if err != nil {
		return nil, err
	}
	return units, nil
}

// IngestFiles ingests a batch concurrently. Each file is independent:
// a failure excludes that file from the result, commits none of its
// units, and never aborts siblings already in flight.
func (s *IngestService) IngestFiles(ctx context.Context, inputs []domain.IngestInput) (*domain.BatchResult, error) {
	if s.store == nil {
		return nil, domain.ErrStoreUnavailable
	}

	logger.Section(fmt.Sprintf("Ingest batch (%d files)", len(inputs)))

	// 1. Dedup scan once up front against the full batch's file names
	superseded, err := s.scanSuperseded(ctx, inputs)
	if err != nil {
		return nil, fmt.Errorf("dedup scan: %w", err)
	}

	// 2. Transform files concurrently, bounded
	perFile := make([][]*domain.TextUnit, len(inputs))
	var (
		mu     sync.Mutex
		failed []domain.FileError
	)

	group := &errgroup.Group{}
	group.SetLimit(s.settings.ParallelFiles())

	for i := range inputs {
		group.Go(func() error {
			units, err := s.ingestOne(ctx, inputs[i], superseded[inputs[i].FileName])
			if err != nil {
				logger.Error("Ingest %s failed: %v", inputs[i].FileName, err)
				mu.Lock()
				failed = append(failed, domain.FileError{FileName: inputs[i].FileName, Err: err})
				mu.Unlock()
				return nil
			}
			perFile[i] = units
			return nil
		})
	}
	// Workers report per-file failures through the result, never through
	// the group, so one file cannot cancel its siblings.
	_ = group.Wait()

	result := &domain.BatchResult{Failed: failed}
	for _, units := range perFile {
		result.Units = append(result.Units, units...)
	}

	logger.Info("Batch complete: %d unit(s), %d failed file(s)", len(result.Units), len(result.Failed))
	return result, nil
}

// IngestText ingests a raw text string as exactly one unit.
func (s *IngestService) IngestText(ctx context.Context, fileName, text string, tags domain.TenantTags) ([]*domain.TextUnit, error) {
	if s.store == nil {
		return nil, domain.ErrStoreUnavailable
	}
	tags.FileName = fileName
	if err := domain.ScopeFromTags(tags).Validate(); err != nil {
		return nil, fmt.Errorf("ingest text %s: %w", fileName, err)
	}

	superseded, err := s.scanSuperseded(ctx, []domain.IngestInput{{FileName: fileName, Tags: tags}})
	if err != nil {
		return nil, fmt.Errorf("dedup scan: %w", err)
	}

	unit := domain.NewTextUnit(text)
	unit.ApplyTags(tags)
	unit.Finalise()

	if err := s.supersede(ctx, superseded[fileName]); err != nil {
		return nil, fmt.Errorf("supersede %s: %w", fileName, err)
	}
	if err := s.store.Put(ctx, []*domain.TextUnit{unit}); err != nil {
		return nil, fmt.Errorf("store units for %s: %w", fileName, err)
	}
	return []*domain.TextUnit{unit}, nil
}

// ListUnits returns stored unit summaries matching the scope.
func (s *IngestService) ListUnits(ctx context.Context, scope *domain.TenantScope) ([]domain.UnitSummary, error) {
	if s.store == nil {
		return nil, domain.ErrStoreUnavailable
	}
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	return s.store.List(ctx, scope)
}

// GetUnit returns one stored unit by id.
func (s *IngestService) GetUnit(ctx context.Context, id string) (*domain.TextUnit, error) {
	if s.store == nil {
		return nil, domain.ErrStoreUnavailable
	}
	if id == "" {
		return nil, fmt.Errorf("unit id is required: %w", domain.ErrInvalidInput)
	}
	return s.store.Get(ctx, id)
}

// DeleteUnit removes one stored unit by id.
func (s *IngestService) DeleteUnit(ctx context.Context, id string) error {
	if s.store == nil {
		return domain.ErrStoreUnavailable
	}
	if id == "" {
		return fmt.Errorf("unit id is required: %w", domain.ErrInvalidInput)
	}
	return s.store.Delete(ctx, id)
}

// ingestOne transforms one file and commits it with delete-before-write
// ordering. Nothing is deleted or written if the transform fails.
func (s *IngestService) ingestOne(ctx context.Context, input domain.IngestInput, supersededIDs []string) ([]*domain.TextUnit, error) {
	input.Tags.FileName = input.FileName
	if err := domain.ScopeFromTags(input.Tags).Validate(); err != nil {
		return nil, err
	}

	units, err := s.transformer.Transform(ctx, input.FileName, input.Content, input.Tags)
	if err != nil {
		return nil, err
	}

	if err := s.supersede(ctx, supersededIDs); err != nil {
		return nil, fmt.Errorf("supersede %s: %w", input.FileName, err)
	}
	if err := s.store.Put(ctx, units); err != nil {
		return nil, fmt.Errorf("store units for %s: %w", input.FileName, err)
	}
	return units, nil
}

// scanSuperseded lists stored units once and maps each input file name to
// the unit ids it supersedes. Matching is by file name, narrowed by the
// input's tenant tags when provided.
func (s *IngestService) scanSuperseded(ctx context.Context, inputs []domain.IngestInput) (map[string][]string, error) {
	summaries, err := s.store.List(ctx, nil)
	if err != nil {
		return nil, err
	}

	matched := make(map[string][]string, len(inputs))
	for _, input := range inputs {
		filter := domain.BuildFilter(domain.ScopeFromTags(input.Tags))
		for _, summary := range summaries {
			if summary.Metadata[domain.MetaFileName] != input.FileName {
				continue
			}
			if !filter.Matches(summary.Metadata) {
				continue
			}
			matched[input.FileName] = append(matched[input.FileName], summary.ID)
		}
		if n := len(matched[input.FileName]); n > 0 {
			logger.Debug("Superseding %d unit(s) for %s", n, input.FileName)
		}
	}
	return matched, nil
}

// supersede deletes the given unit ids. Units already gone are fine:
// a sibling in the same batch may have deleted them first.
func (s *IngestService) supersede(ctx context.Context, ids []string) error {
	for _, id := range ids {
		if err := s.store.Delete(ctx, id); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
	}
	return nil
}
