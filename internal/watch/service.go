package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/sonarlabs/docingest/internal/core/domain"
	"github.com/sonarlabs/docingest/internal/core/ports/driving"
	"github.com/sonarlabs/docingest/internal/logger"
)

// Service connects a directory watcher to the ingestion pipeline.
// Created and modified files are ingested, which supersedes their
// earlier units; removed files have their units deleted. Every unit
// carries the service's ownership tags.
type Service struct {
	watcher *Watcher
	ingest  driving.IngestService
	tags    domain.TenantTags
}

// NewService creates a watch service.
func NewService(watcher *Watcher, ingest driving.IngestService, tags domain.TenantTags) *Service {
	return &Service{
		watcher: watcher,
		ingest:  ingest,
		tags:    tags,
	}
}

// Run watches until the context is cancelled. Per-file failures are
// logged and never stop the watch.
func (s *Service) Run(ctx context.Context) error {
	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return s.watcher.Run(ctx)
	})

	group.Go(func() error {
		for change := range s.watcher.Changes() {
			s.apply(ctx, change)
		}
		return nil
	})

	err := group.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// apply handles one debounced change.
func (s *Service) apply(ctx context.Context, change domain.FileChange) {
	fileName := s.fileName(change.Path)

	switch change.Type {
	case domain.ChangeCreated, domain.ChangeUpdated:
		content, err := os.ReadFile(change.Path)
		if err != nil {
			// The file may already be gone again
			logger.Warn("Read %s: %v", change.Path, err)
			return
		}
		units, err := s.ingest.IngestFile(ctx, fileName, content, s.tags)
		if err != nil {
			logger.Error("Ingest %s: %v", fileName, err)
			return
		}
		logger.Info("Ingested %s (%d unit(s))", fileName, len(units))

	case domain.ChangeDeleted:
		if err := s.removeUnits(ctx, fileName); err != nil {
			logger.Error("Remove units for %s: %v", fileName, err)
		}
	}
}

// removeUnits deletes every stored unit whose file name matches, within
// the service's tenant scope.
func (s *Service) removeUnits(ctx context.Context, fileName string) error {
	summaries, err := s.ingest.ListUnits(ctx, domain.ScopeFromTags(s.tags))
	if err != nil {
		return fmt.Errorf("list units: %w", err)
	}

	removed := 0
	for _, summary := range summaries {
		if summary.Metadata[domain.MetaFileName] != fileName {
			continue
		}
		if err := s.ingest.DeleteUnit(ctx, summary.ID); err != nil {
			return fmt.Errorf("delete unit %s: %w", summary.ID, err)
		}
		removed++
	}
	if removed > 0 {
		logger.Info("Removed %d unit(s) for %s", removed, fileName)
	}
	return nil
}

// fileName converts an absolute path to the name units are stored
// under: the path relative to the watch root, so files with the same
// base name in different subdirectories stay distinct.
func (s *Service) fileName(path string) string {
	rel, err := filepath.Rel(s.watcher.Root(), path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return filepath.Base(path)
	}
	return filepath.ToSlash(rel)
}
