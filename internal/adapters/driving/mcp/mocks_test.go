package mcp

import (
	"context"

	"github.com/sonarlabs/docingest/internal/core/domain"
)

// mockRetrievalService is a mock implementation of driving.RetrievalService.
type mockRetrievalService struct {
	results []domain.RetrievedUnit
	err     error

	lastScope *domain.TenantScope
	lastTopK  int
}

func (m *mockRetrievalService) Retrieve(
	_ context.Context,
	_ string,
	scope *domain.TenantScope,
	topK int,
) ([]domain.RetrievedUnit, error) {
	m.lastScope = scope
	m.lastTopK = topK
	return m.results, m.err
}

// mockIngestService is a mock implementation of driving.IngestService.
type mockIngestService struct {
	units     []*domain.TextUnit
	batch     *domain.BatchResult
	summaries []domain.UnitSummary
	unit      *domain.TextUnit
	err       error

	lastTags   domain.TenantTags
	lastInputs []domain.IngestInput
	lastScope  *domain.TenantScope
	deleted    []string
}

func (m *mockIngestService) IngestFile(
	_ context.Context,
	_ string,
	_ []byte,
	tags domain.TenantTags,
) ([]*domain.TextUnit, error) {
	m.lastTags = tags
	return m.units, m.err
}

func (m *mockIngestService) IngestFiles(
	_ context.Context,
	inputs []domain.IngestInput,
) (*domain.BatchResult, error) {
	m.lastInputs = inputs
	return m.batch, m.err
}

func (m *mockIngestService) IngestText(
	_ context.Context,
	_, _ string,
	tags domain.TenantTags,
) ([]*domain.TextUnit, error) {
	m.lastTags = tags
	return m.units, m.err
}

func (m *mockIngestService) ListUnits(
	_ context.Context,
	scope *domain.TenantScope,
) ([]domain.UnitSummary, error) {
	m.lastScope = scope
	return m.summaries, m.err
}

func (m *mockIngestService) GetUnit(_ context.Context, _ string) (*domain.TextUnit, error) {
	return m.unit, m.err
}

func (m *mockIngestService) DeleteUnit(_ context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	return m.err
}
