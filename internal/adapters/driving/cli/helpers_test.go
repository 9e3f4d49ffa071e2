package cli

import (
	"context"
	"errors"

	"github.com/sonarlabs/docingest/internal/adapters/driven/storage/memory"
	"github.com/sonarlabs/docingest/internal/core/domain"
	"github.com/sonarlabs/docingest/internal/core/services"
)

var errMock = errors.New("mock failure")

// mockIngestService implements driving.IngestService for testing.
type mockIngestService struct{}

func (m *mockIngestService) IngestFile(_ context.Context, _ string, _ []byte, tags domain.TenantTags) ([]*domain.TextUnit, error) {
	unit := domain.NewTextUnit("mock content")
	unit.ApplyTags(tags)
	unit.Finalise()
	return []*domain.TextUnit{unit}, nil
}

func (m *mockIngestService) IngestFiles(_ context.Context, inputs []domain.IngestInput) (*domain.BatchResult, error) {
	result := &domain.BatchResult{}
	for range inputs {
		result.Units = append(result.Units, domain.NewTextUnit("mock content"))
	}
	return result, nil
}

func (m *mockIngestService) IngestText(_ context.Context, _, text string, tags domain.TenantTags) ([]*domain.TextUnit, error) {
	unit := domain.NewTextUnit(text)
	unit.ApplyTags(tags)
	unit.Finalise()
	return []*domain.TextUnit{unit}, nil
}

func (m *mockIngestService) ListUnits(_ context.Context, _ *domain.TenantScope) ([]domain.UnitSummary, error) {
	return []domain.UnitSummary{
		{
			ID: "unit-1",
			Metadata: map[string]string{
				domain.MetaFileName:  "report.pdf",
				domain.MetaPageLabel: "1",
				domain.MetaTitle:     "Quarterly Report",
			},
		},
		{
			ID: "unit-2",
			Metadata: map[string]string{
				domain.MetaFileName:  "report.pdf",
				domain.MetaPageLabel: "2",
			},
		},
	}, nil
}

func (m *mockIngestService) GetUnit(_ context.Context, id string) (*domain.TextUnit, error) {
	return &domain.TextUnit{
		ID:   id,
		Text: "mock content",
		Metadata: map[string]string{
			domain.MetaFileName: "report.pdf",
		},
	}, nil
}

func (m *mockIngestService) DeleteUnit(_ context.Context, _ string) error {
	return nil
}

// mockIngestServiceError fails every operation.
type mockIngestServiceError struct{}

func (m *mockIngestServiceError) IngestFile(_ context.Context, _ string, _ []byte, _ domain.TenantTags) ([]*domain.TextUnit, error) {
	return nil, errMock
}

func (m *mockIngestServiceError) IngestFiles(_ context.Context, _ []domain.IngestInput) (*domain.BatchResult, error) {
	return nil, errMock
}

func (m *mockIngestServiceError) IngestText(_ context.Context, _, _ string, _ domain.TenantTags) ([]*domain.TextUnit, error) {
	return nil, errMock
}

func (m *mockIngestServiceError) ListUnits(_ context.Context, _ *domain.TenantScope) ([]domain.UnitSummary, error) {
	return nil, errMock
}

func (m *mockIngestServiceError) GetUnit(_ context.Context, _ string) (*domain.TextUnit, error) {
	return nil, errMock
}

func (m *mockIngestServiceError) DeleteUnit(_ context.Context, _ string) error {
	return errMock
}

// mockRetrievalService implements driving.RetrievalService for testing.
type mockRetrievalService struct{}

func (m *mockRetrievalService) Retrieve(_ context.Context, _ string, _ *domain.TenantScope, _ int) ([]domain.RetrievedUnit, error) {
	return []domain.RetrievedUnit{
		{
			Unit: domain.TextUnit{
				ID:   "unit-1",
				Text: "Relevant passage about the query",
				Metadata: map[string]string{
					domain.MetaFileName:  "report.pdf",
					domain.MetaPageLabel: "3",
					domain.MetaTitle:     "Quarterly Report",
				},
			},
			Score: 0.95,
		},
	}, nil
}

// mockRetrievalServiceError fails every query.
type mockRetrievalServiceError struct{}

func (m *mockRetrievalServiceError) Retrieve(_ context.Context, _ string, _ *domain.TenantScope, _ int) ([]domain.RetrievedUnit, error) {
	return nil, errMock
}

// setupTestServices swaps in mock services and returns a cleanup func.
func setupTestServices() func() {
	oldIngest := ingestService
	oldRetrieval := retrievalService
	oldSettings := settingsService

	ingestService = &mockIngestService{}
	retrievalService = &mockRetrievalService{}
	settingsService = services.NewSettingsService(memory.NewConfigStore())

	return func() {
		ingestService = oldIngest
		retrievalService = oldRetrieval
		settingsService = oldSettings
	}
}
