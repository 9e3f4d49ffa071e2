package services

import (
	"context"
	"fmt"

	"github.com/sonarlabs/docingest/internal/core/domain"
	"github.com/sonarlabs/docingest/internal/core/ports/driven"
	"github.com/sonarlabs/docingest/internal/core/ports/driving"
	"github.com/sonarlabs/docingest/internal/logger"
)

// DefaultRetrieveLimit is the topK used when the caller passes none.
const DefaultRetrieveLimit = 10

// Ensure RetrievalService implements the interface.
var _ driving.RetrievalService = (*RetrievalService)(nil)

// RetrievalService builds retrieval parameters from a tenant scope and
// delegates to the external retriever.
type RetrievalService struct {
	retriever driven.Retriever
}

// NewRetrievalService creates a retrieval service.
// The retriever is optional - without it, Retrieve fails with
// domain.ErrRetrieverUnavailable.
func NewRetrievalService(retriever driven.Retriever) *RetrievalService {
	return &RetrievalService{retriever: retriever}
}

// Retrieve returns the units most relevant to the query within the scope.
//
// A scope carrying explicit doc ids is passed natively when the retriever
// supports id-scoped retrieval, and the predicate filter is then not
// additionally applied; the two mechanisms are mutually exclusive per
// request. All other scopes translate to a predicate filter, with the
// empty filter meaning no restriction.
func (s *RetrievalService) Retrieve(ctx context.Context, query string, scope *domain.TenantScope, topK int) ([]domain.RetrievedUnit, error) {
	if s.retriever == nil {
		return nil, domain.ErrRetrieverUnavailable
	}
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	if topK <= 0 {
		topK = DefaultRetrieveLimit
	}

	params := driven.RetrievalParams{TopK: topK}
	if scope != nil && len(scope.DocIDs) > 0 && s.retriever.NativeDocIDs() {
		params.DocIDs = scope.DocIDs
		logger.Debug("Retrieving top %d natively scoped to %d doc id(s)", topK, len(params.DocIDs))
	} else {
		params.Filter = domain.BuildFilter(scope)
		logger.Debug("Retrieving top %d with %d filter clause(s)", topK, len(params.Filter.Clauses))
	}

	results, err := s.retriever.Query(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("query retriever: %w", err)
	}
	return results, nil
}
