package driving

import (
	"context"

	"github.com/sonarlabs/docingest/internal/core/domain"
)

// RetrievalService performs tenant-scoped retrieval of stored units.
type RetrievalService interface {
	// Retrieve returns the topK units most relevant to the query,
	// restricted to the scope. Scopes carrying explicit doc ids use the
	// retriever's native id path when available; otherwise a predicate
	// filter is applied. A nil scope retrieves without restriction.
	Retrieve(ctx context.Context, query string, scope *domain.TenantScope, topK int) ([]domain.RetrievedUnit, error)
}
