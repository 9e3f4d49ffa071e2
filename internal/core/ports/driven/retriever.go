package driven

import (
	"context"

	"github.com/sonarlabs/docingest/internal/core/domain"
)

// RetrievalParams carries the scoping for one retriever query.
// DocIDs and Filter are mutually exclusive: a request uses native id
// scoping or a predicate filter, never both.
type RetrievalParams struct {
	// TopK is the maximum number of units to return.
	TopK int

	// DocIDs restricts retrieval to these unit ids natively.
	// Only honoured by retrievers reporting NativeDocIDs.
	DocIDs []string

	// Filter is the predicate applied when DocIDs is empty.
	Filter domain.PredicateFilter
}

// Retriever queries the external vector index for relevant units.
// Ranking, scoring internals and embedding generation belong to the
// backing index, not to this core.
type Retriever interface {
	// Query returns the units most relevant to the query text,
	// restricted by the params' scoping.
	Query(ctx context.Context, query string, params RetrievalParams) ([]domain.RetrievedUnit, error)

	// NativeDocIDs reports whether the backend accepts an id list
	// directly instead of a doc_id predicate filter.
	NativeDocIDs() bool

	// Close releases resources.
	Close() error
}
