package redis

import (
	"context"
	"fmt"

	"github.com/sonarlabs/docingest/internal/core/domain"
	"github.com/sonarlabs/docingest/internal/core/ports/driven"
)

// Query returns the units most relevant to the query text, restricted by
// the params' predicate filter. Relevance comes from RediSearch full-text
// scoring over the text field.
func (s *Store) Query(ctx context.Context, query string, params driven.RetrievalParams) ([]domain.RetrievedUnit, error) {
	topK := params.TopK
	if topK <= 0 {
		topK = 10
	}

	search := searchQuery(query, params.Filter)

	reply, err := s.client.Do(ctx, "FT.SEARCH", s.index, search,
		"WITHSCORES",
		"LIMIT", "0", fmt.Sprintf("%d", topK),
	).Result()
	if err != nil {
		return nil, fmt.Errorf("searching units: %w", err)
	}

	hits, err := parseSearchReply(reply, true)
	if err != nil {
		return nil, fmt.Errorf("parsing search reply: %w", err)
	}

	results := make([]domain.RetrievedUnit, 0, len(hits))
	for _, hit := range hits {
		unit, err := hashToUnit(unitID(hit.key), hit.fields)
		if err != nil {
			return nil, err
		}
		results = append(results, domain.RetrievedUnit{
			Unit:  *unit,
			Score: hit.score,
		})
	}
	return results, nil
}

// NativeDocIDs reports that this backend takes id restrictions through
// the predicate filter, not as a native id list.
func (s *Store) NativeDocIDs() bool {
	return false
}
