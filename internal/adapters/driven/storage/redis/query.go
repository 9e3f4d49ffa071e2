package redis

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/sonarlabs/docingest/internal/core/domain"
)

// filterQuery translates a predicate filter into a RediSearch query.
// Clauses sharing a key become one tag group with | alternatives, so the
// per-key any-of and cross-key all-of semantics of the filter carry over
// into the index query. An empty filter matches everything.
func filterQuery(filter domain.PredicateFilter) string {
	if filter.IsEmpty() {
		return "*"
	}

	byKey := make(map[string][]string)
	order := make([]string, 0, len(filter.Clauses))
	for _, c := range filter.Clauses {
		if _, seen := byKey[c.Key]; !seen {
			order = append(order, c.Key)
		}
		byKey[c.Key] = append(byKey[c.Key], escapeTag(c.Value))
	}

	parts := make([]string, 0, len(order))
	for _, key := range order {
		parts = append(parts, fmt.Sprintf("@%s:{%s}", key, strings.Join(byKey[key], "|")))
	}
	return strings.Join(parts, " ")
}

// searchQuery combines sanitised full-text terms with the filter tags.
func searchQuery(query string, filter domain.PredicateFilter) string {
	terms := sanitiseQueryText(query)
	tags := filterQuery(filter)

	switch {
	case terms == "" && tags == "*":
		return "*"
	case terms == "":
		return tags
	case tags == "*":
		return terms
	default:
		return fmt.Sprintf("(%s) %s", terms, tags)
	}
}

// sanitiseQueryText strips query-syntax characters from user text, keeping
// only word characters so the raw input can never break the search grammar.
func sanitiseQueryText(query string) string {
	var b strings.Builder
	lastSpace := true
	for _, r := range query {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastSpace = false
			continue
		}
		if !lastSpace {
			b.WriteRune(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}

// escapeTag escapes punctuation in TAG values. RediSearch treats any
// non-word character inside a tag group as syntax unless escaped.
func escapeTag(value string) string {
	var b strings.Builder
	for _, r := range value {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// searchHit is one parsed FT.SEARCH result entry.
type searchHit struct {
	key    string
	score  float64
	fields map[string]string
}

// parseSearchReply parses a flat FT.SEARCH array reply. The first element
// is the total count; entries follow as key [score] fields triples or
// pairs depending on WITHSCORES. Malformed entries are skipped.
func parseSearchReply(reply any, withScores bool) ([]searchHit, error) {
	values, ok := reply.([]interface{})
	if !ok {
		return nil, fmt.Errorf("unexpected reply type %T", reply)
	}
	if len(values) == 0 {
		return []searchHit{}, nil
	}

	stride := 2
	if withScores {
		stride = 3
	}

	hits := make([]searchHit, 0, (len(values)-1)/stride)
	for i := 1; i+stride-1 < len(values); i += stride {
		key, ok := values[i].(string)
		if !ok {
			continue
		}

		hit := searchHit{key: key}

		next := i + 1
		if withScores {
			raw, ok := values[next].(string)
			if !ok {
				continue
			}
			score, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				continue
			}
			hit.score = score
			next++
		}

		rawFields, ok := values[next].([]interface{})
		if !ok {
			continue
		}
		hit.fields = make(map[string]string, len(rawFields)/2)
		for j := 0; j+1 < len(rawFields); j += 2 {
			name, ok := rawFields[j].(string)
			if !ok {
				continue
			}
			if value, ok := rawFields[j+1].(string); ok {
				hit.fields[name] = value
			}
		}

		hits = append(hits, hit)
	}
	return hits, nil
}
