package domain

// Operator is a predicate clause comparison operator.
type Operator string

// OpEqual is the default and currently only clause operator.
const OpEqual Operator = "eq"

// Clause is a single (key, operator, value) predicate.
type Clause struct {
	Key   string
	Op    Operator
	Value string
}

// PredicateFilter is an ordered, conjunctive list of clauses built from a
// TenantScope. Clauses on distinct keys conjoin; clauses sharing a key are
// alternatives within that key, so an id-scoped filter with several doc_id
// clauses matches any one of those ids.
type PredicateFilter struct {
	Clauses []Clause
}

// IsEmpty reports whether the filter restricts nothing.
func (f PredicateFilter) IsEmpty() bool {
	return len(f.Clauses) == 0
}

// BuildFilter constructs a PredicateFilter from an optional scope.
// A nil or unrestricting scope yields the empty filter, which callers must
// treat as "no restriction", never as "matches nothing".
//
// Clause order: one doc_id clause per explicit id, then org_id, user_id
// and project_id when the scope is tenant-scoped, then file_id when
// additionally present. No clause is ever emitted for an absent field;
// partial tenant identity must be rejected via Validate before this runs.
func BuildFilter(scope *TenantScope) PredicateFilter {
	var filter PredicateFilter
	if scope == nil {
		return filter
	}

	for _, id := range scope.DocIDs {
		filter.Clauses = append(filter.Clauses, Clause{Key: MetaDocID, Op: OpEqual, Value: id})
	}

	if scope.IsTenantScoped() {
		filter.Clauses = append(filter.Clauses,
			Clause{Key: MetaOrgID, Op: OpEqual, Value: scope.OrgID},
			Clause{Key: MetaUserID, Op: OpEqual, Value: scope.UserID},
			Clause{Key: MetaProjectID, Op: OpEqual, Value: scope.ProjectID},
		)
		if scope.FileID != "" {
			filter.Clauses = append(filter.Clauses, Clause{Key: MetaFileID, Op: OpEqual, Value: scope.FileID})
		}
	}

	return filter
}

// Matches evaluates the filter against a unit's metadata.
// Distinct keys conjoin; clauses sharing a key match if any one value
// matches. The unit's id is matched through its doc_id metadata tag.
func (f PredicateFilter) Matches(metadata map[string]string) bool {
	if f.IsEmpty() {
		return true
	}

	byKey := make(map[string][]Clause)
	order := make([]string, 0, len(f.Clauses))
	for _, c := range f.Clauses {
		if _, seen := byKey[c.Key]; !seen {
			order = append(order, c.Key)
		}
		byKey[c.Key] = append(byKey[c.Key], c)
	}

	for _, key := range order {
		value, ok := metadata[key]
		if !ok {
			return false
		}
		if !anyClauseMatches(byKey[key], value) {
			return false
		}
	}
	return true
}

func anyClauseMatches(clauses []Clause, value string) bool {
	for _, c := range clauses {
		if c.Op == OpEqual && c.Value == value {
			return true
		}
	}
	return false
}
