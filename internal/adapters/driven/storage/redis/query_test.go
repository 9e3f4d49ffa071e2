package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonarlabs/docingest/internal/core/domain"
)

func TestFilterQuery(t *testing.T) {
	tests := []struct {
		name   string
		scope  *domain.TenantScope
		expect string
	}{
		{
			name:   "nil scope matches everything",
			scope:  nil,
			expect: "*",
		},
		{
			name: "tenant triple",
			scope: &domain.TenantScope{
				OrgID:     "org1",
				UserID:    "user1",
				ProjectID: "proj1",
			},
			expect: "@org_id:{org1} @user_id:{user1} @project_id:{proj1}",
		},
		{
			name: "tenant triple with file",
			scope: &domain.TenantScope{
				OrgID:     "org1",
				UserID:    "user1",
				ProjectID: "proj1",
				FileID:    "file9",
			},
			expect: "@org_id:{org1} @user_id:{user1} @project_id:{proj1} @file_id:{file9}",
		},
		{
			name:   "doc ids become one alternative group",
			scope:  &domain.TenantScope{DocIDs: []string{"a", "b", "c"}},
			expect: "@doc_id:{a|b|c}",
		},
		{
			name:   "punctuation in values is escaped",
			scope:  &domain.TenantScope{DocIDs: []string{"unit-1.pdf"}},
			expect: `@doc_id:{unit\-1\.pdf}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filterQuery(domain.BuildFilter(tt.scope))
			assert.Equal(t, tt.expect, got)
		})
	}
}

func TestSearchQuery(t *testing.T) {
	filter := domain.BuildFilter(&domain.TenantScope{
		OrgID:     "org1",
		UserID:    "user1",
		ProjectID: "proj1",
	})

	tests := []struct {
		name   string
		query  string
		filter domain.PredicateFilter
		expect string
	}{
		{
			name:   "terms and tags",
			query:  "quarterly revenue",
			filter: filter,
			expect: "(quarterly revenue) @org_id:{org1} @user_id:{user1} @project_id:{proj1}",
		},
		{
			name:   "terms only",
			query:  "quarterly revenue",
			expect: "quarterly revenue",
		},
		{
			name:   "tags only",
			filter: filter,
			expect: "@org_id:{org1} @user_id:{user1} @project_id:{proj1}",
		},
		{
			name:   "nothing",
			expect: "*",
		},
		{
			name:   "syntax characters are stripped from terms",
			query:  `@doc_id:{*} "revenue" | (growth)`,
			expect: "doc id revenue growth",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := searchQuery(tt.query, tt.filter)
			assert.Equal(t, tt.expect, got)
		})
	}
}

func TestEscapeTag(t *testing.T) {
	tests := []struct {
		input  string
		expect string
	}{
		{"plain", "plain"},
		{"with_underscore", "with_underscore"},
		{"org-1", `org\-1`},
		{"a.b,c", `a\.b\,c`},
		{"brace{d}", `brace\{d\}`},
		{"two words", `two\ words`},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expect, escapeTag(tt.input), "input %q", tt.input)
	}
}

func TestParseSearchReply_WithScores(t *testing.T) {
	reply := []interface{}{
		int64(2),
		"unit:u-1", "1.5", []interface{}{"text", "first", "metadata", `{"file_name":"a.txt"}`},
		"unit:u-2", "0.75", []interface{}{"text", "second"},
	}

	hits, err := parseSearchReply(reply, true)
	require.NoError(t, err)
	require.Len(t, hits, 2)

	assert.Equal(t, "unit:u-1", hits[0].key)
	assert.Equal(t, 1.5, hits[0].score)
	assert.Equal(t, "first", hits[0].fields["text"])

	assert.Equal(t, "unit:u-2", hits[1].key)
	assert.Equal(t, 0.75, hits[1].score)
}

func TestParseSearchReply_WithoutScores(t *testing.T) {
	reply := []interface{}{
		int64(1),
		"unit:u-1", []interface{}{"metadata", `{"org_id":"org-1"}`},
	}

	hits, err := parseSearchReply(reply, false)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "unit:u-1", hits[0].key)
	assert.Zero(t, hits[0].score)
	assert.Equal(t, `{"org_id":"org-1"}`, hits[0].fields["metadata"])
}

func TestParseSearchReply_Empty(t *testing.T) {
	hits, err := parseSearchReply([]interface{}{int64(0)}, false)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestParseSearchReply_UnexpectedType(t *testing.T) {
	_, err := parseSearchReply("not a slice", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected reply type")
}

func TestParseSearchReply_SkipsMalformedEntries(t *testing.T) {
	reply := []interface{}{
		int64(2),
		int64(42), []interface{}{},
		"unit:good", []interface{}{"text", "kept"},
	}

	hits, err := parseSearchReply(reply, false)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "unit:good", hits[0].key)
}

func TestHashToUnit(t *testing.T) {
	fields := map[string]string{
		fieldText:               "unit text",
		fieldMetadata:           `{"file_name":"a.txt","doc_id":"u-1"}`,
		fieldEmbedExcluded:      `["doc_id"]`,
		fieldGenerationExcluded: `["doc_id","file_id","org_id"]`,
	}

	unit, err := hashToUnit("u-1", fields)
	require.NoError(t, err)
	assert.Equal(t, "u-1", unit.ID)
	assert.Equal(t, "unit text", unit.Text)
	assert.Equal(t, "a.txt", unit.Metadata[domain.MetaFileName])
	assert.Equal(t, []string{domain.MetaDocID}, unit.EmbedExcluded)
	assert.Len(t, unit.GenerationExcluded, 3)
}

func TestHashToUnit_MissingFields(t *testing.T) {
	unit, err := hashToUnit("u-1", map[string]string{fieldText: "bare"})
	require.NoError(t, err)
	assert.Equal(t, "bare", unit.Text)
	assert.Nil(t, unit.Metadata)
	assert.Nil(t, unit.EmbedExcluded)
}

func TestHashToUnit_BadJSON(t *testing.T) {
	_, err := hashToUnit("u-1", map[string]string{fieldMetadata: "{broken"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshalling metadata")
}

func TestUnitID(t *testing.T) {
	assert.Equal(t, "u-1", unitID("unit:u-1"))
	assert.Equal(t, "plain", unitID("plain"))
}
