package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestTenantScope_Validate tests the all-or-nothing tenant triple rule
func TestTenantScope_Validate(t *testing.T) {
	tests := []struct {
		name    string
		scope   *TenantScope
		wantErr bool
	}{
		{
			name:    "nil scope is valid",
			scope:   nil,
			wantErr: false,
		},
		{
			name:    "empty scope is valid",
			scope:   &TenantScope{},
			wantErr: false,
		},
		{
			name: "full triple is valid",
			scope: &TenantScope{
				UserID:    "user-1",
				ProjectID: "proj-1",
				OrgID:     "org-1",
			},
			wantErr: false,
		},
		{
			name: "triple with file id is valid",
			scope: &TenantScope{
				UserID:    "user-1",
				ProjectID: "proj-1",
				OrgID:     "org-1",
				FileID:    "file-1",
			},
			wantErr: false,
		},
		{
			name:    "doc ids only is valid",
			scope:   &TenantScope{DocIDs: []string{"a", "b"}},
			wantErr: false,
		},
		{
			name:    "file id without triple is valid",
			scope:   &TenantScope{FileID: "file-1"},
			wantErr: false,
		},
		{
			name:    "user id alone is malformed",
			scope:   &TenantScope{UserID: "user-1"},
			wantErr: true,
		},
		{
			name: "user and project without org is malformed",
			scope: &TenantScope{
				UserID:    "user-1",
				ProjectID: "proj-1",
			},
			wantErr: true,
		},
		{
			name:    "org id alone is malformed",
			scope:   &TenantScope{OrgID: "org-1"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.scope.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrTenantScopeMalformed)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestTenantScope_IsTenantScoped tests triple detection
func TestTenantScope_IsTenantScoped(t *testing.T) {
	var nilScope *TenantScope
	assert.False(t, nilScope.IsTenantScoped())
	assert.False(t, (&TenantScope{}).IsTenantScoped())
	assert.False(t, (&TenantScope{UserID: "u"}).IsTenantScoped())
	assert.True(t, (&TenantScope{UserID: "u", ProjectID: "p", OrgID: "o"}).IsTenantScoped())
}

// TestTenantScope_IsZero tests unscoped detection
func TestTenantScope_IsZero(t *testing.T) {
	var nilScope *TenantScope
	assert.True(t, nilScope.IsZero())
	assert.True(t, (&TenantScope{}).IsZero())
	assert.False(t, (&TenantScope{DocIDs: []string{"a"}}).IsZero())
	assert.False(t, (&TenantScope{FileID: "f"}).IsZero())
}

// TestScopeFromTags tests dedup scope derivation
func TestScopeFromTags(t *testing.T) {
	tests := []struct {
		name     string
		tags     TenantTags
		expected *TenantScope
	}{
		{
			name:     "untenanted tags yield nil scope",
			tags:     TenantTags{FileName: "report.pdf"},
			expected: nil,
		},
		{
			name: "tenant triple carries over",
			tags: TenantTags{
				FileName:  "report.pdf",
				UserID:    "user-1",
				ProjectID: "proj-1",
				OrgID:     "org-1",
			},
			expected: &TenantScope{
				UserID:    "user-1",
				ProjectID: "proj-1",
				OrgID:     "org-1",
			},
		},
		{
			name: "file id carries over with triple",
			tags: TenantTags{
				FileName:  "report.pdf",
				FileID:    "file-1",
				UserID:    "user-1",
				ProjectID: "proj-1",
				OrgID:     "org-1",
			},
			expected: &TenantScope{
				UserID:    "user-1",
				ProjectID: "proj-1",
				OrgID:     "org-1",
				FileID:    "file-1",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ScopeFromTags(tt.tags))
		})
	}
}
