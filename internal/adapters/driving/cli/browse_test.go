package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowseCmd_Use(t *testing.T) {
	assert.Equal(t, "browse", browseCmd.Use)
}

func TestBrowseCmd_Short(t *testing.T) {
	assert.Equal(t, "Launch the interactive terminal UI", browseCmd.Short)
}

func TestBrowseCmd_Long(t *testing.T) {
	assert.Contains(t, browseCmd.Long, "Browse stored units")
	assert.Contains(t, browseCmd.Long, "Quit")
}

func TestBrowseCmd_IsRegistered(t *testing.T) {
	found := false
	for _, sub := range rootCmd.Commands() {
		if sub.Use == "browse" {
			found = true
		}
	}
	assert.True(t, found, "browse should be registered on the root command")
}

func TestBrowseCmd_HasScopeFlags(t *testing.T) {
	for _, name := range []string{"user", "project", "org"} {
		assert.NotNil(t, browseCmd.Flags().Lookup(name), "missing flag %q", name)
	}
}

func TestScopeFromBrowseFlags_EmptyIsNil(t *testing.T) {
	assert.Nil(t, scopeFromBrowseFlags())
}

func TestScopeFromBrowseFlags_TenantTriple(t *testing.T) {
	browseUserID = "u1"
	browseProjectID = "p1"
	browseOrgID = "o1"
	defer func() {
		browseUserID = ""
		browseProjectID = ""
		browseOrgID = ""
	}()

	scope := scopeFromBrowseFlags()

	require.NotNil(t, scope)
	assert.True(t, scope.IsTenantScoped())
	assert.Equal(t, "u1", scope.UserID)
	assert.Equal(t, "p1", scope.ProjectID)
	assert.Equal(t, "o1", scope.OrgID)
}

func TestScopeFromBrowseFlags_PartialTripleFailsValidation(t *testing.T) {
	browseUserID = "u1"
	defer func() {
		browseUserID = ""
	}()

	scope := scopeFromBrowseFlags()

	require.NotNil(t, scope)
	assert.Error(t, scope.Validate())
}
