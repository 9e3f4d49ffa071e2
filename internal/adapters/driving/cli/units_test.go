package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonarlabs/docingest/internal/core/domain"
)

// mockIngestServiceEmpty lists no units.
type mockIngestServiceEmpty struct {
	mockIngestService
}

func (m *mockIngestServiceEmpty) ListUnits(_ context.Context, _ *domain.TenantScope) ([]domain.UnitSummary, error) {
	return nil, nil
}

func TestUnitsCmd_Use(t *testing.T) {
	assert.Equal(t, "units", unitsCmd.Use)
}

func TestUnitsCmd_Short(t *testing.T) {
	assert.Equal(t, "Manage stored text units", unitsCmd.Short)
}

func TestUnitsListCmd_HasScopeFlags(t *testing.T) {
	for _, name := range []string{"user", "project", "org", "file-id"} {
		flag := unitsListCmd.Flags().Lookup(name)
		require.NotNil(t, flag, "%s flag should exist", name)
	}
}

func TestUnitsListCmd_Executes(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"units", "list"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "unit-1")
	assert.Contains(t, buf.String(), "File: report.pdf")
	assert.Contains(t, buf.String(), "Title: Quarterly Report")
	assert.Contains(t, buf.String(), "Total: 2 unit(s)")
}

func TestUnitsListCmd_Empty(t *testing.T) {
	oldService := ingestService
	ingestService = &mockIngestServiceEmpty{}
	defer func() {
		ingestService = oldService
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"units", "list"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "No units stored.")
}

func TestUnitsListCmd_ServiceNotConfigured(t *testing.T) {
	oldService := ingestService
	ingestService = nil
	defer func() {
		ingestService = oldService
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"units", "list"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ingest service not configured")
}

func TestUnitsDeleteCmd_Executes(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"units", "delete", "unit-1"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Deleted unit unit-1.")
}

func TestUnitsDeleteCmd_RequiresArg(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"units", "delete"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestUnitsDeleteCmd_ServiceError(t *testing.T) {
	oldService := ingestService
	ingestService = &mockIngestServiceError{}
	defer func() {
		ingestService = oldService
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"units", "delete", "unit-1"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to delete unit")
}

func TestScopeFromListFlags_EmptyIsNil(t *testing.T) {
	assert.Nil(t, scopeFromListFlags())
}

func TestScopeFromListFlags_BuildsScope(t *testing.T) {
	listUserID = "u1"
	listProjectID = "p1"
	listOrgID = "o1"
	defer func() {
		listUserID, listProjectID, listOrgID = "", "", ""
	}()

	scope := scopeFromListFlags()

	require.NotNil(t, scope)
	assert.Equal(t, "u1", scope.UserID)
	assert.Equal(t, "p1", scope.ProjectID)
	assert.Equal(t, "o1", scope.OrgID)
}
