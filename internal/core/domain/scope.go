package domain

// TenantScope is an optional, partially specified filter over stored units.
// A scope is tenant-scoped (user, project and org all present, optionally
// narrowed by file), id-scoped (only DocIDs set), or unscoped (zero value).
type TenantScope struct {
	// DocIDs restricts matching to an explicit set of unit identifiers.
	DocIDs []string

	// UserID, ProjectID and OrgID identify the owning tenant.
	// They are all-or-nothing; a partial triple is malformed.
	UserID    string
	ProjectID string
	OrgID     string

	// FileID narrows a tenant-scoped filter to a single source file.
	// Without the tenant triple it is legal but contributes no clause.
	FileID string
}

// Validate rejects partially specified tenant identity.
// A nil scope is valid and means no restriction.
func (s *TenantScope) Validate() error {
	if s == nil {
		return nil
	}
	present := 0
	if s.UserID != "" {
		present++
	}
	if s.ProjectID != "" {
		present++
	}
	if s.OrgID != "" {
		present++
	}
	if present != 0 && present != 3 {
		return ErrTenantScopeMalformed
	}
	return nil
}

// IsTenantScoped reports whether the full tenant triple is present.
func (s *TenantScope) IsTenantScoped() bool {
	if s == nil {
		return false
	}
	return s.UserID != "" && s.ProjectID != "" && s.OrgID != ""
}

// IsZero reports whether the scope restricts nothing.
func (s *TenantScope) IsZero() bool {
	if s == nil {
		return true
	}
	return len(s.DocIDs) == 0 && s.UserID == "" && s.ProjectID == "" &&
		s.OrgID == "" && s.FileID == ""
}

// ScopeFromTags derives the dedup scope for a file's tenant tags.
// Only the tenant triple and file id carry over; the file name is matched
// separately by the orchestrator. Returns nil when the tags carry no
// tenant identity, which means the dedup scan is unrestricted.
func ScopeFromTags(tags TenantTags) *TenantScope {
	scope := &TenantScope{
		UserID:    tags.UserID,
		ProjectID: tags.ProjectID,
		OrgID:     tags.OrgID,
		FileID:    tags.FileID,
	}
	if scope.IsZero() {
		return nil
	}
	return scope
}
