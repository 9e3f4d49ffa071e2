package domain

import "github.com/google/uuid"

// Well-known metadata keys attached to every TextUnit during ingestion.
const (
	MetaFileName  = "file_name"
	MetaFileID    = "file_id"
	MetaProjectID = "project_id"
	MetaUserID    = "user_id"
	MetaOrgID     = "org_id"
	MetaPageLabel = "page_label"
	MetaDocID     = "doc_id"
	MetaTitle     = "title"
)

// TextUnit is the atomic retrievable artifact produced by ingestion.
// One unit holds one PDF page's text, one OCR result, or one plain-text blob.
type TextUnit struct {
	// ID is the unique identifier, assigned once at creation.
	ID string

	// Text is the unit's content. Empty string is a tagged-empty unit,
	// never a missing one.
	Text string

	// Metadata contains the tenant and addressing tags for this unit.
	Metadata map[string]string

	// EmbedExcluded lists metadata keys hidden from the embedding step.
	EmbedExcluded []string

	// GenerationExcluded lists metadata keys hidden from generation context.
	GenerationExcluded []string
}

// UnitSummary is the listing shape for stored units: identity and tags,
// without the text payload.
type UnitSummary struct {
	// ID is the unit's identifier.
	ID string

	// Metadata contains the unit's tags.
	Metadata map[string]string
}

// RetrievedUnit is a unit returned by a retriever query with its score.
type RetrievedUnit struct {
	// Unit is the retrieved text unit.
	Unit TextUnit

	// Score is the retriever's relevance score.
	Score float64
}

// TenantTags is the ownership tag set a caller supplies with each ingestion.
// FileName is always required; the remaining fields are optional but the
// user/project/org triple must be supplied together when tenancy matters.
type TenantTags struct {
	FileName  string
	FileID    string
	ProjectID string
	UserID    string
	OrgID     string
}

// NewTextUnit creates a unit with a fresh identifier and the given text.
func NewTextUnit(text string) *TextUnit {
	return &TextUnit{
		ID:       uuid.New().String(),
		Text:     text,
		Metadata: make(map[string]string),
	}
}

// ApplyTags attaches the tenant tags to the unit's metadata.
// The file name is always set; optional fields are set only when present.
func (u *TextUnit) ApplyTags(tags TenantTags) {
	if u.Metadata == nil {
		u.Metadata = make(map[string]string)
	}
	u.Metadata[MetaFileName] = tags.FileName
	if tags.FileID != "" {
		u.Metadata[MetaFileID] = tags.FileID
	}
	if tags.ProjectID != "" {
		u.Metadata[MetaProjectID] = tags.ProjectID
	}
	if tags.UserID != "" {
		u.Metadata[MetaUserID] = tags.UserID
	}
	if tags.OrgID != "" {
		u.Metadata[MetaOrgID] = tags.OrgID
	}
}

// Finalise sets the doc_id alias and computes the visibility exclusion
// sets. Called exactly once, after tagging, before the unit leaves the
// transformer. Exclusions are fixed here and never recomputed downstream.
func (u *TextUnit) Finalise() {
	if u.Metadata == nil {
		u.Metadata = make(map[string]string)
	}
	u.Metadata[MetaDocID] = u.ID
	u.EmbedExcluded = []string{MetaDocID}
	u.GenerationExcluded = []string{MetaDocID, MetaFileID, MetaOrgID}
}

// EmbedVisibleMetadata returns the metadata subset exposed to embedding.
func (u *TextUnit) EmbedVisibleMetadata() map[string]string {
	return visibleMetadata(u.Metadata, u.EmbedExcluded)
}

// GenerationVisibleMetadata returns the metadata subset exposed to
// generation context.
func (u *TextUnit) GenerationVisibleMetadata() map[string]string {
	return visibleMetadata(u.Metadata, u.GenerationExcluded)
}

// Summary returns the unit's listing shape.
func (u *TextUnit) Summary() UnitSummary {
	meta := make(map[string]string, len(u.Metadata))
	for k, v := range u.Metadata {
		meta[k] = v
	}
	return UnitSummary{ID: u.ID, Metadata: meta}
}

func visibleMetadata(metadata map[string]string, excluded []string) map[string]string {
	visible := make(map[string]string, len(metadata))
	for k, v := range metadata {
		if !containsKey(excluded, k) {
			visible[k] = v
		}
	}
	return visible
}

func containsKey(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
