package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sonarlabs/docingest/internal/core/domain"
)

// RetrieveInput is the input schema for the retrieve tool.
type RetrieveInput struct {
	Query     string   `json:"query" jsonschema:"the query to match against stored units"`
	Limit     int      `json:"limit,omitempty" jsonschema:"maximum number of units to return (default 10)"`
	UserID    string   `json:"user_id,omitempty" jsonschema:"tenant user id (requires project_id and org_id)"`
	ProjectID string   `json:"project_id,omitempty" jsonschema:"tenant project id (requires user_id and org_id)"`
	OrgID     string   `json:"org_id,omitempty" jsonschema:"tenant organisation id (requires user_id and project_id)"`
	FileID    string   `json:"file_id,omitempty" jsonschema:"restrict to a single source file id"`
	DocIDs    []string `json:"doc_ids,omitempty" jsonschema:"restrict to explicit unit ids"`
}

// RetrieveOutput is the output schema for the retrieve tool.
type RetrieveOutput struct {
	Results []RetrievedUnitOutput `json:"results"`
	Count   int                   `json:"count"`
}

// RetrievedUnitOutput represents a single retrieved unit.
type RetrievedUnitOutput struct {
	UnitID    string  `json:"unit_id"`
	FileName  string  `json:"file_name"`
	PageLabel string  `json:"page_label,omitempty"`
	Title     string  `json:"title,omitempty"`
	Score     float64 `json:"score"`
	Text      string  `json:"text"`
}

// IngestTextInput is the input schema for the ingest_text tool.
type IngestTextInput struct {
	FileName  string `json:"file_name" jsonschema:"name to store the text under, including extension"`
	Text      string `json:"text" jsonschema:"the document text to ingest"`
	UserID    string `json:"user_id,omitempty" jsonschema:"tenant user id (requires project_id and org_id)"`
	ProjectID string `json:"project_id,omitempty" jsonschema:"tenant project id (requires user_id and org_id)"`
	OrgID     string `json:"org_id,omitempty" jsonschema:"tenant organisation id (requires user_id and project_id)"`
	FileID    string `json:"file_id,omitempty" jsonschema:"stable file id tag"`
}

// IngestTextOutput is the output schema for the ingest_text tool.
type IngestTextOutput struct {
	UnitIDs []string `json:"unit_ids"`
	Count   int      `json:"count"`
}

// BatchFileInput is one file within an ingest_batch call.
type BatchFileInput struct {
	FileName string `json:"file_name" jsonschema:"name to store the text under, including extension"`
	Text     string `json:"text" jsonschema:"the document text to ingest"`
}

// IngestBatchInput is the input schema for the ingest_batch tool.
type IngestBatchInput struct {
	Files     []BatchFileInput `json:"files" jsonschema:"the documents to ingest"`
	UserID    string           `json:"user_id,omitempty" jsonschema:"tenant user id applied to every file (requires project_id and org_id)"`
	ProjectID string           `json:"project_id,omitempty" jsonschema:"tenant project id applied to every file (requires user_id and org_id)"`
	OrgID     string           `json:"org_id,omitempty" jsonschema:"tenant organisation id applied to every file (requires user_id and project_id)"`
}

// IngestBatchOutput is the output schema for the ingest_batch tool.
type IngestBatchOutput struct {
	UnitIDs []string           `json:"unit_ids"`
	Count   int                `json:"count"`
	Failed  []FailedFileOutput `json:"failed,omitempty"`
}

// FailedFileOutput reports one file that could not be ingested.
type FailedFileOutput struct {
	FileName string `json:"file_name"`
	Error    string `json:"error"`
}

// ListUnitsInput is the input schema for the list_units tool.
type ListUnitsInput struct {
	UserID    string `json:"user_id,omitempty" jsonschema:"tenant user id (requires project_id and org_id)"`
	ProjectID string `json:"project_id,omitempty" jsonschema:"tenant project id (requires user_id and org_id)"`
	OrgID     string `json:"org_id,omitempty" jsonschema:"tenant organisation id (requires user_id and project_id)"`
	FileID    string `json:"file_id,omitempty" jsonschema:"restrict to a single source file id"`
}

// ListUnitsOutput is the output schema for the list_units tool.
type ListUnitsOutput struct {
	Units []UnitSummaryOutput `json:"units"`
	Count int                 `json:"count"`
}

// UnitSummaryOutput represents a stored unit without its text payload.
type UnitSummaryOutput struct {
	UnitID    string `json:"unit_id"`
	FileName  string `json:"file_name"`
	PageLabel string `json:"page_label,omitempty"`
	Title     string `json:"title,omitempty"`
}

// DeleteUnitInput is the input schema for the delete_unit tool.
type DeleteUnitInput struct {
	UnitID string `json:"unit_id" jsonschema:"id of the unit to delete"`
}

// DeleteUnitOutput is the output schema for the delete_unit tool.
type DeleteUnitOutput struct {
	UnitID string `json:"unit_id"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "retrieve",
		Description: "Retrieve stored text units relevant to a query, optionally restricted to a tenant scope",
	}, s.handleRetrieve)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingest_text",
		Description: "Ingest a text document, superseding stored units with the same file name",
	}, s.handleIngestText)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingest_batch",
		Description: "Ingest several text documents in one call; files fail independently",
	}, s.handleIngestBatch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_units",
		Description: "List stored text units, optionally restricted to a tenant scope",
	}, s.handleListUnits)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_unit",
		Description: "Delete one stored text unit by id",
	}, s.handleDeleteUnit)
}

// handleRetrieve handles the retrieve tool invocation.
func (s *Server) handleRetrieve(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RetrieveInput,
) (*mcp.CallToolResult, RetrieveOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	scope := scopeFrom(input.UserID, input.ProjectID, input.OrgID, input.FileID, input.DocIDs)
	results, err := s.ports.Retrieval.Retrieve(ctx, input.Query, scope, limit)
	if err != nil {
		return nil, RetrieveOutput{}, err
	}

	output := RetrieveOutput{
		Results: make([]RetrievedUnitOutput, len(results)),
		Count:   len(results),
	}

	for i := range results {
		unit := results[i].Unit
		output.Results[i] = RetrievedUnitOutput{
			UnitID:    unit.ID,
			FileName:  unit.Metadata[domain.MetaFileName],
			PageLabel: unit.Metadata[domain.MetaPageLabel],
			Title:     unit.Metadata[domain.MetaTitle],
			Score:     results[i].Score,
			Text:      unit.Text,
		}
	}

	return nil, output, nil
}

// handleIngestText handles the ingest_text tool invocation.
func (s *Server) handleIngestText(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestTextInput,
) (*mcp.CallToolResult, IngestTextOutput, error) {
	if s.ports.Ingest == nil {
		return nil, IngestTextOutput{}, ErrMissingIngestService
	}

	tags := domain.TenantTags{
		FileName:  input.FileName,
		FileID:    input.FileID,
		UserID:    input.UserID,
		ProjectID: input.ProjectID,
		OrgID:     input.OrgID,
	}

	units, err := s.ports.Ingest.IngestText(ctx, input.FileName, input.Text, tags)
	if err != nil {
		return nil, IngestTextOutput{}, err
	}

	output := IngestTextOutput{
		UnitIDs: make([]string, len(units)),
		Count:   len(units),
	}
	for i := range units {
		output.UnitIDs[i] = units[i].ID
	}

	return nil, output, nil
}

// handleIngestBatch handles the ingest_batch tool invocation.
func (s *Server) handleIngestBatch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestBatchInput,
) (*mcp.CallToolResult, IngestBatchOutput, error) {
	if s.ports.Ingest == nil {
		return nil, IngestBatchOutput{}, ErrMissingIngestService
	}

	inputs := make([]domain.IngestInput, len(input.Files))
	for i, file := range input.Files {
		inputs[i] = domain.IngestInput{
			FileName: file.FileName,
			Content:  []byte(file.Text),
			Tags: domain.TenantTags{
				FileName:  file.FileName,
				UserID:    input.UserID,
				ProjectID: input.ProjectID,
				OrgID:     input.OrgID,
			},
		}
	}

	result, err := s.ports.Ingest.IngestFiles(ctx, inputs)
	if err != nil {
		return nil, IngestBatchOutput{}, err
	}

	output := IngestBatchOutput{
		UnitIDs: make([]string, len(result.Units)),
		Count:   len(result.Units),
	}
	for i := range result.Units {
		output.UnitIDs[i] = result.Units[i].ID
	}
	for _, failure := range result.Failed {
		output.Failed = append(output.Failed, FailedFileOutput{
			FileName: failure.FileName,
			Error:    failure.Err.Error(),
		})
	}

	return nil, output, nil
}

// handleListUnits handles the list_units tool invocation.
func (s *Server) handleListUnits(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListUnitsInput,
) (*mcp.CallToolResult, ListUnitsOutput, error) {
	if s.ports.Ingest == nil {
		return nil, ListUnitsOutput{}, ErrMissingIngestService
	}

	scope := scopeFrom(input.UserID, input.ProjectID, input.OrgID, input.FileID, nil)
	summaries, err := s.ports.Ingest.ListUnits(ctx, scope)
	if err != nil {
		return nil, ListUnitsOutput{}, err
	}

	output := ListUnitsOutput{
		Units: make([]UnitSummaryOutput, len(summaries)),
		Count: len(summaries),
	}
	for i := range summaries {
		output.Units[i] = UnitSummaryOutput{
			UnitID:    summaries[i].ID,
			FileName:  summaries[i].Metadata[domain.MetaFileName],
			PageLabel: summaries[i].Metadata[domain.MetaPageLabel],
			Title:     summaries[i].Metadata[domain.MetaTitle],
		}
	}

	return nil, output, nil
}

// handleDeleteUnit handles the delete_unit tool invocation.
func (s *Server) handleDeleteUnit(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DeleteUnitInput,
) (*mcp.CallToolResult, DeleteUnitOutput, error) {
	if s.ports.Ingest == nil {
		return nil, DeleteUnitOutput{}, ErrMissingIngestService
	}

	if err := s.ports.Ingest.DeleteUnit(ctx, input.UnitID); err != nil {
		return nil, DeleteUnitOutput{}, err
	}

	return nil, DeleteUnitOutput{UnitID: input.UnitID}, nil
}

// scopeFrom builds a tenant scope from tool input fields.
// Returns nil when every field is empty, meaning no restriction.
func scopeFrom(userID, projectID, orgID, fileID string, docIDs []string) *domain.TenantScope {
	scope := &domain.TenantScope{
		DocIDs:    docIDs,
		UserID:    userID,
		ProjectID: projectID,
		OrgID:     orgID,
		FileID:    fileID,
	}
	if scope.IsZero() {
		return nil
	}
	return scope
}
