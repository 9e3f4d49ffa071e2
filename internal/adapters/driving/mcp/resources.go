package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sonarlabs/docingest/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for docingest resources.
	uriScheme = "docingest://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing stored units.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "units",
		Name:        "units",
		Description: "List of all stored text units",
		MIMEType:    "application/json",
	}, s.handleUnitsResource)

	// Template for unit content.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "units/{unitId}",
		Name:        "unit-content",
		Description: "Text of a specific stored unit",
		MIMEType:    "text/plain",
	}, s.handleUnitContentResource)
}

// handleUnitsResource returns a list of all stored units.
func (s *Server) handleUnitsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Ingest == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	summaries, err := s.ports.Ingest.ListUnits(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("listing units: %w", err)
	}

	// Build simplified unit list.
	type unitInfo struct {
		ID       string `json:"id"`
		FileName string `json:"file_name"`
		Page     string `json:"page,omitempty"`
		Title    string `json:"title,omitempty"`
	}

	infos := make([]unitInfo, len(summaries))
	for i := range summaries {
		infos[i] = unitInfo{
			ID:       summaries[i].ID,
			FileName: summaries[i].Metadata[domain.MetaFileName],
			Page:     summaries[i].Metadata[domain.MetaPageLabel],
			Title:    summaries[i].Metadata[domain.MetaTitle],
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling units: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleUnitContentResource returns the text of a specific unit.
func (s *Server) handleUnitContentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Ingest == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract unitId from URI: docingest://units/{unitId}
	unitID := extractUnitID(req.Params.URI)
	if unitID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	unit, err := s.ports.Ingest.GetUnit(ctx, unitID)
	if err != nil {
		return nil, fmt.Errorf("getting unit: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     unit.Text,
		}},
	}, nil
}

// extractUnitID extracts the unit ID from a URI like docingest://units/{unitId}.
func extractUnitID(uri string) string {
	const prefix = uriScheme + "units/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
