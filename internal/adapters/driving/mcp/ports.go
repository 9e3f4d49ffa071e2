package mcp

import (
	"github.com/sonarlabs/docingest/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Retrieval provides tenant-scoped retrieval over stored units.
	Retrieval driving.RetrievalService

	// Ingest accepts documents for ingestion and manages stored units.
	Ingest driving.IngestService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Retrieval == nil {
		return ErrMissingRetrievalService
	}
	// Ingest is optional; without it the ingestion tools report an error.
	return nil
}
