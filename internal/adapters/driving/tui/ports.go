// Package tui provides an interactive terminal user interface for docingest.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/sonarlabs/docingest/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Ingest accepts documents for ingestion and manages stored units.
	Ingest driving.IngestService

	// Retrieval provides tenant-scoped retrieval over stored units.
	Retrieval driving.RetrievalService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(ingest driving.IngestService, retrieval driving.RetrievalService) *Ports {
	return &Ports{
		Ingest:    ingest,
		Retrieval: retrieval,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Ingest == nil {
		return ErrMissingIngestService
	}
	if p.Retrieval == nil {
		return ErrMissingRetrievalService
	}
	return nil
}
