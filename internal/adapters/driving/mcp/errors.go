// Package mcp provides an MCP (Model Context Protocol) server adapter for docingest.
// It enables AI assistants like Claude to ingest documents and retrieve stored units.
package mcp

import "errors"

// ErrMissingRetrievalService is returned when the retrieval service is not provided.
var ErrMissingRetrievalService = errors.New("mcp: retrieval service is required")

// ErrMissingIngestService is returned when a write tool is invoked without an ingest service.
var ErrMissingIngestService = errors.New("mcp: ingest service is not configured")
