package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	errors := []error{
		ErrMissingIngestService,
		ErrMissingRetrievalService,
		ErrInvalidPorts,
	}

	// Ensure all errors are unique
	seen := make(map[string]bool)
	for _, err := range errors {
		msg := err.Error()
		assert.False(t, seen[msg], "duplicate error message: %s", msg)
		seen[msg] = true
	}
}

func TestErrMissingIngestService_Message(t *testing.T) {
	assert.Contains(t, ErrMissingIngestService.Error(), "ingest service")
}

func TestErrMissingRetrievalService_Message(t *testing.T) {
	assert.Contains(t, ErrMissingRetrievalService.Error(), "retrieval service")
}

func TestErrInvalidPorts_Message(t *testing.T) {
	assert.Contains(t, ErrInvalidPorts.Error(), "invalid ports")
}
