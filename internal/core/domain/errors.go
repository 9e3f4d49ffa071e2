package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// Ingestion Errors.

	// ErrUnsupportedInput indicates no reader resolves for a file and its
	// raw bytes are not decodable as text.
	ErrUnsupportedInput = errors.New("unsupported input")

	// ErrInvalidPageGeometry indicates a page with zero or negative area.
	// Classification cannot proceed without valid bounds.
	ErrInvalidPageGeometry = errors.New("invalid page geometry")

	// ErrOCRProvider indicates the OCR provider failed or reported an error.
	// The provider's message is preserved in the wrapping error.
	ErrOCRProvider = errors.New("ocr provider error")

	// ErrTenantScopeMalformed indicates a partially specified tenant identity.
	// The user, project and org fields are all-or-nothing.
	ErrTenantScopeMalformed = errors.New("tenant scope malformed")

	// Availability Errors.

	// ErrStoreUnavailable indicates the unit store is not configured.
	// Ingestion, listing and deletion are disabled without it.
	ErrStoreUnavailable = errors.New("unit store unavailable")

	// ErrRetrieverUnavailable indicates the retriever is not configured.
	// Tenant-scoped retrieval is disabled without it.
	ErrRetrieverUnavailable = errors.New("retriever unavailable")

	// ErrOCRUnavailable indicates no OCR service is configured.
	// Low-coverage PDF pages cannot be ingested without one.
	ErrOCRUnavailable = errors.New("ocr service unavailable")

	// ErrRateLimited indicates an external API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
