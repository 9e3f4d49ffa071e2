// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - ReaderRegistry: Maps file extensions to parsing strategies
//   - UnitStore: Text unit persistence
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - PagedReader: PDF page access. Without it, PDFs fall back to raw text.
//   - OCRService: Text recognition. Without it, low-coverage pages fail.
//   - Retriever: Vector index queries. Without it, retrieval is disabled.
//   - CommandRunner: External tool execution for the poppler adapter.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or reader package
package driven
