// Package readers provides implementations of the ReaderStrategy interface
// for various file types. Each reader knows how to extract text from a
// specific set of file extensions.
//
// Readers are collected into a Registry at startup; the registry is
// immutable afterwards and injected into the ingestion transformer.
package readers
