// Package watch keeps a directory tree and the unit store in step.
//
// Watcher turns raw filesystem notifications into debounced file
// changes: one change per save burst, directories and hidden paths
// filtered out, new subdirectories picked up as they appear. Service
// consumes those changes and drives the ingestion pipeline, so a
// created or modified file is (re)ingested under its path relative to
// the watch root and a removed file's units are deleted. Per-file
// failures are logged and never stop the watch.
package watch
