// Package connectors fetches files from remote sources for ingestion.
// Each connector turns a remote location into (name, content) pairs that
// feed the batch ingestion pipeline unchanged.
package connectors
