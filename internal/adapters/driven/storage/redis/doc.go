// Package redis provides a RediSearch-backed unit store that doubles as a
// retriever.
//
// Units are stored as hashes under the "unit:" prefix with tenant metadata
// denormalised into TAG fields, so scoped listing and retrieval filtering
// run inside the index rather than client-side. Relevance scoring comes
// from RediSearch full-text ranking over the unit text.
//
// The adapter requires a Redis server with the RediSearch module loaded.
package redis
