// Package qdrant provides a retriever backed by a Qdrant collection.
//
// The adapter is a minimal REST client; no SDK is used. Queries go through
// the universal query endpoint with server-side text inference, so embedding
// generation stays inside the backing index. Points are expected to carry
// the unit text under the "text" payload key and metadata tags as flat
// string values.
//
// This is the one retriever that accepts an id list natively: an explicit
// doc-id scope becomes a single any-of payload condition instead of a
// client-built predicate filter.
package qdrant
