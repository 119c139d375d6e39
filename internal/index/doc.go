// Package index persists transcript records in SQLite with an FTS5
// full-text shadow for ranked search.
//
// The index is a derived, rebuildable cache over the storage tree: the
// filesystem stays authoritative and a full reindex reconstructs every row
// from disk. Rows are keyed by video ID with insert-or-replace semantics;
// the one atomicity guarantee is that a row and its full-text shadow are
// written in the same transaction.
//
// Schema changes are applied in place on every Open and are idempotent, so
// an old database file migrates forward without data loss.
package index
