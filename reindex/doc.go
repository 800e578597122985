// Package reindex rebuilds vector index entries from stored profiles.
//
// Documents whose indexing was deferred by a transient embedding failure
// carry an index-pending flag; Run with pendingOnly clears that backlog.
// A full run re-embeds every profiled document, which is the procedure
// after changing the embedding model or dimension.
package reindex
