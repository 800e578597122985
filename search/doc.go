// Package search implements hybrid candidate search.
//
// A query is processed three ways before scoring: critical keywords are
// extracted for exact matching, the query is expanded into the same
// profile shape that documents are embedded in, and the expansion is
// embedded for vector search. Each candidate's final score blends the
// semantic similarity with the exact-keyword hit rate, plus a fixed bonus
// per matched keyword, clamped to [0, 100]. A candidate missing a hard
// keyword can still rank, but a full keyword match is hard to beat.
package search
