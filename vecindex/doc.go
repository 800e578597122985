// Package vecindex implements the in-process vector index used for
// semantic retrieval.
//
// The index is a flat store: every search scans all vectors and ranks them
// by squared L2 distance. At the scale this system targets (thousands of
// documents, not millions) a scan is faster and simpler than an
// approximate structure, and it never returns a wrong neighbor.
//
// The index lives in memory and is persisted by full snapshot after every
// mutation. Open loads the latest snapshot, or returns an empty index when
// none exists yet.
package vecindex
