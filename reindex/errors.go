package reindex

import "errors"

var (
	// ErrInvalidMaxAttempts is returned when a retry is configured with a
	// non-positive attempt count.
	ErrInvalidMaxAttempts = errors.New("max attempts must be positive")

	// ErrEmbeddingCountMismatch is returned when the embedding service
	// returns a different number of vectors than texts sent.
	ErrEmbeddingCountMismatch = errors.New("embedding count mismatch")
)
