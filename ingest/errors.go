package ingest

import "errors"

var (
	// ErrDocumentRepositoryRequired is returned when a document repository is not provided.
	ErrDocumentRepositoryRequired = errors.New("document repository required")

	// ErrProfileRepositoryRequired is returned when a profile repository is not provided.
	ErrProfileRepositoryRequired = errors.New("profile repository required")

	// ErrIndexRequired is returned when a vector index is not provided.
	ErrIndexRequired = errors.New("vector index required")

	// ErrCoordinatorRequired is returned when an extraction coordinator is not provided.
	ErrCoordinatorRequired = errors.New("extraction coordinator required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrNotAwaitingVision is returned when a vision decision is applied to
	// a document that is not waiting for one.
	ErrNotAwaitingVision = errors.New("document is not awaiting a vision decision")

	// ErrOriginalUnavailable is returned when the archived original file
	// cannot be fetched for reprocessing.
	ErrOriginalUnavailable = errors.New("original file unavailable")
)
