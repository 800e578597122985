package storage

import (
	"context"

	"github.com/candidly/candex/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// The context passed to fn may contain transaction state.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// DocumentRepository provides operations for managing document records.
type DocumentRepository interface {
	Repository

	// AddDocument adds a document record to storage.
	// For a record with Id=0, generates a new ID from sequence.
	// Sets InsertedAt timestamp if not already set.
	// Returns the record with generated ID and timestamps populated.
	AddDocument(ctx context.Context, doc *core.Document) (*core.Document, error)

	// UpdateDocument updates an existing document record.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if the record doesn't exist.
	UpdateDocument(ctx context.Context, doc *core.Document) (*core.Document, error)

	// DeleteDocument removes a document record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	DeleteDocument(ctx context.Context, id core.ID) error

	// GetDocument retrieves a single document record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	GetDocument(ctx context.Context, id core.ID) (*core.Document, error)

	// GetDocuments retrieves multiple document records by their IDs.
	// Returns only the records that exist (no error for missing records).
	GetDocuments(ctx context.Context, ids ...core.ID) ([]*core.Document, error)

	// ListDocuments retrieves all document records ordered by ID.
	ListDocuments(ctx context.Context) ([]*core.Document, error)

	// FindByFingerprint finds a document by its content fingerprint.
	// Returns ErrNotFound if no matching document exists.
	FindByFingerprint(ctx context.Context, fingerprint string) (*core.Document, error)

	// FindByStatus retrieves all documents currently in the given status,
	// ordered by ID.
	FindByStatus(ctx context.Context, status core.DocumentStatus) ([]*core.Document, error)

	// FindIndexPending retrieves documents whose vectors still need to be
	// written to the index, ordered by ID.
	FindIndexPending(ctx context.Context) ([]*core.Document, error)
}

// ProfileRepository provides operations for managing candidate profiles.
// Profiles are keyed by the owning document's ID; a document has at most
// one profile.
type ProfileRepository interface {
	Repository

	// PutProfile inserts or replaces the profile for its document.
	// Sets InsertedAt timestamp if not already set.
	PutProfile(ctx context.Context, profile *core.CandidateProfile) (*core.CandidateProfile, error)

	// DeleteProfile removes the profile for a document.
	// Returns ErrNotFound if no profile exists.
	DeleteProfile(ctx context.Context, documentID core.ID) error

	// GetProfile retrieves the profile for a document.
	// Returns ErrNotFound if no profile exists.
	GetProfile(ctx context.Context, documentID core.ID) (*core.CandidateProfile, error)

	// GetProfiles retrieves profiles for multiple documents.
	// Returns only the profiles that exist (no error for missing profiles).
	GetProfiles(ctx context.Context, documentIDs ...core.ID) ([]*core.CandidateProfile, error)
}
