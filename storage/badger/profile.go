package badger

import (
	"context"
	"time"

	"github.com/candidly/candex/core"
	"github.com/candidly/candex/storage"
	"github.com/dgraph-io/badger/v4"
)

// ProfileRepository implements storage.ProfileRepository for BadgerDB.
// Profiles are keyed by the owning document's ID.
type ProfileRepository struct {
	backend *Backend
}

var _ storage.ProfileRepository = (*ProfileRepository)(nil)

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(backend *Backend) (*ProfileRepository, error) {
	return &ProfileRepository{backend: backend}, nil
}

// Close is a no-op; profiles hold no sequence.
func (r *ProfileRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *ProfileRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// PutProfile inserts or replaces the profile for its document.
func (r *ProfileRepository) PutProfile(ctx context.Context, profile *core.CandidateProfile) (*core.CandidateProfile, error) {
	if err := core.ValidateProfile(profile); err != nil {
		return nil, err
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		now := time.Now().UTC()
		if profile.InsertedAt.IsZero() {
			profile.InsertedAt = now
		}
		profile.UpdatedAt = now

		key := makeProfileKey(profile.DocumentId)
		if err := tx.Set(key, storage.MarshalProfile(profile)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)

	return profile, err
}

// DeleteProfile removes the profile for a document.
func (r *ProfileRepository) DeleteProfile(ctx context.Context, documentID core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeProfileKey(documentID)

		profile, err := r.readProfile(tx, key)
		if err != nil {
			return err
		}
		if profile == nil {
			return storage.ErrNotFound
		}

		if err := tx.Delete(key); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetProfile retrieves the profile for a document.
func (r *ProfileRepository) GetProfile(ctx context.Context, documentID core.ID) (*core.CandidateProfile, error) {
	var result *core.CandidateProfile
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeProfileKey(documentID)
		var err error
		result, err = r.readProfile(tx, key)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetProfiles retrieves profiles for multiple documents.
func (r *ProfileRepository) GetProfiles(ctx context.Context, documentIDs ...core.ID) ([]*core.CandidateProfile, error) {
	var result []*core.CandidateProfile
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range documentIDs {
			profile, err := r.readProfile(tx, makeProfileKey(id))
			if err != nil {
				return err
			}
			if profile != nil {
				result = append(result, profile)
			}
		}
		return nil
	}, false)
	return result, err
}

// readProfile reads a candidate profile from the transaction.
func (r *ProfileRepository) readProfile(tx *badger.Txn, key []byte) (*core.CandidateProfile, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var profile *core.CandidateProfile
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		profile, unmarshalErr = storage.UnmarshalProfile(val)
		return unmarshalErr
	})
	return profile, err
}
