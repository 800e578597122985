// Copyright 2026 Candidly Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package badger

import (
	"context"
	"time"

	"github.com/candidly/candex/core"
	"github.com/candidly/candex/storage"
	"github.com/dgraph-io/badger/v4"
)

// DocumentRepository implements storage.DocumentRepository for BadgerDB.
type DocumentRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.DocumentRepository = (*DocumentRepository)(nil)

// NewDocumentRepository creates a new DocumentRepository.
func NewDocumentRepository(backend *Backend) (*DocumentRepository, error) {
	idSeq, err := backend.GetSequence(documentIDSeq)
	if err != nil {
		return nil, err
	}

	return &DocumentRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *DocumentRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *DocumentRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddDocument adds a document record to storage.
func (r *DocumentRepository) AddDocument(ctx context.Context, doc *core.Document) (*core.Document, error) {
	if err := core.ValidateDocument(doc); err != nil {
		return nil, err
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		if doc.Id == 0 {
			nextID, err := r.idSeq.Next()
			if err != nil {
				return err
			}
			// BadgerDB sequences can return 0 on first call, so we skip it
			if nextID == 0 {
				nextID, err = r.idSeq.Next()
				if err != nil {
					return err
				}
			}
			doc.Id = core.ID(nextID)
		}

		if doc.InsertedAt.IsZero() {
			doc.InsertedAt = time.Now().UTC()
		}
		doc.UpdatedAt = doc.InsertedAt

		// Reject fingerprint collisions with a different document
		if doc.Fingerprint != "" {
			existing, err := r.readFingerprint(tx, doc.Fingerprint)
			if err != nil {
				return err
			}
			if existing != 0 && existing != doc.Id {
				return storage.ErrDuplicateKey
			}
		}

		key := makeDocumentKey(doc.Id)
		if err := tx.Set(key, storage.MarshalDocument(doc)); err != nil {
			return err
		}

		if doc.Fingerprint != "" {
			fpKey := makeFingerprintKey(doc.Fingerprint)
			if err := tx.Set(fpKey, storage.MarshalID(doc.Id)); err != nil {
				return err
			}
		}

		return tx.Commit()
	}, true)

	return doc, err
}

// UpdateDocument updates an existing document record.
func (r *DocumentRepository) UpdateDocument(ctx context.Context, doc *core.Document) (*core.Document, error) {
	if err := core.ValidateDocument(doc); err != nil {
		return nil, err
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeDocumentKey(doc.Id)

		old, err := r.readDocument(tx, key)
		if err != nil {
			return err
		}
		if old == nil {
			return storage.ErrNotFound
		}

		doc.UpdatedAt = time.Now().UTC()

		if err := tx.Set(key, storage.MarshalDocument(doc)); err != nil {
			return err
		}

		// Update fingerprint index if the fingerprint changed
		if old.Fingerprint != doc.Fingerprint {
			if old.Fingerprint != "" {
				if err := tx.Delete(makeFingerprintKey(old.Fingerprint)); err != nil {
					return err
				}
			}
			if doc.Fingerprint != "" {
				if err := tx.Set(makeFingerprintKey(doc.Fingerprint), storage.MarshalID(doc.Id)); err != nil {
					return err
				}
			}
		}

		return tx.Commit()
	}, true)

	return doc, err
}

// DeleteDocument removes a document record by ID.
func (r *DocumentRepository) DeleteDocument(ctx context.Context, id core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeDocumentKey(id)

		doc, err := r.readDocument(tx, key)
		if err != nil {
			return err
		}
		if doc == nil {
			return storage.ErrNotFound
		}

		if doc.Fingerprint != "" {
			if err := tx.Delete(makeFingerprintKey(doc.Fingerprint)); err != nil {
				return err
			}
		}

		if err := tx.Delete(key); err != nil {
			return err
		}

		return tx.Commit()
	}, true)
}

// GetDocument retrieves a single document record by ID.
func (r *DocumentRepository) GetDocument(ctx context.Context, id core.ID) (*core.Document, error) {
	var result *core.Document
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeDocumentKey(id)
		var err error
		result, err = r.readDocument(tx, key)
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

// GetDocuments retrieves multiple document records by their IDs.
func (r *DocumentRepository) GetDocuments(ctx context.Context, ids ...core.ID) ([]*core.Document, error) {
	var result []*core.Document
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeDocumentKey(id)
			doc, err := r.readDocument(tx, key)
			if err != nil {
				return err
			}
			if doc != nil {
				result = append(result, doc)
			}
		}
		return nil
	}, false)
	return result, err
}

// ListDocuments retrieves all document records ordered by ID.
func (r *DocumentRepository) ListDocuments(ctx context.Context) ([]*core.Document, error) {
	return r.scanDocuments(func(*core.Document) bool { return true })
}

// FindByFingerprint finds a document by its content fingerprint.
func (r *DocumentRepository) FindByFingerprint(ctx context.Context, fingerprint string) (*core.Document, error) {
	var result *core.Document
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		id, err := r.readFingerprint(tx, fingerprint)
		if err != nil {
			return err
		}
		if id == 0 {
			return storage.ErrNotFound
		}

		result, err = r.readDocument(tx, makeDocumentKey(id))
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

// FindByStatus retrieves all documents currently in the given status.
func (r *DocumentRepository) FindByStatus(ctx context.Context, status core.DocumentStatus) ([]*core.Document, error) {
	return r.scanDocuments(func(doc *core.Document) bool {
		return doc.Status == status
	})
}

// FindIndexPending retrieves documents whose vectors still need indexing.
func (r *DocumentRepository) FindIndexPending(ctx context.Context) ([]*core.Document, error) {
	return r.scanDocuments(func(doc *core.Document) bool {
		return doc.IndexPending
	})
}

// Helper methods

// scanDocuments iterates all document records in ID order and collects
// those matching the predicate. Key encoding is zero-padded so iteration
// order equals ID order.
func (r *DocumentRepository) scanDocuments(keep func(*core.Document) bool) ([]*core.Document, error) {
	var results []*core.Document
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(documentPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var doc *core.Document
			err := iter.Item().Value(func(val []byte) error {
				var err error
				doc, err = storage.UnmarshalDocument(val)
				return err
			})
			if err != nil {
				return err
			}
			if doc != nil && keep(doc) {
				results = append(results, doc)
			}
		}
		return nil
	}, false)
	return results, err
}

// readDocument reads a document record from the transaction.
func (r *DocumentRepository) readDocument(tx *badger.Txn, key []byte) (*core.Document, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var doc *core.Document
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		doc, unmarshalErr = storage.UnmarshalDocument(val)
		return unmarshalErr
	})
	return doc, err
}

// readFingerprint resolves a fingerprint index entry to a document ID.
// Returns 0 when no entry exists.
func (r *DocumentRepository) readFingerprint(tx *badger.Txn, fingerprint string) (core.ID, error) {
	item, err := tx.Get(makeFingerprintKey(fingerprint))
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return 0, nil
		}
		return 0, err
	}

	var id core.ID
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		id, unmarshalErr = storage.UnmarshalID(val)
		return unmarshalErr
	})
	return id, err
}
