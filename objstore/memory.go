package objstore

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/candidly/candex/core"
)

// ErrObjectNotFound is returned by Get for an unknown storage path.
var ErrObjectNotFound = errors.New("object not found")

// MemoryStore is an in-memory Store used in tests and single-node setups
// without an object store.
type MemoryStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

// Put stores a copy of data under documents/<id>/<filename>.
func (s *MemoryStore) Put(ctx context.Context, documentID core.ID, filename string, data []byte) (string, error) {
	path := fmt.Sprintf("documents/%d/%s", documentID, filepath.Base(filename))

	cp := make([]byte, len(data))
	copy(cp, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[path] = cp
	return path, nil
}

// Get retrieves a stored file.
func (s *MemoryStore) Get(ctx context.Context, storagePath string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.objects[storagePath]
	if !ok {
		return nil, ErrObjectNotFound
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

// Delete removes a stored file. Absent paths are ignored.
func (s *MemoryStore) Delete(ctx context.Context, storagePath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, storagePath)
	return nil
}

// Len returns the number of stored objects.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}
