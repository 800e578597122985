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


package vecindex

import (
	"sort"
	"sync"

	"github.com/candidly/candex/core"
)

// Index is a flat squared-L2 vector index keyed by document ID.
//
// All vectors share a fixed dimension set at construction. Adding a vector
// under an existing ID replaces the previous vector. The index is safe for
// concurrent use.
type Index struct {
	mu      sync.RWMutex
	dim     int
	ids     []core.ID
	vectors [][]float32
	byID    map[core.ID]int
}

// New creates an empty index for vectors of the given dimension.
func New(dim int) *Index {
	return &Index{
		dim:  dim,
		byID: make(map[core.ID]int),
	}
}

// Dim returns the vector dimension of the index.
func (x *Index) Dim() int {
	return x.dim
}

// Len returns the number of vectors currently indexed.
func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.ids)
}

// Add inserts or replaces the vector for the given document ID.
// The vector is copied; callers may reuse the slice.
func (x *Index) Add(id core.ID, vector []float32) error {
	if len(vector) == 0 {
		return ErrEmptyVector
	}
	if len(vector) != x.dim {
		return ErrDimensionMismatch
	}

	v := make([]float32, len(vector))
	copy(v, vector)

	x.mu.Lock()
	defer x.mu.Unlock()

	if pos, ok := x.byID[id]; ok {
		x.vectors[pos] = v
		return nil
	}

	x.byID[id] = len(x.ids)
	x.ids = append(x.ids, id)
	x.vectors = append(x.vectors, v)
	return nil
}

// Remove deletes the vector for the given document ID.
// Removing an absent ID is a no-op.
func (x *Index) Remove(id core.ID) {
	x.mu.Lock()
	defer x.mu.Unlock()

	pos, ok := x.byID[id]
	if !ok {
		return
	}

	last := len(x.ids) - 1
	if pos != last {
		x.ids[pos] = x.ids[last]
		x.vectors[pos] = x.vectors[last]
		x.byID[x.ids[pos]] = pos
	}
	x.ids = x.ids[:last]
	x.vectors = x.vectors[:last]
	delete(x.byID, id)
}

// Contains reports whether the given document ID is indexed.
func (x *Index) Contains(id core.ID) bool {
	x.mu.RLock()
	defer x.mu.RUnlock()
	_, ok := x.byID[id]
	return ok
}

// IDs returns the indexed document IDs in unspecified order.
func (x *Index) IDs() []core.ID {
	x.mu.RLock()
	defer x.mu.RUnlock()
	out := make([]core.ID, len(x.ids))
	copy(out, x.ids)
	return out
}

// Search returns up to k nearest vectors to the query by squared L2
// distance, ordered from nearest to farthest. Ties are broken by document
// ID so results are stable across runs.
func (x *Index) Search(query []float32, k int) ([]core.VectorMatch, error) {
	if len(query) == 0 {
		return nil, ErrEmptyVector
	}
	if len(query) != x.dim {
		return nil, ErrDimensionMismatch
	}
	if k <= 0 {
		return []core.VectorMatch{}, nil
	}

	x.mu.RLock()
	defer x.mu.RUnlock()

	matches := make([]core.VectorMatch, 0, len(x.ids))
	for i, v := range x.vectors {
		matches = append(matches, core.VectorMatch{
			DocumentId: x.ids[i],
			Distance:   squaredL2(query, v),
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Distance != matches[j].Distance {
			return matches[i].Distance < matches[j].Distance
		}
		return matches[i].DocumentId < matches[j].DocumentId
	})

	if k < len(matches) {
		matches = matches[:k]
	}
	return matches, nil
}

// Similarity converts a squared L2 distance into a 0-100 similarity score.
// Identical vectors score 100 and the score decays toward 0 with distance.
func Similarity(distance float32) float64 {
	return 100.0 / (1.0 + float64(distance))
}

func squaredL2(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
