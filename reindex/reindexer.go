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


package reindex

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/candidly/candex/ai"
	"github.com/candidly/candex/core"
	"github.com/candidly/candex/profile"
	"github.com/candidly/candex/storage"
	"github.com/candidly/candex/vecindex"
)

const (
	defaultBatchSize  = 32
	defaultMaxRetries = 3
	defaultBaseDelay  = time.Second
)

// Reindexer re-embeds candidate profiles and rewrites their index entries.
// It serves two jobs: clearing the index-pending backlog left by transient
// embedding failures, and full rebuilds after an embedding model change.
type Reindexer struct {
	docs         storage.DocumentRepository
	profiles     storage.ProfileRepository
	index        *vecindex.Index
	embedder     ai.Embedder
	snapshotPath string

	BatchSize  int
	MaxRetries int
	BaseDelay  time.Duration

	logger *slog.Logger
}

// NewReindexer creates a reindexer. snapshotPath may be empty to skip
// snapshot persistence.
func NewReindexer(
	docs storage.DocumentRepository,
	profiles storage.ProfileRepository,
	index *vecindex.Index,
	embedder ai.Embedder,
	snapshotPath string,
) *Reindexer {
	return &Reindexer{
		docs:         docs,
		profiles:     profiles,
		index:        index,
		embedder:     embedder,
		snapshotPath: snapshotPath,
		BatchSize:    defaultBatchSize,
		MaxRetries:   defaultMaxRetries,
		BaseDelay:    defaultBaseDelay,
		logger:       slog.Default().With("component", "reindex"),
	}
}

// Run re-embeds documents and updates the index. With pendingOnly it
// touches only documents flagged index-pending; otherwise every document
// with a stored profile is re-embedded.
//
// Returns the number of documents indexed. tracker may be nil.
func (r *Reindexer) Run(ctx context.Context, pendingOnly bool, tracker *ProgressTracker) (int, error) {
	var candidates []*core.Document
	var err error

	if pendingOnly {
		candidates, err = r.docs.FindIndexPending(ctx)
	} else {
		candidates, err = r.docs.ListDocuments(ctx)
	}
	if err != nil {
		return 0, err
	}

	// Only documents with a stored profile can be embedded.
	type item struct {
		doc *core.Document
		p   *core.CandidateProfile
	}
	items := make([]item, 0, len(candidates))
	for _, doc := range candidates {
		p, err := r.profiles.GetProfile(ctx, doc.Id)
		if err != nil {
			if pendingOnly {
				r.logger.Warn("pending document has no profile, skipping",
					"document_id", doc.Id)
			}
			continue
		}
		items = append(items, item{doc: doc, p: p})
	}

	if tracker != nil {
		tracker.SetTotal(len(items))
		tracker.Start()
	}

	indexed := 0
	for start := 0; start < len(items); start += r.BatchSize {
		end := start + r.BatchSize
		if end > len(items) {
			end = len(items)
		}
		batch := items[start:end]

		texts := make([]string, len(batch))
		for i, it := range batch {
			texts[i] = profile.SearchDocument(it.p)
		}

		var embeddings [][]float32
		err := RetryWithBackoff(ctx, func() error {
			var embErr error
			embeddings, embErr = r.embedder.EmbedTexts(ctx, texts)
			return embErr
		}, r.MaxRetries, r.BaseDelay)
		if err != nil {
			return indexed, fmt.Errorf("failed to generate embeddings after %d attempts: %w", r.MaxRetries, err)
		}
		if len(embeddings) != len(batch) {
			return indexed, fmt.Errorf("%w: expected %d, got %d", ErrEmbeddingCountMismatch, len(batch), len(embeddings))
		}

		for i, it := range batch {
			r.index.Remove(it.doc.Id)
			if err := r.index.Add(it.doc.Id, vecindex.Normalize(embeddings[i])); err != nil {
				return indexed, err
			}
			indexed++

			if it.doc.IndexPending {
				it.doc.IndexPending = false
				if _, err := r.docs.UpdateDocument(ctx, it.doc); err != nil {
					return indexed, err
				}
			}
		}

		if tracker != nil {
			tracker.Increment(len(batch))
		}
	}

	if r.snapshotPath != "" {
		if err := r.index.Save(r.snapshotPath); err != nil {
			return indexed, err
		}
	}

	if tracker != nil {
		tracker.Finish()
	}

	r.logger.Info("reindex complete",
		"indexed", indexed,
		"pending_only", pendingOnly)
	return indexed, nil
}
