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


package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/candidly/candex/ai"
	"github.com/candidly/candex/core"
	"github.com/candidly/candex/extract"
	"github.com/candidly/candex/objstore"
	"github.com/candidly/candex/profile"
	"github.com/candidly/candex/storage"
	"github.com/candidly/candex/vecindex"
	"github.com/panjf2000/ants/v2"
)

// Pipeline orchestrates document intake: validation, extraction, profile
// structuring, embedding and indexing.
type Pipeline struct {
	docs        storage.DocumentRepository
	profiles    storage.ProfileRepository
	index       *vecindex.Index
	coordinator *extract.Coordinator
	builder     *profile.Builder
	embedder    ai.Embedder
	store       objstore.Store
	pool        *ants.Pool
	logger      *slog.Logger

	// snapshotPath, when set, is written after every index mutation.
	snapshotPath string
	snapshotMu   sync.Mutex
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent batch ingestion.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		if p.pool != nil {
			p.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithObjectStore enables archival of original files. Without it the
// pipeline keeps no originals and the vision fallback can only run on
// bytes still held by the caller.
func WithObjectStore(store objstore.Store) Option {
	return func(p *Pipeline) error {
		p.store = store
		return nil
	}
}

// WithSnapshotPath makes the pipeline persist the vector index to the
// given file after every index mutation.
func WithSnapshotPath(path string) Option {
	return func(p *Pipeline) error {
		p.snapshotPath = path
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	docs storage.DocumentRepository,
	profiles storage.ProfileRepository,
	index *vecindex.Index,
	coordinator *extract.Coordinator,
	provider ai.Provider,
	opts ...Option,
) (*Pipeline, error) {
	if docs == nil {
		return nil, ErrDocumentRepositoryRequired
	}
	if profiles == nil {
		return nil, ErrProfileRepositoryRequired
	}
	if index == nil {
		return nil, ErrIndexRequired
	}
	if coordinator == nil {
		return nil, ErrCoordinatorRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		docs:        docs,
		profiles:    profiles,
		index:       index,
		coordinator: coordinator,
		builder:     profile.NewBuilder(provider.TextIntel()),
		embedder:    provider.Embedder(),
		pool:        pool,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}

// FileInput is one file offered for ingestion.
type FileInput struct {
	Filename string
	Data     []byte
}

// IngestFile processes a single uploaded file synchronously and returns
// its document record in whatever state processing reached. A document
// that lands in StatusAwaitingVisionDecision is not an error; it is
// waiting for ResumeVision or SkipVision.
func (p *Pipeline) IngestFile(ctx context.Context, filename string, data []byte) (*core.Document, error) {
	fingerprint := core.Fingerprint(data)

	existing, err := p.docs.FindByFingerprint(ctx, fingerprint)
	if err == nil {
		p.logger.Info("duplicate upload rejected",
			"filename", filename,
			"existing_id", existing.Id)
		return existing, core.ErrDuplicateDocument
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	doc := &core.Document{
		Filename:    filename,
		Fingerprint: fingerprint,
		Status:      core.StatusValidating,
	}
	doc, err = p.docs.AddDocument(ctx, doc)
	if err != nil {
		return nil, err
	}

	if err := p.coordinator.Validate(data); err != nil {
		return p.fail(ctx, doc, "validate", err)
	}

	// Archive the original. Failure is soft: processing continues, the
	// vision fallback just won't be able to refetch the file later.
	if p.store != nil {
		path, err := p.store.Put(ctx, doc.Id, filename, data)
		if err != nil {
			p.logger.Warn("failed to archive original file",
				"document_id", doc.Id,
				"err", err)
		} else {
			doc.StoragePath = path
		}
	}

	doc.Status = core.StatusExtractingStandard
	if doc, err = p.docs.UpdateDocument(ctx, doc); err != nil {
		return nil, err
	}

	outcome := p.coordinator.ExtractStandard(ctx, data, filename)
	switch outcome.Kind {
	case extract.KindFailed:
		return p.fail(ctx, doc, "extract", outcome.Err)

	case extract.KindNeedsFallback:
		doc.Status = core.StatusAwaitingVisionDecision
		doc.ExtractedText = outcome.Text
		doc.CharCount = outcome.CharCount
		if doc, err = p.docs.UpdateDocument(ctx, doc); err != nil {
			return nil, err
		}
		p.logger.Info("document awaiting vision decision",
			"document_id", doc.Id,
			"chars", outcome.CharCount)
		return doc, nil
	}

	return p.finalize(ctx, doc, outcome.Text, outcome.CharCount, false)
}

// IngestBatch submits files for concurrent ingestion on the worker pool
// and blocks until all of them are done. Per-file failures are logged,
// not returned; batch ingestion is a bulk-load path.
func (p *Pipeline) IngestBatch(ctx context.Context, files []FileInput) {
	var wg sync.WaitGroup
	for _, file := range files {
		f := file
		wg.Add(1)
		err := p.pool.Submit(func() {
			defer wg.Done()
			if _, err := p.IngestFile(ctx, f.Filename, f.Data); err != nil {
				p.logger.Error("batch ingestion failed for file",
					"filename", f.Filename,
					"err", err)
			}
		})
		if err != nil {
			wg.Done()
			p.logger.Error("failed to submit file to pool", "filename", f.Filename, "err", err)
		}
	}
	wg.Wait()
}

// ResumeVision runs the vision fallback for a document awaiting the
// decision. The original file bytes may be passed directly; when nil they
// are fetched from the object store.
func (p *Pipeline) ResumeVision(ctx context.Context, id core.ID, data []byte) (*core.Document, error) {
	doc, err := p.docs.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.Status != core.StatusAwaitingVisionDecision {
		return doc, ErrNotAwaitingVision
	}

	if data == nil {
		if p.store == nil || doc.StoragePath == "" {
			return doc, ErrOriginalUnavailable
		}
		data, err = p.store.Get(ctx, doc.StoragePath)
		if err != nil {
			p.logger.Error("failed to fetch archived original",
				"document_id", doc.Id,
				"path", doc.StoragePath,
				"err", err)
			return doc, ErrOriginalUnavailable
		}
	}

	doc.Status = core.StatusExtractingVision
	if doc, err = p.docs.UpdateDocument(ctx, doc); err != nil {
		return nil, err
	}

	outcome := p.coordinator.ExtractVision(ctx, data, doc.Filename)
	if outcome.Kind != extract.KindSufficient {
		return p.fail(ctx, doc, "vision", outcome.Err)
	}

	return p.finalize(ctx, doc, outcome.Text, outcome.CharCount, true)
}

// SkipVision declines the vision fallback for a document awaiting the
// decision. The document fails with the insufficient-text reason.
func (p *Pipeline) SkipVision(ctx context.Context, id core.ID) (*core.Document, error) {
	doc, err := p.docs.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.Status != core.StatusAwaitingVisionDecision {
		return doc, ErrNotAwaitingVision
	}

	return p.fail(ctx, doc, "vision", core.ErrInsufficientText)
}

// PendingVision lists documents awaiting a vision decision.
func (p *Pipeline) PendingVision(ctx context.Context) ([]*core.Document, error) {
	return p.docs.FindByStatus(ctx, core.StatusAwaitingVisionDecision)
}

// Delete removes a document everywhere: vector index, profile, archived
// original and the record itself.
func (p *Pipeline) Delete(ctx context.Context, id core.ID) error {
	doc, err := p.docs.GetDocument(ctx, id)
	if err != nil {
		return err
	}

	p.index.Remove(id)
	p.saveSnapshot()

	if err := p.profiles.DeleteProfile(ctx, id); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	if p.store != nil && doc.StoragePath != "" {
		if err := p.store.Delete(ctx, doc.StoragePath); err != nil {
			p.logger.Warn("failed to delete archived original",
				"document_id", id,
				"path", doc.StoragePath,
				"err", err)
		}
	}

	if err := p.docs.DeleteDocument(ctx, id); err != nil {
		return err
	}

	p.logger.Info("document deleted", "document_id", id)
	return nil
}

// finalize structures the profile, embeds it and writes the index entry.
// A structuring failure is not terminal: the text is kept and the
// document lands in StatusProcessedWithProfileError and is not indexed.
func (p *Pipeline) finalize(ctx context.Context, doc *core.Document, text string, charCount int, visionUsed bool) (*core.Document, error) {
	doc.VisionUsed = visionUsed
	doc.CharCount = charCount

	candidateProfile, rewritten, err := p.builder.Build(ctx, doc.Id, text)
	if rewritten != "" {
		doc.ExtractedText = rewritten
	} else {
		doc.ExtractedText = text
	}

	if err != nil {
		if errors.Is(err, core.ErrProfileStructuringFailed) {
			doc.Status = core.StatusProcessedWithProfileError
			doc.FailureReason = err.Error()
			var updateErr error
			if doc, updateErr = p.docs.UpdateDocument(ctx, doc); updateErr != nil {
				return nil, updateErr
			}
			p.logger.Warn("document processed without profile", "document_id", doc.Id)
			return doc, nil
		}
		return p.fail(ctx, doc, "profile", err)
	}

	if _, err := p.profiles.PutProfile(ctx, candidateProfile); err != nil {
		return p.fail(ctx, doc, "profile", err)
	}

	// Index the profile's search document. Index trouble does not fail
	// the document; it is flagged for reindexing instead.
	doc.IndexPending = false
	embedding, err := p.embedder.EmbedText(ctx, profile.SearchDocument(candidateProfile))
	if err != nil {
		p.logger.Error("embedding failed, flagging for reindex",
			"document_id", doc.Id,
			"err", err)
		doc.IndexPending = true
	} else {
		p.index.Remove(doc.Id)
		if err := p.index.Add(doc.Id, vecindex.Normalize(embedding)); err != nil {
			p.logger.Error("index write failed, flagging for reindex",
				"document_id", doc.Id,
				"err", fmt.Errorf("%w: %v", core.ErrIndexUnavailable, err))
			doc.IndexPending = true
		} else {
			p.saveSnapshot()
		}
	}

	doc.Status = core.StatusProcessed
	doc.FailureReason = ""
	if doc, err = p.docs.UpdateDocument(ctx, doc); err != nil {
		return nil, err
	}

	p.logger.Info("document processed",
		"document_id", doc.Id,
		"vision", visionUsed,
		"chars", charCount)
	return doc, nil
}

// fail marks the document as terminally failed at the given stage.
func (p *Pipeline) fail(ctx context.Context, doc *core.Document, stage string, cause error) (*core.Document, error) {
	serviceErr := core.NewServiceError(stage, cause)

	doc.Status = core.StatusError
	doc.FailureReason = serviceErr.Error()
	updated, err := p.docs.UpdateDocument(ctx, doc)
	if err != nil {
		return nil, err
	}

	p.logger.Error("document failed",
		"document_id", doc.Id,
		"stage", stage,
		"err", cause)
	return updated, serviceErr
}

// saveSnapshot persists the index if a snapshot path is configured.
// Snapshot trouble is logged, never fatal.
func (p *Pipeline) saveSnapshot() {
	if p.snapshotPath == "" {
		return
	}
	p.snapshotMu.Lock()
	defer p.snapshotMu.Unlock()
	if err := p.index.Save(p.snapshotPath); err != nil {
		p.logger.Error("failed to save index snapshot", "path", p.snapshotPath, "err", err)
	}
}
