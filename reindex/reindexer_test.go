package reindex

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/candidly/candex/ai/mock"
	"github.com/candidly/candex/core"
	storagebadger "github.com/candidly/candex/storage/badger"
	"github.com/candidly/candex/vecindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryWithBackoffSucceedsEventually(t *testing.T) {
	attempts := 0
	err := RetryWithBackoff(context.Background(), func() error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	}, 5, time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetryWithBackoffExhaustsAttempts(t *testing.T) {
	boom := errors.New("permanent")
	attempts := 0
	err := RetryWithBackoff(context.Background(), func() error {
		attempts++
		return boom
	}, 3, time.Millisecond)

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, attempts)
}

func TestRetryWithBackoffInvalidAttempts(t *testing.T) {
	err := RetryWithBackoff(context.Background(), func() error { return nil }, 0, time.Millisecond)
	assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error { return errors.New("never runs twice") }, 3, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProgressTracker(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgressTracker(&buf, 10, 5)

	p.Start()
	p.Update(5)
	p.Increment(3)
	p.Finish()

	out := buf.String()
	assert.Contains(t, out, "5/10")
	assert.Contains(t, out, "10/10 (100.0%)")
	assert.Greater(t, p.Elapsed(), time.Duration(0))
}

func TestProgressTrackerUnknownTotal(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgressTracker(&buf, 0, 2)

	p.Start()
	p.Increment(2)
	p.Finish()

	out := buf.String()
	assert.Contains(t, out, "Progress: 2 -")
	assert.NotContains(t, out, "%")
}

func TestProgressTrackerSetTotal(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgressTracker(&buf, 0, 1)

	p.SetTotal(4)
	p.Start()
	p.Increment(4)
	p.Finish()

	assert.Contains(t, buf.String(), "4/4 (100.0%)")
}

func TestReindexerPendingOnly(t *testing.T) {
	docs, profiles, backend, err := storagebadger.NewMemoryRepositories()
	require.NoError(t, err)
	defer func() { profiles.Close(); docs.Close(); backend.Close() }()

	ctx := context.Background()
	index := vecindex.New(8)
	embedder := mock.NewMockEmbedder()
	embedder.Dim = 8

	// One indexed document, one stuck pending
	okDoc, err := docs.AddDocument(ctx, &core.Document{
		Filename: "ok.pdf", Fingerprint: "f1", Status: core.StatusProcessed,
	})
	require.NoError(t, err)
	_, err = profiles.PutProfile(ctx, &core.CandidateProfile{DocumentId: okDoc.Id, FullName: "A", PrimarySkill: "go"})
	require.NoError(t, err)
	require.NoError(t, index.Add(okDoc.Id, make([]float32, 8)))

	pendingDoc, err := docs.AddDocument(ctx, &core.Document{
		Filename: "pending.pdf", Fingerprint: "f2", Status: core.StatusProcessed, IndexPending: true,
	})
	require.NoError(t, err)
	_, err = profiles.PutProfile(ctx, &core.CandidateProfile{DocumentId: pendingDoc.Id, FullName: "B", PrimarySkill: "python"})
	require.NoError(t, err)

	r := NewReindexer(docs, profiles, index, embedder, "")
	r.BaseDelay = time.Millisecond

	indexed, err := r.Run(ctx, true, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, indexed)
	assert.True(t, index.Contains(pendingDoc.Id))

	// Flag cleared
	reloaded, err := docs.GetDocument(ctx, pendingDoc.Id)
	require.NoError(t, err)
	assert.False(t, reloaded.IndexPending)

	stillPending, err := docs.FindIndexPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, stillPending)
}

func TestReindexerFullRebuild(t *testing.T) {
	docs, profiles, backend, err := storagebadger.NewMemoryRepositories()
	require.NoError(t, err)
	defer func() { profiles.Close(); docs.Close(); backend.Close() }()

	ctx := context.Background()
	index := vecindex.New(8)
	embedder := mock.NewMockEmbedder()
	embedder.Dim = 8

	for _, name := range []string{"a.pdf", "b.pdf", "c.pdf"} {
		doc, err := docs.AddDocument(ctx, &core.Document{
			Filename: name, Fingerprint: "fp-" + name, Status: core.StatusProcessed,
		})
		require.NoError(t, err)
		_, err = profiles.PutProfile(ctx, &core.CandidateProfile{DocumentId: doc.Id, FullName: name})
		require.NoError(t, err)
	}

	// A document without a profile is skipped silently
	_, err = docs.AddDocument(ctx, &core.Document{
		Filename: "broken.pdf", Fingerprint: "fp-x", Status: core.StatusProcessedWithProfileError,
	})
	require.NoError(t, err)

	r := NewReindexer(docs, profiles, index, embedder, "")
	r.BatchSize = 2
	r.BaseDelay = time.Millisecond

	indexed, err := r.Run(ctx, false, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, indexed)
	assert.Equal(t, 3, index.Len())
}

func TestReindexerEmbeddingFailure(t *testing.T) {
	docs, profiles, backend, err := storagebadger.NewMemoryRepositories()
	require.NoError(t, err)
	defer func() { profiles.Close(); docs.Close(); backend.Close() }()

	ctx := context.Background()
	index := vecindex.New(8)

	doc, err := docs.AddDocument(ctx, &core.Document{
		Filename: "a.pdf", Fingerprint: "f1", Status: core.StatusProcessed, IndexPending: true,
	})
	require.NoError(t, err)
	_, err = profiles.PutProfile(ctx, &core.CandidateProfile{DocumentId: doc.Id, FullName: "A"})
	require.NoError(t, err)

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("service down")
	}

	r := NewReindexer(docs, profiles, index, embedder, "")
	r.MaxRetries = 2
	r.BaseDelay = time.Millisecond

	_, err = r.Run(ctx, true, nil)
	require.Error(t, err)

	// Flag stays set for the next run
	reloaded, err := docs.GetDocument(ctx, doc.Id)
	require.NoError(t, err)
	assert.True(t, reloaded.IndexPending)
}
