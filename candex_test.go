package candex

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/candidly/candex/ai/mock"
	"github.com/candidly/candex/ingest"
	"github.com/candidly/candex/objstore"
)

func newTestSystem(t *testing.T, dataDir string) *System {
	t.Helper()
	provider := mock.NewMockProvider()
	provider.(*mock.MockProvider).GetMockEmbedder().Dim = 8
	sys, err := NewSystem(dataDir,
		WithProvider(provider),
		WithEmbeddingDim(8),
	)
	require.NoError(t, err)
	require.NotNil(t, sys)
	return sys
}

func TestNewSystem(t *testing.T) {
	t.Run("create new system", func(t *testing.T) {
		sys := newTestSystem(t, filepath.Join(t.TempDir(), "candex"))
		defer sys.Close()

		// Verify components are initialized
		assert.NotNil(t, sys.DocumentRepository())
		assert.NotNil(t, sys.ProfileRepository())
		assert.NotNil(t, sys.Index())
		assert.NotNil(t, sys.backend)
		assert.NotNil(t, sys.coordinator)
	})

	t.Run("error with invalid path", func(t *testing.T) {
		// A regular file where a directory is expected
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		err := os.WriteFile(tmpFile, []byte("test"), 0644)
		require.NoError(t, err)

		sys, err := NewSystem(filepath.Join(tmpFile, "candex"),
			WithProvider(mock.NewMockProvider()),
			WithEmbeddingDim(8),
		)
		assert.Error(t, err)
		assert.Nil(t, sys)
	})
}

func TestSystem_Close(t *testing.T) {
	sys := newTestSystem(t, t.TempDir())
	assert.NoError(t, sys.Close())
}

func TestSystem_FactoryMethods(t *testing.T) {
	sys := newTestSystem(t, t.TempDir())
	defer sys.Close()

	t.Run("can create ingestion pipeline", func(t *testing.T) {
		pipeline, err := sys.NewPipeline()
		require.NoError(t, err)
		require.NotNil(t, pipeline)
		pipeline.Release()
	})

	t.Run("can create search engine", func(t *testing.T) {
		engine, err := sys.NewSearchEngine()
		require.NoError(t, err)
		require.NotNil(t, engine)
	})

	t.Run("can create reindexer", func(t *testing.T) {
		reindexer := sys.NewReindexer()
		require.NotNil(t, reindexer)
	})
}

// plainTextExtractor stands in for the Tika client so tests do not need
// a running server.
type plainTextExtractor struct{}

func (plainTextExtractor) ExtractText(_ context.Context, data []byte, _ string) (string, error) {
	return string(data), nil
}

func TestSystem_ObjectStoreWiring(t *testing.T) {
	store := objstore.NewMemoryStore()
	provider := mock.NewMockProvider()
	provider.(*mock.MockProvider).GetMockEmbedder().Dim = 8
	sys, err := NewSystem(t.TempDir(),
		WithProvider(provider),
		WithEmbeddingDim(8),
		WithObjectStore(store),
		WithStandardExtractor(plainTextExtractor{}),
	)
	require.NoError(t, err)
	defer sys.Close()

	pipeline, err := sys.NewPipeline(ingest.WithPoolSize(1))
	require.NoError(t, err)
	defer pipeline.Release()

	text := "Jane Doe, staff engineer. "
	for len(text) < 600 {
		text += "Distributed systems and Go services at scale. "
	}

	doc, err := pipeline.IngestFile(context.Background(), "jane.pdf", []byte("%PDF-1.7\n"+text))
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.NotEmpty(t, doc.StoragePath)
	assert.Equal(t, 1, store.Len())
}
