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


package candex

import (
	"log/slog"
	"path/filepath"

	"github.com/candidly/candex/ai"
	"github.com/candidly/candex/ai/openai"
	"github.com/candidly/candex/extract"
	"github.com/candidly/candex/extract/tika"
	"github.com/candidly/candex/ingest"
	"github.com/candidly/candex/objstore"
	"github.com/candidly/candex/reindex"
	"github.com/candidly/candex/search"
	"github.com/candidly/candex/storage"
	"github.com/candidly/candex/storage/badger"
	"github.com/candidly/candex/vecindex"
)

const (
	dbDirName        = "db"
	snapshotFileName = "index.bin"
	defaultTikaURL   = "http://localhost:9998"
)

// System wires storage, the vector index, the AI provider and extraction
// into one handle that pipelines and search engines are created from.
type System struct {
	backend      *badger.Backend
	docs         storage.DocumentRepository
	profiles     storage.ProfileRepository
	index        *vecindex.Index
	provider     ai.Provider
	coordinator  *extract.Coordinator
	store        objstore.Store
	snapshotPath string
	logger       *slog.Logger
}

// SystemOption configures a System.
type SystemOption func(*systemOptions)

type systemOptions struct {
	aiConfig *ai.Config
	provider ai.Provider
	tikaURL  string
	store    objstore.Store
	standard extract.StandardExtractor
	renderer extract.PageRenderer
	dim      int
}

// WithAIConfig sets the AI service configuration.
func WithAIConfig(config *ai.Config) SystemOption {
	return func(o *systemOptions) {
		o.aiConfig = config
	}
}

// WithProvider injects a pre-built AI provider, bypassing the OpenAI
// configuration. Used in tests with mock providers.
func WithProvider(provider ai.Provider) SystemOption {
	return func(o *systemOptions) {
		o.provider = provider
	}
}

// WithTikaURL sets the Apache Tika server address.
// Default is http://localhost:9998.
func WithTikaURL(url string) SystemOption {
	return func(o *systemOptions) {
		o.tikaURL = url
	}
}

// WithObjectStore enables archival of original files.
func WithObjectStore(store objstore.Store) SystemOption {
	return func(o *systemOptions) {
		o.store = store
	}
}

// WithStandardExtractor replaces the Tika extractor.
func WithStandardExtractor(standard extract.StandardExtractor) SystemOption {
	return func(o *systemOptions) {
		o.standard = standard
	}
}

// WithPageRenderer replaces the poppler page renderer.
func WithPageRenderer(renderer extract.PageRenderer) SystemOption {
	return func(o *systemOptions) {
		o.renderer = renderer
	}
}

// WithEmbeddingDim overrides the vector index dimension. Default is the
// AI configuration's embedding dimension.
func WithEmbeddingDim(dim int) SystemOption {
	return func(o *systemOptions) {
		o.dim = dim
	}
}

// NewSystem opens or creates a system rooted at dataDir. The BadgerDB
// database lives in dataDir/db and the index snapshot in
// dataDir/index.bin; a missing snapshot starts an empty index.
func NewSystem(dataDir string, opts ...SystemOption) (*System, error) {
	options := &systemOptions{
		aiConfig: ai.DefaultConfig(),
		tikaURL:  defaultTikaURL,
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filepath.Join(dataDir, dbDirName), false)
	if err != nil {
		return nil, err
	}

	docs, err := badger.NewDocumentRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	profiles, err := badger.NewProfileRepository(backend)
	if err != nil {
		docs.Close()
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			profiles.Close()
			docs.Close()
			backend.Close()
			return nil, err
		}
	}

	dim := options.dim
	if dim == 0 {
		dim = options.aiConfig.EmbeddingDim
	}

	snapshotPath := filepath.Join(dataDir, snapshotFileName)
	index, err := vecindex.Open(snapshotPath, dim)
	if err != nil {
		provider.Close()
		profiles.Close()
		docs.Close()
		backend.Close()
		return nil, err
	}

	standard := options.standard
	if standard == nil {
		standard = tika.NewClient(options.tikaURL)
	}
	renderer := options.renderer
	if renderer == nil {
		renderer = extract.NewPopplerRenderer()
	}

	return &System{
		backend:      backend,
		docs:         docs,
		profiles:     profiles,
		index:        index,
		provider:     provider,
		coordinator:  extract.NewCoordinator(standard, renderer, provider.PageReader()),
		store:        options.store,
		snapshotPath: snapshotPath,
		logger:       slog.Default(),
	}, nil
}

// Close shuts down the provider, repositories and storage backend.
func (s *System) Close() error {
	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
	}

	if err := s.profiles.Close(); err != nil {
		s.logger.Error("error closing profile repository", "err", err)
		return err
	}
	if err := s.docs.Close(); err != nil {
		s.logger.Error("error closing document repository", "err", err)
		return err
	}
	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// DocumentRepository returns the document repository.
func (s *System) DocumentRepository() storage.DocumentRepository {
	return s.docs
}

// ProfileRepository returns the profile repository.
func (s *System) ProfileRepository() storage.ProfileRepository {
	return s.profiles
}

// Index returns the vector index.
func (s *System) Index() *vecindex.Index {
	return s.index
}

// NewPipeline creates an ingestion pipeline over this system.
func (s *System) NewPipeline(opts ...ingest.Option) (*ingest.Pipeline, error) {
	base := []ingest.Option{
		ingest.WithSnapshotPath(s.snapshotPath),
	}
	if s.store != nil {
		base = append(base, ingest.WithObjectStore(s.store))
	}
	return ingest.NewPipeline(s.docs, s.profiles, s.index, s.coordinator, s.provider,
		append(base, opts...)...)
}

// NewSearchEngine creates a search engine over this system.
func (s *System) NewSearchEngine(opts ...search.Option) (*search.Engine, error) {
	return search.NewEngine(s.docs, s.profiles, s.index, s.provider, opts...)
}

// NewReindexer creates a reindexer over this system.
func (s *System) NewReindexer() *reindex.Reindexer {
	return reindex.NewReindexer(s.docs, s.profiles, s.index, s.provider.Embedder(), s.snapshotPath)
}
