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


package search

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"

	"github.com/candidly/candex/ai"
	"github.com/candidly/candex/core"
	"github.com/candidly/candex/profile"
	"github.com/candidly/candex/storage"
	"github.com/candidly/candex/vecindex"
)

const (
	// semanticWeight and exactWeight blend the two scoring signals.
	semanticWeight = 0.7
	exactWeight    = 0.3

	// matchBonus rewards each matched critical keyword on top of the
	// blended score.
	matchBonus = 15.0

	// overFetchFactor widens the vector search so keyword scoring has
	// candidates to promote beyond the final page size.
	overFetchFactor = 2
)

// Engine provides hybrid semantic and exact-keyword search over candidate
// profiles.
type Engine struct {
	docs     storage.DocumentRepository
	profiles storage.ProfileRepository
	index    *vecindex.Index
	embedder ai.Embedder
	intel    ai.TextIntel
	logger   *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewEngine creates a new search engine.
func NewEngine(
	docs storage.DocumentRepository,
	profiles storage.ProfileRepository,
	index *vecindex.Index,
	provider ai.Provider,
	opts ...Option,
) (*Engine, error) {
	if docs == nil {
		return nil, ErrDocumentRepositoryRequired
	}
	if profiles == nil {
		return nil, ErrProfileRepositoryRequired
	}
	if index == nil {
		return nil, ErrIndexRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	e := &Engine{
		docs:     docs,
		profiles: profiles,
		index:    index,
		embedder: provider.Embedder(),
		intel:    provider.TextIntel(),
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Search finds candidates matching the query.
// Returns up to maxHits results, ranked by relevance score.
func (e *Engine) Search(ctx context.Context, query string, maxHits int) ([]*core.SearchResult, error) {
	return e.SearchWithMonitor(ctx, query, maxHits, nil)
}

// SearchWithMonitor finds candidates matching the query with monitoring.
// The monitor receives callbacks at each stage of the search process.
// Returns up to maxHits results, ranked by relevance score.
func (e *Engine) SearchWithMonitor(ctx context.Context, query string, maxHits int, monitor Monitor) ([]*core.SearchResult, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	if maxHits <= 0 {
		return []*core.SearchResult{}, nil
	}

	monitor.Start(query)

	// 1. Extract critical keywords. Keyword extraction failing degrades
	// the search to pure semantic rather than failing it.
	keywords, err := e.intel.ExtractCriticalKeywords(ctx, query)
	if err != nil {
		e.logger.Warn("keyword extraction failed, continuing without keywords", "err", err)
		keywords = nil
	}
	monitor.AfterKeywordExtraction(keywords)

	// 2. Expand the query into profile shape for embedding. Expansion
	// failing falls back to embedding the raw query.
	expanded, err := e.intel.ExpandQuery(ctx, query)
	if err != nil || strings.TrimSpace(expanded) == "" {
		if err != nil {
			e.logger.Warn("query expansion failed, embedding raw query", "err", err)
		}
		expanded = query
	}
	monitor.AfterQueryExpansion(expanded)

	// 3. Semantic search, over-fetched so keyword bonuses can promote
	// candidates from beyond the final page.
	embedding, err := e.embedder.EmbedText(ctx, expanded)
	if err != nil {
		e.logger.Error("error generating embedding for query", "query", query, "err", err)
		return nil, err
	}

	matches, err := e.index.Search(vecindex.Normalize(embedding), maxHits*overFetchFactor)
	if err != nil {
		e.logger.Error("error querying vector index", "err", err)
		return nil, err
	}
	monitor.AfterSemanticSearch(matches)

	// 4. Score each candidate.
	results := make([]*core.SearchResult, 0, len(matches))
	for _, match := range matches {
		result, err := e.scoreMatch(ctx, match, keywords)
		if err != nil {
			return nil, err
		}
		if result == nil {
			monitor.MissingProfile(match.DocumentId)
			continue
		}
		results = append(results, result)
	}

	// 5. Rank by fused score. The stable sort keeps equal scores in
	// semantic order, so a clamped tie never outranks a closer vector.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if maxHits < len(results) {
		results = results[:maxHits]
	}

	monitor.Finish(results)
	return results, nil
}

// scoreMatch builds a scored result for one vector match. Returns nil when
// the candidate lacks a profile or document record; the index can run
// ahead of storage during deletions and such hits are dropped.
func (e *Engine) scoreMatch(ctx context.Context, match core.VectorMatch, keywords []string) (*core.SearchResult, error) {
	p, err := e.profiles.GetProfile(ctx, match.DocumentId)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			e.logger.Warn("indexed document has no profile, dropping from results",
				"document_id", match.DocumentId)
			return nil, nil
		}
		return nil, err
	}

	doc, err := e.docs.GetDocument(ctx, match.DocumentId)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			e.logger.Warn("indexed document has no record, dropping from results",
				"document_id", match.DocumentId)
			return nil, nil
		}
		return nil, err
	}

	semanticScore := vecindex.Similarity(match.Distance)

	result := &core.SearchResult{
		DocumentId:    match.DocumentId,
		Filename:      doc.Filename,
		Profile:       p,
		SemanticScore: semanticScore,
	}

	if len(keywords) == 0 {
		// Pure semantic search
		result.Score = clampScore(semanticScore)
		result.FoundKeywords = []string{}
		result.MissingKeywords = []string{}
		return result, nil
	}

	found, missing := MatchKeywords(profile.FullText(p), keywords)

	exactScore := float64(len(found)) / float64(len(keywords)) * 100.0

	result.ExactScore = exactScore
	result.FoundKeywords = found
	result.MissingKeywords = missing
	result.Score = clampScore(semanticScore*semanticWeight +
		exactScore*exactWeight +
		float64(len(found))*matchBonus)

	return result, nil
}

// clampScore bounds a score to [0, 100].
func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
