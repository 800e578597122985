package search

import (
	"context"
	"testing"

	"github.com/candidly/candex/ai/mock"
	"github.com/candidly/candex/core"
	"github.com/candidly/candex/storage"
	storagebadger "github.com/candidly/candex/storage/badger"
	"github.com/candidly/candex/vecindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	docs     storage.DocumentRepository
	profiles storage.ProfileRepository
	index    *vecindex.Index
	provider *mock.MockProvider
	engine   *Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	docs, profiles, backend, err := storagebadger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		profiles.Close()
		docs.Close()
		backend.Close()
	})

	index := vecindex.New(4)

	embedder := mock.NewMockEmbedder()
	embedder.Dim = 4
	provider := mock.NewMockProviderWithServices(embedder, mock.NewMockTextIntel(), mock.NewMockPageReader()).(*mock.MockProvider)

	engine, err := NewEngine(docs, profiles, index, provider)
	require.NoError(t, err)

	return &testEnv{
		docs:     docs,
		profiles: profiles,
		index:    index,
		provider: provider,
		engine:   engine,
	}
}

// addCandidate stores a document, its profile, and its vector.
func (env *testEnv) addCandidate(t *testing.T, vec []float32, title string, skills ...string) core.ID {
	t.Helper()
	ctx := context.Background()

	doc, err := env.docs.AddDocument(ctx, &core.Document{
		Filename: title + ".pdf",
		Status:   core.StatusProcessed,
	})
	require.NoError(t, err)

	primary := ""
	if len(skills) > 0 {
		primary = skills[0]
	}
	_, err = env.profiles.PutProfile(ctx, &core.CandidateProfile{
		DocumentId:   doc.Id,
		FullName:     "Candidate " + title,
		CurrentTitle: title,
		PrimarySkill: primary,
		KeySkills:    skills,
		Summary:      "works as " + title,
	})
	require.NoError(t, err)

	require.NoError(t, env.index.Add(doc.Id, vec))
	return doc.Id
}

// fixQuery pins the embedding the engine will compute for a query.
func (env *testEnv) fixQuery(vec []float32) {
	env.provider.GetMockEmbedder().EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return vec, nil
	}
}

// fixKeywords pins the critical keywords extracted from any query.
func (env *testEnv) fixKeywords(keywords ...string) {
	env.provider.GetMockIntel().ExtractCriticalKeywordsFunc = func(ctx context.Context, query string) ([]string, error) {
		return keywords, nil
	}
}

func TestSearchRanksBySimilarity(t *testing.T) {
	env := newTestEnv(t)

	near := env.addCandidate(t, []float32{1, 0, 0, 0}, "backend engineer", "python")
	far := env.addCandidate(t, []float32{0, 0, 0, 1}, "designer", "figma")

	env.fixQuery([]float32{1, 0, 0, 0})
	env.fixKeywords() // no keywords, pure semantic

	results, err := env.engine.Search(context.Background(), "python backend", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, near, results[0].DocumentId)
	assert.Equal(t, far, results[1].DocumentId)
	assert.Equal(t, 100.0, results[0].Score) // identical vector
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestSearchKeywordsPromote(t *testing.T) {
	env := newTestEnv(t)

	// Semantically closer but lacks the keyword
	noSkill := env.addCandidate(t, []float32{1, 0, 0, 0}, "backend engineer", "golang")
	// Slightly farther but has the keyword
	withSkill := env.addCandidate(t, []float32{0.9, 0.1, 0, 0}, "backend engineer", "python", "django")

	env.fixQuery([]float32{1, 0, 0, 0})
	env.fixKeywords("python")

	results, err := env.engine.Search(context.Background(), "python backend", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, withSkill, results[0].DocumentId)
	assert.Equal(t, noSkill, results[1].DocumentId)

	assert.Equal(t, []string{"python"}, results[0].FoundKeywords)
	assert.Empty(t, results[0].MissingKeywords)
	assert.Equal(t, 100.0, results[0].ExactScore)

	assert.Empty(t, results[1].FoundKeywords)
	assert.Equal(t, []string{"python"}, results[1].MissingKeywords)
	assert.Equal(t, 0.0, results[1].ExactScore)
}

func TestSearchScoresClamped(t *testing.T) {
	env := newTestEnv(t)

	env.addCandidate(t, []float32{1, 0, 0, 0}, "engineer", "python", "django", "postgresql")

	env.fixQuery([]float32{1, 0, 0, 0})
	env.fixKeywords("python", "django", "postgresql")

	results, err := env.engine.Search(context.Background(), "python django postgresql", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)

	// 100*0.7 + 100*0.3 + 3*15 would exceed 100
	assert.Equal(t, 100.0, results[0].Score)
}

func TestSearchPartialKeywordScore(t *testing.T) {
	env := newTestEnv(t)

	env.addCandidate(t, []float32{0, 1, 0, 0}, "engineer", "python")

	env.fixQuery([]float32{0, 0, 1, 0}) // distance 2 -> similarity 100/3
	env.fixKeywords("python", "kubernetes")

	results, err := env.engine.Search(context.Background(), "python kubernetes", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, 50.0, r.ExactScore) // 1 of 2 keywords
	expected := clampScore(r.SemanticScore*semanticWeight + 50.0*exactWeight + 1*matchBonus)
	assert.InDelta(t, expected, r.Score, 1e-9)
}

func TestSearchKeywordInWorkHistory(t *testing.T) {
	env := newTestEnv(t)

	ctx := context.Background()
	doc, err := env.docs.AddDocument(ctx, &core.Document{
		Filename: "ops.pdf",
		Status:   core.StatusProcessed,
	})
	require.NoError(t, err)

	// The keyword appears only in an experience description, not in the
	// skills list or summary.
	_, err = env.profiles.PutProfile(ctx, &core.CandidateProfile{
		DocumentId:   doc.Id,
		FullName:     "Candidate Ops",
		CurrentTitle: "platform engineer",
		PrimarySkill: "linux",
		KeySkills:    []string{"linux"},
		Summary:      "runs build infrastructure",
		Experience: []core.ExperienceEntry{{
			Title:       "site reliability engineer",
			Employer:    "Hosting Co",
			StartYear:   2019,
			EndYear:     "present",
			Description: "Migrated legacy services to Docker and Kubernetes",
		}},
	})
	require.NoError(t, err)
	require.NoError(t, env.index.Add(doc.Id, []float32{1, 0, 0, 0}))

	env.fixQuery([]float32{1, 0, 0, 0})
	env.fixKeywords("docker")

	results, err := env.engine.Search(ctx, "docker", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, []string{"docker"}, results[0].FoundKeywords)
	assert.Empty(t, results[0].MissingKeywords)
	assert.Equal(t, 100.0, results[0].ExactScore)
}

func TestSearchTiesKeepSemanticOrder(t *testing.T) {
	env := newTestEnv(t)

	// Both candidates match every keyword, so both fused scores clamp to
	// 100. The farther one is inserted first and gets the lower id.
	farther := env.addCandidate(t, []float32{1, 0.5, 0, 0}, "go engineer", "go", "docker")
	closer := env.addCandidate(t, []float32{1, 0, 0, 0}, "go platform engineer", "go", "docker")

	env.fixQuery([]float32{1, 0, 0, 0})
	env.fixKeywords("go", "docker")

	results, err := env.engine.Search(context.Background(), "go docker", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, 100.0, results[0].Score)
	assert.Equal(t, 100.0, results[1].Score)
	assert.Equal(t, closer, results[0].DocumentId)
	assert.Equal(t, farther, results[1].DocumentId)
}

func TestSearchDropsMissingProfiles(t *testing.T) {
	env := newTestEnv(t)

	kept := env.addCandidate(t, []float32{1, 0, 0, 0}, "engineer", "python")

	// Vector indexed without any profile behind it
	require.NoError(t, env.index.Add(9999, []float32{1, 0, 0, 0}))

	env.fixQuery([]float32{1, 0, 0, 0})
	env.fixKeywords()

	results, err := env.engine.Search(context.Background(), "engineer", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, kept, results[0].DocumentId)
}

func TestSearchKeywordExtractionFailureDegrades(t *testing.T) {
	env := newTestEnv(t)

	id := env.addCandidate(t, []float32{1, 0, 0, 0}, "engineer", "python")

	env.fixQuery([]float32{1, 0, 0, 0})
	env.provider.GetMockIntel().ExtractCriticalKeywordsFunc = func(ctx context.Context, query string) ([]string, error) {
		return nil, assert.AnError
	}

	results, err := env.engine.Search(context.Background(), "engineer", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, id, results[0].DocumentId)
	assert.Equal(t, results[0].SemanticScore, results[0].Score)
}

func TestSearchRespectsMaxHits(t *testing.T) {
	env := newTestEnv(t)

	env.addCandidate(t, []float32{1, 0, 0, 0}, "one", "python")
	env.addCandidate(t, []float32{0.9, 0, 0, 0}, "two", "python")
	env.addCandidate(t, []float32{0.8, 0, 0, 0}, "three", "python")

	env.fixQuery([]float32{1, 0, 0, 0})
	env.fixKeywords()

	results, err := env.engine.Search(context.Background(), "engineer", 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestSearchEmptyQuery(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.engine.Search(context.Background(), "   ", 10)
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestSearchMonitorCallbacks(t *testing.T) {
	env := newTestEnv(t)

	env.addCandidate(t, []float32{1, 0, 0, 0}, "engineer", "python")
	require.NoError(t, env.index.Add(555, []float32{1, 0, 0, 0})) // orphan vector

	env.fixQuery([]float32{1, 0, 0, 0})
	env.fixKeywords("python")

	m := &recordingMonitor{}
	results, err := env.engine.SearchWithMonitor(context.Background(), "python engineer", 10, m)
	require.NoError(t, err)

	assert.Equal(t, "python engineer", m.query)
	assert.Equal(t, []string{"python"}, m.keywords)
	assert.NotEmpty(t, m.expanded)
	assert.Len(t, m.matches, 2)
	assert.Equal(t, []core.ID{555}, m.missing)
	assert.Equal(t, len(results), m.finished)
}

type recordingMonitor struct {
	query    string
	keywords []string
	expanded string
	matches  []core.VectorMatch
	missing  []core.ID
	finished int
}

func (m *recordingMonitor) Start(query string)                   { m.query = query }
func (m *recordingMonitor) AfterKeywordExtraction(kw []string)   { m.keywords = kw }
func (m *recordingMonitor) AfterQueryExpansion(expanded string)  { m.expanded = expanded }
func (m *recordingMonitor) AfterSemanticSearch(ms []core.VectorMatch) { m.matches = ms }
func (m *recordingMonitor) MissingProfile(id core.ID)            { m.missing = append(m.missing, id) }
func (m *recordingMonitor) Finish(results []*core.SearchResult)  { m.finished = len(results) }
