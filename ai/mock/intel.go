package mock

import (
	"context"
	"strings"

	"github.com/candidly/candex/ai"
)

// MockTextIntel is a test double for ai.TextIntel.
// It allows custom behavior injection via function fields.
type MockTextIntel struct {
	// RewriteFunc is called by Rewrite if set.
	// If nil, returns the input text unchanged.
	RewriteFunc func(ctx context.Context, text string) (string, error)

	// StructureProfileFunc is called by StructureProfile if set.
	// If nil, uses default simple field derivation.
	StructureProfileFunc func(ctx context.Context, text string) (*ai.ProfileFields, error)

	// ExpandQueryFunc is called by ExpandQuery if set.
	// If nil, returns the query unchanged.
	ExpandQueryFunc func(ctx context.Context, query string) (string, error)

	// ExtractCriticalKeywordsFunc is called by ExtractCriticalKeywords if set.
	// If nil, uses default word splitting.
	ExtractCriticalKeywordsFunc func(ctx context.Context, query string) ([]string, error)

	callCount int
}

// NewMockTextIntel creates a mock text intelligence service with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockIntel().
func NewMockTextIntel() *MockTextIntel {
	return &MockTextIntel{}
}

// Rewrite returns the input text unchanged by default.
func (m *MockTextIntel) Rewrite(ctx context.Context, text string) (string, error) {
	m.callCount++

	if m.RewriteFunc != nil {
		return m.RewriteFunc(ctx, text)
	}

	return text, nil
}

// StructureProfile derives simple profile fields from the text.
// Default behavior: the first two words become the full name, subsequent
// words become key skills.
func (m *MockTextIntel) StructureProfile(ctx context.Context, text string) (*ai.ProfileFields, error) {
	m.callCount++

	if m.StructureProfileFunc != nil {
		return m.StructureProfileFunc(ctx, text)
	}

	words := strings.Fields(text)
	fields := &ai.ProfileFields{}

	if len(words) >= 2 {
		fields.FullName = words[0] + " " + words[1]
	} else if len(words) == 1 {
		fields.FullName = words[0]
	}

	skills := make([]string, 0, 5)
	for i, word := range words {
		if i < 2 {
			continue
		}
		if len(skills) >= 5 {
			break
		}
		word = strings.ToLower(strings.Trim(word, ".,!?;:\"'()[]{}"))
		if word != "" {
			skills = append(skills, word)
		}
	}
	fields.KeySkills = skills

	return fields, nil
}

// ExpandQuery returns the query unchanged by default.
func (m *MockTextIntel) ExpandQuery(ctx context.Context, query string) (string, error) {
	m.callCount++

	if m.ExpandQueryFunc != nil {
		return m.ExpandQueryFunc(ctx, query)
	}

	return query, nil
}

// ExtractCriticalKeywords splits the query into lower-case words by default.
func (m *MockTextIntel) ExtractCriticalKeywords(ctx context.Context, query string) ([]string, error) {
	m.callCount++

	if m.ExtractCriticalKeywordsFunc != nil {
		return m.ExtractCriticalKeywordsFunc(ctx, query)
	}

	words := strings.Fields(strings.ToLower(query))
	keywords := make([]string, 0, len(words))
	for _, word := range words {
		word = strings.Trim(word, ".,!?;:\"'()[]{}")
		if word != "" {
			keywords = append(keywords, word)
		}
	}

	return keywords, nil
}

// CallCount returns the number of times any method was called.
func (m *MockTextIntel) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockTextIntel) Reset() {
	m.callCount = 0
	m.RewriteFunc = nil
	m.StructureProfileFunc = nil
	m.ExpandQueryFunc = nil
	m.ExtractCriticalKeywordsFunc = nil
}
