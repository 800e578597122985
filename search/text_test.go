package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchKeywordsWholeWord(t *testing.T) {
	doc := "Role: Frontend Engineer\nKey skills: javascript, react\nProfessional summary: builds UIs"

	found, missing := MatchKeywords(doc, []string{"java", "javascript", "react"})
	assert.Equal(t, []string{"javascript", "react"}, found)
	assert.Equal(t, []string{"java"}, missing)
}

func TestMatchKeywordsCaseInsensitive(t *testing.T) {
	doc := "Key skills: Python, PostgreSQL"

	found, missing := MatchKeywords(doc, []string{"python", "postgresql"})
	assert.Len(t, found, 2)
	assert.Empty(t, missing)
}

func TestMatchKeywordsLowercasesKeywords(t *testing.T) {
	doc := "Key skills: docker, kubernetes"

	found, missing := MatchKeywords(doc, []string{"Docker", "KUBERNETES"})
	assert.Equal(t, []string{"docker", "kubernetes"}, found)
	assert.Empty(t, missing)
}

func TestMatchKeywordsPunctuatedTerms(t *testing.T) {
	doc := "Key skills: c++, c#, node.js"

	found, missing := MatchKeywords(doc, []string{"c++", "c#", "node.js"})
	assert.Contains(t, found, "c++")
	assert.Contains(t, found, "c#")
	assert.Contains(t, found, "node.js")
	assert.Empty(t, missing)
}

func TestMatchKeywordsEmpty(t *testing.T) {
	found, missing := MatchKeywords("some document", nil)
	assert.Empty(t, found)
	assert.Empty(t, missing)

	found, missing = MatchKeywords("some document", []string{""})
	assert.Empty(t, found)
	assert.Empty(t, missing)
}
