package search

import "github.com/candidly/candex/core"

// Monitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type Monitor interface {
	Start(query string)
	AfterKeywordExtraction(keywords []string)
	AfterQueryExpansion(expanded string)
	AfterSemanticSearch(matches []core.VectorMatch)
	MissingProfile(id core.ID)
	Finish(results []*core.SearchResult)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                          {}
func (n *noopMonitor) AfterKeywordExtraction(_ []string)       {}
func (n *noopMonitor) AfterQueryExpansion(_ string)            {}
func (n *noopMonitor) AfterSemanticSearch(_ []core.VectorMatch) {}
func (n *noopMonitor) MissingProfile(_ core.ID)                {}
func (n *noopMonitor) Finish(_ []*core.SearchResult)           {}
