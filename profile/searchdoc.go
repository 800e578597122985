package profile

import (
	"fmt"
	"strings"

	"github.com/candidly/candex/core"
)

// SearchDocument renders the profile into the canonical text that gets
// embedded. Queries are expanded into the same shape, so the layout here
// and in the query expansion prompt must stay in sync.
func SearchDocument(p *core.CandidateProfile) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Role: %s\n", p.CurrentTitle)
	fmt.Fprintf(&b, "Primary skill: %s\n", p.PrimarySkill)
	fmt.Fprintf(&b, "Key skills: %s\n", strings.Join(p.KeySkills, ", "))
	fmt.Fprintf(&b, "Professional summary: %s", p.Summary)

	return b.String()
}

// FullText flattens every textual field of the profile into the haystack
// for exact keyword matching. A technology named only in a job history
// entry still counts as a match, so experience and education entries are
// included alongside the name, title, skills and summary.
func FullText(p *core.CandidateProfile) string {
	var b strings.Builder

	line := func(s string) {
		if s != "" {
			b.WriteString(s)
			b.WriteByte('\n')
		}
	}

	line(p.FullName)
	line(p.CurrentTitle)
	line(p.PrimarySkill)
	line(strings.Join(p.KeySkills, ", "))
	line(p.Summary)

	for _, e := range p.Experience {
		line(e.Title)
		line(e.Employer)
		line(e.Description)
	}
	for _, e := range p.Education {
		line(e.Degree)
		line(e.Institution)
		line(e.Description)
	}

	return b.String()
}
