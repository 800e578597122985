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


package profile

import (
	"context"
	"log/slog"
	"strings"

	"github.com/candidly/candex/ai"
	"github.com/candidly/candex/core"
)

// Builder turns raw extracted text into a structured candidate profile.
type Builder struct {
	intel  ai.TextIntel
	logger *slog.Logger
}

// NewBuilder creates a profile builder on top of the given text
// intelligence service.
func NewBuilder(intel ai.TextIntel) *Builder {
	return &Builder{
		intel:  intel,
		logger: slog.Default().With("component", "profile"),
	}
}

// Build rewrites the extracted text into the canonical layout, structures
// it into profile fields, and maps them onto a CandidateProfile.
//
// Returns the profile together with the rewritten text; the rewritten text
// is what downstream embedding should use. A structured result without a
// full name means the model could not read the document as a résumé and
// yields core.ErrProfileStructuringFailed.
func (b *Builder) Build(ctx context.Context, documentID core.ID, text string) (*core.CandidateProfile, string, error) {
	rewritten, err := b.intel.Rewrite(ctx, text)
	if err != nil {
		return nil, "", err
	}

	fields, err := b.intel.StructureProfile(ctx, rewritten)
	if err != nil {
		return nil, rewritten, err
	}

	if strings.TrimSpace(fields.FullName) == "" {
		b.logger.Warn("structured profile has no full name", "document_id", documentID)
		return nil, rewritten, core.ErrProfileStructuringFailed
	}

	p := mapFields(documentID, fields)
	if err := core.ValidateProfile(p); err != nil {
		return nil, rewritten, err
	}

	return p, rewritten, nil
}

// mapFields converts model output into the domain profile.
func mapFields(documentID core.ID, fields *ai.ProfileFields) *core.CandidateProfile {
	p := &core.CandidateProfile{
		DocumentId:      documentID,
		FullName:        strings.TrimSpace(fields.FullName),
		CurrentTitle:    strings.TrimSpace(fields.CurrentTitle),
		PrimarySkill:    strings.ToLower(strings.TrimSpace(fields.PrimarySkill)),
		YearsExperience: fields.YearsExperience,
		Summary:         strings.TrimSpace(fields.Summary),
	}

	p.KeySkills = make([]string, 0, len(fields.KeySkills))
	for _, skill := range fields.KeySkills {
		skill = strings.ToLower(strings.TrimSpace(skill))
		if skill != "" {
			p.KeySkills = append(p.KeySkills, skill)
		}
	}

	p.Experience = make([]core.ExperienceEntry, 0, len(fields.Experience))
	for _, e := range fields.Experience {
		p.Experience = append(p.Experience, core.ExperienceEntry{
			Title:       strings.TrimSpace(e.Title),
			Employer:    strings.TrimSpace(e.Employer),
			StartYear:   e.StartYear,
			EndYear:     normalizeEndYear(e.EndYear),
			Description: strings.TrimSpace(e.Description),
		})
	}

	p.Education = make([]core.EducationEntry, 0, len(fields.Education))
	for _, e := range fields.Education {
		p.Education = append(p.Education, core.EducationEntry{
			Degree:      strings.TrimSpace(e.Degree),
			Institution: strings.TrimSpace(e.Institution),
			StartYear:   e.StartYear,
			EndYear:     normalizeEndYear(e.EndYear),
			Description: strings.TrimSpace(e.Description),
		})
	}

	return p
}

// normalizeEndYear maps empty or ongoing entries to "present".
func normalizeEndYear(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "now" || s == "current" || s == "ongoing" {
		return "present"
	}
	return s
}
