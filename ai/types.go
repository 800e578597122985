package ai

// ProfileFields is the structured output of the profile structuring call.
// It is a strict value type: every member has a zero default so a partially
// filled service response still produces a well-formed value. The consumer
// decides whether the result is usable (a non-empty FullName is the minimum
// contract).
type ProfileFields struct {
	// FullName is the candidate's name exactly as written in the document.
	FullName string `json:"full_name"`

	// CurrentTitle is the candidate's most recent job title.
	CurrentTitle string `json:"current_title"`

	// PrimarySkill is the single strongest skill.
	PrimarySkill string `json:"primary_skill"`

	// YearsExperience is the total years of professional experience.
	YearsExperience int `json:"years_experience"`

	// Summary is a short free-text professional description.
	Summary string `json:"summary"`

	// KeySkills lists the candidate's key skills in document order.
	KeySkills []string `json:"key_skills"`

	// Experience lists work-history entries in document order.
	Experience []ExperienceFields `json:"experience"`

	// Education lists education entries in document order.
	Education []EducationFields `json:"education"`
}

// ExperienceFields is one structured work-history entry.
type ExperienceFields struct {
	Title       string `json:"title"`
	Employer    string `json:"employer"`
	StartYear   int    `json:"start_year"`
	EndYear     string `json:"end_year"` // Year or "present"
	Description string `json:"description"`
}

// EducationFields is one structured education entry.
type EducationFields struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	StartYear   int    `json:"start_year"`
	EndYear     string `json:"end_year"`
	Description string `json:"description"`
}
