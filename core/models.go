package core

import (
	"time"
)

// ID is a unique identifier for domain entities, assigned by the
// document store sequence at first durable write.
type ID uint64

// DocumentStatus tracks a document through the intake pipeline.
type DocumentStatus int

const (
	// StatusValidating is the initial state before any extraction attempt.
	StatusValidating DocumentStatus = iota + 1
	// StatusExtractingStandard means the cheap structural extractor is running.
	StatusExtractingStandard
	// StatusAwaitingVisionDecision means standard extraction produced too
	// little text and the pipeline is paused for an external continue-or-skip
	// decision. Documents may sit in this state indefinitely.
	StatusAwaitingVisionDecision
	// StatusExtractingVision means the expensive vision fallback is running.
	StatusExtractingVision
	// StatusProcessed is the terminal success state.
	StatusProcessed
	// StatusProcessedWithProfileError means extraction succeeded but no
	// candidate profile could be structured. The document is kept but is
	// not searchable.
	StatusProcessedWithProfileError
	// StatusError is the terminal failure state.
	StatusError
)

// String returns the storage name of the status.
func (s DocumentStatus) String() string {
	switch s {
	case StatusValidating:
		return "validating"
	case StatusExtractingStandard:
		return "extracting_standard"
	case StatusAwaitingVisionDecision:
		return "awaiting_vision_decision"
	case StatusExtractingVision:
		return "extracting_vision"
	case StatusProcessed:
		return "processed"
	case StatusProcessedWithProfileError:
		return "processed_with_profile_error"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Terminal reports whether the status is a pipeline end state.
func (s DocumentStatus) Terminal() bool {
	return s == StatusProcessed || s == StatusProcessedWithProfileError || s == StatusError
}

// Document represents one ingested résumé file and its pipeline state.
type Document struct {
	Id            ID
	Filename      string
	Fingerprint   string // BLAKE2b hex of the original file content
	Status        DocumentStatus
	FailureReason string // Set when Status is StatusError
	ExtractedText string // Clean text after extraction and rewrite
	CharCount     int
	VisionUsed    bool   // The vision fallback produced the text
	IndexPending  bool   // Embedding exists but could not be indexed yet
	StoragePath   string // Object storage key after successful archival
	InsertedAt    time.Time
	UpdatedAt     time.Time
}

// ExperienceEntry is one position in a candidate's work history.
type ExperienceEntry struct {
	Title       string
	Employer    string
	StartYear   int
	EndYear     string // Year or "present"
	Description string
}

// EducationEntry is one entry in a candidate's education history.
type EducationEntry struct {
	Degree      string
	Institution string
	StartYear   int
	EndYear     string
	Description string
}

// CandidateProfile is the structured profile derived from a processed
// document. A profile exists only for documents that reached
// StatusProcessed; DocumentId is the owning document's id.
type CandidateProfile struct {
	DocumentId      ID
	FullName        string
	CurrentTitle    string
	PrimarySkill    string
	YearsExperience int
	Summary         string
	KeySkills       []string
	Experience      []ExperienceEntry
	Education       []EducationEntry
	InsertedAt      time.Time
	UpdatedAt       time.Time
}

// VectorMatch is one nearest-neighbor hit from the similarity index.
type VectorMatch struct {
	DocumentId ID
	Distance   float32
}

// SearchResult is a ranked hybrid-search hit. Score is the fused score in
// [0,100]; SemanticScore and ExactScore are the raw components kept for
// transparency.
type SearchResult struct {
	DocumentId      ID
	Filename        string
	Score           float64
	SemanticScore   float64
	ExactScore      float64
	Profile         *CandidateProfile
	FoundKeywords   []string
	MissingKeywords []string
}
