package core

import (
	"errors"
	"testing"
)

func TestValidateDocument(t *testing.T) {
	tests := []struct {
		name    string
		doc     *Document
		wantErr error
	}{
		{
			name: "valid document",
			doc: &Document{
				Id:       1,
				Filename: "resume.pdf",
				Status:   StatusValidating,
			},
			wantErr: nil,
		},
		{
			name: "valid document with ID 0",
			doc: &Document{
				Id:       0,
				Filename: "resume.pdf",
				Status:   StatusValidating,
			},
			wantErr: nil,
		},
		{
			name: "valid terminal document",
			doc: &Document{
				Id:            3,
				Filename:      "resume.pdf",
				Status:        StatusError,
				FailureReason: "extract: insufficient extracted text",
			},
			wantErr: nil,
		},
		{
			name:    "nil document",
			doc:     nil,
			wantErr: ErrInvalidDocument,
		},
		{
			name: "empty filename",
			doc: &Document{
				Id:     1,
				Status: StatusValidating,
			},
			wantErr: ErrEmptyFilename,
		},
		{
			name: "unknown status",
			doc: &Document{
				Id:       1,
				Filename: "resume.pdf",
				Status:   DocumentStatus(999),
			},
			wantErr: ErrInvalidStatus,
		},
		{
			name: "zero status",
			doc: &Document{
				Id:       1,
				Filename: "resume.pdf",
			},
			wantErr: ErrInvalidStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocument(tt.doc)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateDocument() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateDocument() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateProfile(t *testing.T) {
	tests := []struct {
		name    string
		profile *CandidateProfile
		wantErr error
	}{
		{
			name: "valid profile",
			profile: &CandidateProfile{
				DocumentId: 1,
				FullName:   "Jane Doe",
			},
			wantErr: nil,
		},
		{
			name: "valid profile with skills",
			profile: &CandidateProfile{
				DocumentId:   2,
				FullName:     "John Smith",
				PrimarySkill: "go",
				KeySkills:    []string{"go", "kubernetes", "postgresql"},
			},
			wantErr: nil,
		},
		{
			name:    "nil profile",
			profile: nil,
			wantErr: ErrInvalidProfile,
		},
		{
			name: "empty full name",
			profile: &CandidateProfile{
				DocumentId: 1,
			},
			wantErr: ErrEmptyFullName,
		},
		{
			name: "zero document id",
			profile: &CandidateProfile{
				FullName: "Jane Doe",
			},
			wantErr: ErrInvalidProfile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProfile(tt.profile)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateProfile() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateProfile() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateStatus(t *testing.T) {
	for s := StatusValidating; s <= StatusError; s++ {
		if err := ValidateStatus(s); err != nil {
			t.Errorf("ValidateStatus(%v) unexpected error: %v", s, err)
		}
	}

	if err := ValidateStatus(DocumentStatus(0)); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("ValidateStatus(0) error = %v, want %v", err, ErrInvalidStatus)
	}
	if err := ValidateStatus(StatusError + 1); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("ValidateStatus(out of range) error = %v, want %v", err, ErrInvalidStatus)
	}
}
