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


package core

import (
	"errors"
	"fmt"
)

// Validation errors for domain records.
var (
	// ErrInvalidDocument indicates a Document failed validation.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrInvalidProfile indicates a CandidateProfile failed validation.
	ErrInvalidProfile = errors.New("invalid candidate profile")

	// ErrEmptyFilename indicates the Filename field is empty.
	ErrEmptyFilename = errors.New("filename cannot be empty")

	// ErrEmptyFullName indicates the profile FullName field is empty.
	ErrEmptyFullName = errors.New("full name cannot be empty")

	// ErrInvalidStatus indicates an unknown DocumentStatus value.
	ErrInvalidStatus = errors.New("invalid document status")
)

// ValidateDocument validates a Document according to domain rules.
//
// Validation rules:
//   - Filename must not be empty
//   - Status must be a known value
//
// NOT validated (populated by the pipeline):
//   - ExtractedText (empty until extraction runs)
//   - StoragePath (empty until archival)
//   - ID (0 is valid before the first durable write)
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}

	if doc.Filename == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyFilename)
	}

	if err := ValidateStatus(doc.Status); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	return nil
}

// ValidateProfile validates a CandidateProfile according to domain rules.
//
// Validation rules:
//   - FullName must not be empty (the structuring contract)
//   - DocumentId must reference a document
func ValidateProfile(profile *CandidateProfile) error {
	if profile == nil {
		return fmt.Errorf("%w: profile is nil", ErrInvalidProfile)
	}

	if profile.FullName == "" {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, ErrEmptyFullName)
	}

	if profile.DocumentId == 0 {
		return fmt.Errorf("%w: document id is zero", ErrInvalidProfile)
	}

	return nil
}

// ValidateStatus validates that a DocumentStatus has a known value.
func ValidateStatus(status DocumentStatus) error {
	if status < StatusValidating || status > StatusError {
		return fmt.Errorf("%w: value %d", ErrInvalidStatus, status)
	}
	return nil
}
