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

// Failure taxonomy for the intake pipeline and the index.
var (
	// ErrInvalidFormat indicates the file is not a well-formed document of
	// the expected type. Fatal for the document, no retry.
	ErrInvalidFormat = errors.New("invalid document format")

	// ErrInsufficientText indicates extraction produced too little text
	// after the vision fallback was exhausted (or skipped). Fatal.
	ErrInsufficientText = errors.New("insufficient extracted text")

	// ErrProfileStructuringFailed indicates the structuring service did not
	// return a usable profile. Non-fatal: the document stays processed but
	// unsearchable.
	ErrProfileStructuringFailed = errors.New("profile structuring failed")

	// ErrDimensionMismatch indicates a vector does not match the index
	// dimension. A configuration error that should not occur in steady state.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrIndexUnavailable indicates an embedding was generated but could not
	// be added to the similarity index. The document is marked processed
	// with indexing deferred rather than failed.
	ErrIndexUnavailable = errors.New("vector index unavailable")

	// ErrDuplicateDocument indicates a file with the same content
	// fingerprint was already ingested.
	ErrDuplicateDocument = errors.New("document already ingested")
)

// ServiceError wraps a Text Intelligence Service failure with the name of
// the pipeline stage that issued the call. It is always propagated to the
// caller; retrying is the caller's decision.
type ServiceError struct {
	Stage string
	Err   error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("text intelligence service failed at %s: %v", e.Stage, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError wraps err with the originating stage name.
func NewServiceError(stage string, err error) *ServiceError {
	return &ServiceError{Stage: stage, Err: err}
}
