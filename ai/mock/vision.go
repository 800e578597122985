package mock

import (
	"context"
	"fmt"
)

// MockPageReader is a test double for ai.PageReader.
// It allows custom behavior injection via function fields.
type MockPageReader struct {
	// ReadPageFunc is called by ReadPage if set.
	// If nil, returns a deterministic placeholder transcription.
	ReadPageFunc func(ctx context.Context, image []byte) (string, error)

	callCount int
}

// NewMockPageReader creates a mock page reader with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockReader().
func NewMockPageReader() *MockPageReader {
	return &MockPageReader{}
}

// ReadPage returns a deterministic transcription derived from the image size.
func (m *MockPageReader) ReadPage(ctx context.Context, image []byte) (string, error) {
	m.callCount++

	if m.ReadPageFunc != nil {
		return m.ReadPageFunc(ctx, image)
	}

	return fmt.Sprintf("transcribed page (%d bytes)", len(image)), nil
}

// CallCount returns the number of times ReadPage was called.
func (m *MockPageReader) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockPageReader) Reset() {
	m.callCount = 0
	m.ReadPageFunc = nil
}
