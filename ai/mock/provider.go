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


package mock

import "github.com/candidly/candex/ai"

// MockProvider is a test double for ai.Provider.
// It aggregates mock embedder, intel and page reader instances.
type MockProvider struct {
	embedder *MockEmbedder
	intel    *MockTextIntel
	reader   *MockPageReader
}

// NewMockProvider creates a new mock provider with default mock services.
//
// Returns ai.Provider interface for consistency with production constructors.
// Use GetMockEmbedder()/GetMockIntel()/GetMockReader() to access concrete
// types for test assertions.
func NewMockProvider() ai.Provider {
	return &MockProvider{
		embedder: NewMockEmbedder(),
		intel:    NewMockTextIntel(),
		reader:   NewMockPageReader(),
	}
}

// NewMockProviderWithServices creates a mock provider with custom mock services.
// This allows full control over the behavior of each service.
func NewMockProviderWithServices(embedder *MockEmbedder, intel *MockTextIntel, reader *MockPageReader) ai.Provider {
	return &MockProvider{
		embedder: embedder,
		intel:    intel,
		reader:   reader,
	}
}

// Embedder returns the mock embedder.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.embedder
}

// TextIntel returns the mock text intelligence service.
func (p *MockProvider) TextIntel() ai.TextIntel {
	return p.intel
}

// PageReader returns the mock page reader.
func (p *MockProvider) PageReader() ai.PageReader {
	return p.reader
}

// Close is a no-op for mock provider.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockEmbedder returns the underlying mock embedder for test assertions.
// This allows tests to check call counts and inject custom behavior.
func (p *MockProvider) GetMockEmbedder() *MockEmbedder {
	return p.embedder
}

// GetMockIntel returns the underlying mock text intelligence service for
// test assertions.
func (p *MockProvider) GetMockIntel() *MockTextIntel {
	return p.intel
}

// GetMockReader returns the underlying mock page reader for test assertions.
func (p *MockProvider) GetMockReader() *MockPageReader {
	return p.reader
}
