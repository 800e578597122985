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


package openai

import (
	"log/slog"

	"github.com/candidly/candex/ai"
)

// Provider implements ai.Provider using OpenAI-compatible services.
// It manages embedder, text intelligence, and page reader instances.
type Provider struct {
	config   *ai.Config
	embedder *Embedder
	intel    *TextIntel
	reader   *PageReader
	logger   *slog.Logger
}

// NewProvider creates a new provider backed by OpenAI-compatible services.
// The config is validated and normalized before use.
//
// Returns ai.Provider interface (not *Provider) to enforce abstraction
// and prevent coupling to OpenAI-specific implementation details.
func NewProvider(config *ai.Config) (ai.Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	embedder, err := newEmbedder(config)
	if err != nil {
		return nil, err
	}

	intel, err := newTextIntel(config)
	if err != nil {
		return nil, err
	}

	reader, err := newPageReader(config)
	if err != nil {
		return nil, err
	}

	return &Provider{
		config:   config,
		embedder: embedder,
		intel:    intel,
		reader:   reader,
		logger:   slog.Default().With("component", "openai-provider"),
	}, nil
}

// Embedder returns the text embedding service.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// TextIntel returns the language-model text service.
func (p *Provider) TextIntel() ai.TextIntel {
	return p.intel
}

// PageReader returns the vision page-reading service.
func (p *Provider) PageReader() ai.PageReader {
	return p.reader
}

// Close releases resources held by the provider.
// Currently a no-op as the underlying clients don't require explicit cleanup.
func (p *Provider) Close() error {
	p.logger.Debug("closing OpenAI provider")
	return nil
}
