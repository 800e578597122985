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


// Package ai provides abstractions for the Text Intelligence Service used
// in candex.
//
// This package defines interfaces for the external language-model
// capabilities: text embeddings, résumé rewriting, profile structuring,
// query expansion, critical-keyword extraction, and vision page reading.
// The core pipeline and search engine depend on these abstractions rather
// than on concrete implementations.
//
// # Design Principles
//
// The package is designed around four key interfaces:
//
//   - Embedder: Generates vector embeddings from text
//   - TextIntel: Chat-completion based text operations
//   - PageReader: Vision transcription of rendered page images
//   - Provider: Aggregates the services for convenient initialization
//
// # Implementation Packages
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// Public constructors (openai.NewProvider, etc.) return INTERFACE types to
// enforce abstraction. Mock constructors return CONCRETE types to enable
// test assertions and behavior injection via exported function fields.
//
// # Usage Example
//
//	config := ai.NewConfig(ai.WithEmbeddingDim(1536))
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	vector, err := provider.Embedder().EmbedText(ctx, "Role: Backend Engineer...")
//	fields, err := provider.TextIntel().StructureProfile(ctx, rewritten)
package ai
