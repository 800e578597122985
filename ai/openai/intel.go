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
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/candidly/candex/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// TextIntel implements ai.TextIntel using OpenAI-compatible chat APIs.
type TextIntel struct {
	client llms.Model
	logger *slog.Logger
}

// structureAttempts bounds re-prompting on malformed JSON. There is no
// backoff: a malformed response is a model problem, not a transient one.
const structureAttempts = 3

// newTextIntel is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newTextIntel(config *ai.Config) (*TextIntel, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.ChatHost),
		openai.WithModel(config.ChatModel),
	)
	if err != nil {
		return nil, err
	}

	return &TextIntel{
		client: client,
		logger: slog.Default().With("component", "openai-intel"),
	}, nil
}

// NewTextIntel creates a new text intelligence service using the provided
// configuration.
//
// Returns ai.TextIntel interface to enforce abstraction.
func NewTextIntel(config *ai.Config) (ai.TextIntel, error) {
	return newTextIntel(config)
}

// Rewrite reformats extracted résumé text into the fixed section layout.
func (t *TextIntel) Rewrite(ctx context.Context, text string) (string, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart("You are an assistant that rewrites résumé text into a fixed structured layout. Follow the given layout strictly."),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(rewritePrompt + text),
			},
		},
	}

	response, err := t.client.GenerateContent(ctx, content, llms.WithTemperature(0.2))
	if err != nil {
		t.logger.Error("rewrite call failed", "err", err)
		return "", err
	}
	if len(response.Choices) < 1 {
		return "", fmt.Errorf("rewrite returned no choices")
	}

	return strings.TrimSpace(response.Choices[0].Content), nil
}

// StructureProfile converts rewritten text into structured profile fields.
// The model response is parsed strictly; common JSON defects are repaired
// and the call is re-prompted up to structureAttempts times.
func (t *TextIntel) StructureProfile(ctx context.Context, text string) (*ai.ProfileFields, error) {
	prompt := fmt.Sprintf(structurePromptTemplate, structureResponseSchema) + text
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart("You are an assistant that converts structured résumé text into JSON."),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(prompt),
			},
		},
	}

	var fields ai.ProfileFields
	var lastErr error
	for attempt := 0; attempt < structureAttempts; attempt++ {
		response, err := t.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			t.logger.Error("structure call failed", "attempt", attempt+1, "err", err)
			return nil, err
		}

		if len(response.Choices) < 1 {
			return nil, fmt.Errorf("structure returned no choices")
		}

		responseText := stripCodeFences(response.Choices[0].Content)
		responseText = repairJSON(responseText)

		if err := json.Unmarshal([]byte(responseText), &fields); err != nil {
			lastErr = err
			t.logger.Warn("error parsing structure response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		lastErr = nil
		break
	}

	if lastErr != nil {
		t.logger.Error("failed to parse structure response after retries", "err", lastErr)
		return nil, lastErr
	}

	return &fields, nil
}

// ExpandQuery produces a denser profile-shaped query string.
func (t *TextIntel) ExpandQuery(ctx context.Context, query string) (string, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(expandQueryPrompt + query),
			},
		},
	}

	response, err := t.client.GenerateContent(ctx, content, llms.WithTemperature(0.3))
	if err != nil {
		t.logger.Error("query expansion failed", "err", err)
		return "", err
	}
	if len(response.Choices) < 1 {
		return "", fmt.Errorf("query expansion returned no choices")
	}

	return strings.TrimSpace(response.Choices[0].Content), nil
}

// ExtractCriticalKeywords identifies must-match query terms in canonical
// lower-case form.
func (t *TextIntel) ExtractCriticalKeywords(ctx context.Context, query string) ([]string, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(keywordsPrompt + query),
			},
		},
	}

	response, err := t.client.GenerateContent(ctx, content, llms.WithTemperature(0.0))
	if err != nil {
		t.logger.Error("keyword extraction failed", "err", err)
		return nil, err
	}
	if len(response.Choices) < 1 {
		return []string{}, nil
	}

	responseText := stripCodeFences(response.Choices[0].Content)

	var raw []string
	if err := json.Unmarshal([]byte(responseText), &raw); err != nil {
		t.logger.Warn("error parsing keyword response", "response", responseText, "err", err)
		return nil, err
	}

	keywords := make([]string, 0, len(raw))
	for _, kw := range raw {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			keywords = append(keywords, kw)
		}
	}

	t.logger.Debug("extracted critical keywords", "count", len(keywords))
	return keywords, nil
}

// stripCodeFences removes markdown code fences some models wrap around JSON.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
