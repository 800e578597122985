package openai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/candidly/candex/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// PageReader implements ai.PageReader by sending rendered page images to a
// vision-capable chat model.
type PageReader struct {
	client llms.Model
	logger *slog.Logger
}

func newPageReader(config *ai.Config) (*PageReader, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.ChatHost),
		openai.WithModel(config.VisionModel),
	)
	if err != nil {
		return nil, err
	}

	return &PageReader{
		client: client,
		logger: slog.Default().With("component", "openai-vision"),
	}, nil
}

// NewPageReader creates a new page reader using the provided configuration.
//
// Returns ai.PageReader interface to enforce abstraction.
func NewPageReader(config *ai.Config) (ai.PageReader, error) {
	return newPageReader(config)
}

// ReadPage transcribes a single rendered page image into plain text.
// The image must be PNG-encoded.
func (r *PageReader) ReadPage(ctx context.Context, image []byte) (string, error) {
	if len(image) == 0 {
		return "", fmt.Errorf("empty page image")
	}

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(readPagePrompt),
				llms.BinaryPart("image/png", image),
			},
		},
	}

	response, err := r.client.GenerateContent(ctx, content, llms.WithTemperature(0.0))
	if err != nil {
		r.logger.Error("page transcription failed", "err", err)
		return "", err
	}
	if len(response.Choices) < 1 {
		return "", fmt.Errorf("page transcription returned no choices")
	}

	return strings.TrimSpace(response.Choices[0].Content), nil
}
