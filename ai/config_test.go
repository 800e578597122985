package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, "https://api.openai.com/v1", cfg.EmbeddingHost)
	assert.Equal(t, "https://api.openai.com/v1", cfg.ChatHost)
	assert.Equal(t, "text-embedding-3-small", cfg.EmbeddingModel)
	assert.Equal(t, "gpt-4o-mini", cfg.ChatModel)
	assert.Equal(t, "gpt-4o", cfg.VisionModel)
	assert.Equal(t, 1536, cfg.EmbeddingDim)
}

func TestNewConfig(t *testing.T) {
	t.Run("with no options", func(t *testing.T) {
		cfg := NewConfig()

		assert.NotNil(t, cfg)
		// Should have default values
		assert.Equal(t, "https://api.openai.com/v1", cfg.EmbeddingHost)
		assert.Equal(t, 1536, cfg.EmbeddingDim)
	})

	t.Run("with custom host", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://custom:8080/v1"))

		assert.Equal(t, "http://custom:8080/v1", cfg.EmbeddingHost)
		assert.Equal(t, "http://custom:8080/v1", cfg.ChatHost)
	})

	t.Run("with separate hosts", func(t *testing.T) {
		cfg := NewConfig(
			WithEmbeddingHost("http://embed:8080/v1"),
			WithChatHost("http://chat:9090/v1"),
		)

		assert.Equal(t, "http://embed:8080/v1", cfg.EmbeddingHost)
		assert.Equal(t, "http://chat:9090/v1", cfg.ChatHost)
	})

	t.Run("with custom models", func(t *testing.T) {
		cfg := NewConfig(
			WithEmbeddingModel("embeddinggemma"),
			WithChatModel("qwen2.5:3b"),
			WithVisionModel("llava:13b"),
		)

		assert.Equal(t, "embeddinggemma", cfg.EmbeddingModel)
		assert.Equal(t, "qwen2.5:3b", cfg.ChatModel)
		assert.Equal(t, "llava:13b", cfg.VisionModel)
	})

	t.Run("with custom embedding dim", func(t *testing.T) {
		cfg := NewConfig(WithEmbeddingDim(768))

		assert.Equal(t, 768, cfg.EmbeddingDim)
	})

	t.Run("with multiple options", func(t *testing.T) {
		cfg := NewConfig(
			WithHost("http://localhost:11434/v1"),
			WithEmbeddingModel("embeddinggemma"),
			WithChatModel("qwen2.5:3b"),
			WithEmbeddingDim(768),
		)

		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
		assert.Equal(t, "http://localhost:11434/v1", cfg.ChatHost)
		assert.Equal(t, "embeddinggemma", cfg.EmbeddingModel)
		assert.Equal(t, "qwen2.5:3b", cfg.ChatModel)
		assert.Equal(t, 768, cfg.EmbeddingDim)
	})
}

func TestConfigNormalize(t *testing.T) {
	tests := []struct {
		name          string
		embeddingHost string
		chatHost      string
		wantEmbedding string
		wantChat      string
	}{
		{
			name:          "already has /v1",
			embeddingHost: "http://localhost:11434/v1",
			chatHost:      "http://localhost:11434/v1",
			wantEmbedding: "http://localhost:11434/v1",
			wantChat:      "http://localhost:11434/v1",
		},
		{
			name:          "missing /v1",
			embeddingHost: "http://localhost:11434",
			chatHost:      "http://localhost:11434",
			wantEmbedding: "http://localhost:11434/v1",
			wantChat:      "http://localhost:11434/v1",
		},
		{
			name:          "trailing slash",
			embeddingHost: "http://localhost:11434/",
			chatHost:      "http://localhost:11434/",
			wantEmbedding: "http://localhost:11434/v1",
			wantChat:      "http://localhost:11434/v1",
		},
		{
			name:          "empty hosts untouched",
			embeddingHost: "",
			chatHost:      "",
			wantEmbedding: "",
			wantChat:      "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				EmbeddingHost: tt.embeddingHost,
				ChatHost:      tt.chatHost,
			}
			cfg.Normalize()

			assert.Equal(t, tt.wantEmbedding, cfg.EmbeddingHost)
			assert.Equal(t, tt.wantChat, cfg.ChatHost)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		cfg := NewConfig()
		assert.NoError(t, cfg.Validate())
	})

	t.Run("normalizes before validating", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://localhost:11434"))
		assert.NoError(t, cfg.Validate())
		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	})

	t.Run("missing fields", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(*Config)
		}{
			{"no embedding host", func(c *Config) { c.EmbeddingHost = "" }},
			{"no chat host", func(c *Config) { c.ChatHost = "" }},
			{"no embedding model", func(c *Config) { c.EmbeddingModel = "" }},
			{"no chat model", func(c *Config) { c.ChatModel = "" }},
			{"no vision model", func(c *Config) { c.VisionModel = "" }},
			{"zero embedding dim", func(c *Config) { c.EmbeddingDim = 0 }},
			{"negative embedding dim", func(c *Config) { c.EmbeddingDim = -1 }},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				cfg := NewConfig()
				tt.mutate(cfg)
				assert.Error(t, cfg.Validate())
			})
		}
	})
}
