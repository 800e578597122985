package main

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/candidly/candex/ai"
)

// aiSettings holds the AI service portion of the config file. Empty
// fields fall back to the library defaults.
type aiSettings struct {
	EmbeddingHost  string `yaml:"embedding_host"`
	ChatHost       string `yaml:"chat_host"`
	EmbeddingModel string `yaml:"embedding_model"`
	ChatModel      string `yaml:"chat_model"`
	VisionModel    string `yaml:"vision_model"`
	EmbeddingDim   int    `yaml:"embedding_dim"`
}

// minioSettings holds object storage connection details. Archival of
// original files is disabled when this section is absent.
type minioSettings struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// appConfig is the root of the YAML configuration file.
type appConfig struct {
	DataDir string         `yaml:"data_dir"`
	TikaURL string         `yaml:"tika_url"`
	AI      aiSettings     `yaml:"ai"`
	Minio   *minioSettings `yaml:"minio,omitempty"`
}

func defaultAppConfig() *appConfig {
	return &appConfig{
		DataDir: "./candex_db",
		TikaURL: "http://localhost:9998",
	}
}

// loadAppConfig reads a config file. A missing file yields the defaults.
func loadAppConfig(path string) (*appConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultAppConfig(), nil
		}
		return nil, err
	}
	cfg := defaultAppConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "./candex_db"
	}
	if cfg.TikaURL == "" {
		cfg.TikaURL = "http://localhost:9998"
	}
	return cfg, nil
}

// aiConfig converts the file settings into an ai.Config, keeping the
// library defaults for anything left unset.
func (c *appConfig) aiConfig() *ai.Config {
	var opts []ai.ConfigOption
	if c.AI.EmbeddingHost != "" {
		opts = append(opts, ai.WithEmbeddingHost(c.AI.EmbeddingHost))
	}
	if c.AI.ChatHost != "" {
		opts = append(opts, ai.WithChatHost(c.AI.ChatHost))
	}
	if c.AI.EmbeddingModel != "" {
		opts = append(opts, ai.WithEmbeddingModel(c.AI.EmbeddingModel))
	}
	if c.AI.ChatModel != "" {
		opts = append(opts, ai.WithChatModel(c.AI.ChatModel))
	}
	if c.AI.VisionModel != "" {
		opts = append(opts, ai.WithVisionModel(c.AI.VisionModel))
	}
	if c.AI.EmbeddingDim > 0 {
		opts = append(opts, ai.WithEmbeddingDim(c.AI.EmbeddingDim))
	}
	return ai.NewConfig(opts...)
}
