package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"study-rag/internal/models"
)

const (
	defaultChunkSize      = 1500 // characters
	defaultChunkOverlap   = 300  // characters
	defaultTopK           = 5
	defaultFlashcardTopK  = 7
	defaultBatchSize      = 20
	defaultTimeoutSeconds = 45
	defaultMinSimilarity  = 0.3
	defaultDataDir        = "./data"
)

// LLMConfig holds the connection settings for one external service,
// either the embedding service or the inference model.
type LLMConfig struct {
	Provider       string `yaml:"provider"` // "openai" (OpenAI-compatible) or "ollama"
	BaseURL        string `yaml:"base_url"`
	Key            string `yaml:"key"`
	KeyEnv         string `yaml:"key_env"`
	Model          string `yaml:"model"`
	BatchSize      int    `yaml:"batch_size"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout returns the configured request timeout.
func (c *LLMConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type DatabaseConfig struct {
	URL   string `yaml:"url"`
	Key   string `yaml:"key"`
	Debug bool   `yaml:"debug"`
}

type RAGConfig struct {
	ChunkSize     int     `yaml:"chunk_size"`
	ChunkOverlap  int     `yaml:"chunk_overlap"`
	TopK          int     `yaml:"top_k"`
	FlashcardTopK int     `yaml:"flashcard_top_k"`
	MinSimilarity float32 `yaml:"min_similarity"`
}

type Config struct {
	DataDir  string         `yaml:"data_dir"`
	Store    string         `yaml:"store"` // "chromem" (default) or "postgres"
	Database DatabaseConfig `yaml:"database"`
	EmbedLLM LLMConfig      `yaml:"embedding"`
	InferLLM LLMConfig      `yaml:"inference"`
	RAG      RAGConfig      `yaml:"rag"`
}

// LoadConfig reads the YAML config, overlays credentials from the
// environment (a .env file is honored when present) and applies
// defaults. Missing credentials surface later, when the service that
// needs them is constructed.
func LoadConfig(path string) (*Config, error) {
	// ignore a missing .env, env vars may be set directly
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", models.ErrConfiguration, path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", models.ErrConfiguration, path, err)
	}
	cfg.applyDefaults()
	cfg.resolveKeys()
	return &cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir
	}
	if cfg.Store == "" {
		cfg.Store = "chromem"
	}
	if cfg.RAG.ChunkSize == 0 {
		cfg.RAG.ChunkSize = defaultChunkSize
	}
	if cfg.RAG.ChunkOverlap == 0 {
		cfg.RAG.ChunkOverlap = defaultChunkOverlap
	}
	if cfg.RAG.TopK == 0 {
		cfg.RAG.TopK = defaultTopK
	}
	if cfg.RAG.FlashcardTopK == 0 {
		cfg.RAG.FlashcardTopK = defaultFlashcardTopK
	}
	if cfg.RAG.MinSimilarity == 0 {
		cfg.RAG.MinSimilarity = defaultMinSimilarity
	}
	if cfg.EmbedLLM.BatchSize == 0 {
		cfg.EmbedLLM.BatchSize = defaultBatchSize
	}
	if cfg.EmbedLLM.TimeoutSeconds == 0 {
		cfg.EmbedLLM.TimeoutSeconds = defaultTimeoutSeconds
	}
	if cfg.InferLLM.TimeoutSeconds == 0 {
		cfg.InferLLM.TimeoutSeconds = defaultTimeoutSeconds
	}
}

// resolveKeys fills credentials from key_env when the literal key is
// not set in the file.
func (cfg *Config) resolveKeys() {
	if cfg.EmbedLLM.Key == "" && cfg.EmbedLLM.KeyEnv != "" {
		cfg.EmbedLLM.Key = os.Getenv(cfg.EmbedLLM.KeyEnv)
	}
	if cfg.InferLLM.Key == "" && cfg.InferLLM.KeyEnv != "" {
		cfg.InferLLM.Key = os.Getenv(cfg.InferLLM.KeyEnv)
	}
}
