package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"study-rag/internal/models"
)

func TestLoadConfig_DefaultsAndEnvKey(t *testing.T) {
	t.Setenv("TEST_EMBED_KEY", "sk-test")

	yaml := `
data_dir: ./testdata
embedding:
  provider: openai
  key_env: TEST_EMBED_KEY
  model: text-embedding-3-small
inference:
  provider: ollama
  base_url: http://localhost:11434
  model: llama3
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.EmbedLLM.Key != "sk-test" {
		t.Fatalf("key not resolved from env: %q", cfg.EmbedLLM.Key)
	}
	if cfg.Store != "chromem" {
		t.Fatalf("default store not applied: %q", cfg.Store)
	}
	if cfg.RAG.ChunkSize != defaultChunkSize || cfg.RAG.ChunkOverlap != defaultChunkOverlap {
		t.Fatalf("chunking defaults not applied: %+v", cfg.RAG)
	}
	if cfg.RAG.TopK != defaultTopK || cfg.RAG.FlashcardTopK != defaultFlashcardTopK {
		t.Fatalf("retrieval defaults not applied: %+v", cfg.RAG)
	}
	if cfg.EmbedLLM.BatchSize != defaultBatchSize {
		t.Fatalf("batch size default not applied: %d", cfg.EmbedLLM.BatchSize)
	}
	if cfg.InferLLM.TimeoutSeconds != defaultTimeoutSeconds {
		t.Fatalf("timeout default not applied: %d", cfg.InferLLM.TimeoutSeconds)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, models.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("rag: [not: a map"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := LoadConfig(path)
	if !errors.Is(err, models.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}
