package embedding

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"study-rag/internal/config"
	"study-rag/internal/models"
)

// Embedder converts text into fixed-dimensionality vectors. Satisfied
// by langchaingo's EmbedderImpl; faked in tests.
type Embedder interface {
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// NewEmbedder creates a new embedder for the configured provider.
// Batching of document embeddings is handled by langchaingo using the
// configured batch size.
func NewEmbedder(cfg *config.LLMConfig) (Embedder, error) {
	client, err := newClient(cfg)
	if err != nil {
		return nil, err
	}
	embedder, err := embeddings.NewEmbedder(client,
		embeddings.WithBatchSize(cfg.BatchSize),
		embeddings.WithStripNewLines(true),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: creating embedder: %v", models.ErrConfiguration, err)
	}
	return embedder, nil
}

func newClient(cfg *config.LLMConfig) (embeddings.EmbedderClient, error) {
	switch cfg.Provider {
	case "", "openai":
		if cfg.Key == "" {
			return nil, fmt.Errorf("%w: no API key for embedding service", models.ErrConfiguration)
		}
		llm, err := openai.New(
			openai.WithBaseURL(cfg.BaseURL),
			openai.WithToken(strings.TrimPrefix(cfg.Key, "Bearer ")),
			openai.WithModel(cfg.Model),
			openai.WithEmbeddingModel(cfg.Model),
		)
		if err != nil {
			return nil, fmt.Errorf("%w: initializing embedding client: %v", models.ErrConfiguration, err)
		}
		return llm, nil
	case "ollama":
		llm, err := ollama.New(
			ollama.WithServerURL(cfg.BaseURL),
			ollama.WithModel(cfg.Model),
		)
		if err != nil {
			return nil, fmt.Errorf("%w: initializing embedding client: %v", models.ErrConfiguration, err)
		}
		return llm, nil
	default:
		return nil, fmt.Errorf("%w: unknown embedding provider %q", models.ErrConfiguration, cfg.Provider)
	}
}

// EmbedChunks embeds every chunk and pairs it with its metadata. The
// whole batch is bounded by the configured timeout.
func EmbedChunks(ctx context.Context, embedder Embedder, cfg *config.LLMConfig, filename string, chunks []models.Chunk) ([]models.ChunkEmbedding, error) {
	if len(chunks) == 0 {
		log.Info().Msg("No chunks generated from content")
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout())
	defer cancel()

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Content
	}

	vectors, err := embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrEmbeddingService, err)
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("%w: got %d vectors for %d chunks", models.ErrEmbeddingService, len(vectors), len(chunks))
	}

	chunkEmbeddings := make([]models.ChunkEmbedding, len(chunks))
	for i, chunk := range chunks {
		source := chunk.Source
		if source == "" {
			source = filename
		}
		chunkEmbeddings[i] = models.ChunkEmbedding{
			Content:        chunk.Content,
			Embedding:      vectors[i],
			SourceFilename: source,
			PageNumber:     chunk.PageNumber,
			ChunkID:        chunk.ChunkID,
		}
	}
	return chunkEmbeddings, nil
}

// EmbedQuery embeds a single query string, bounded by the configured
// timeout.
func EmbedQuery(ctx context.Context, embedder Embedder, cfg *config.LLMConfig, query string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout())
	defer cancel()

	vector, err := embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrEmbeddingService, err)
	}
	return vector, nil
}
