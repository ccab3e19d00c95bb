package rag

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"study-rag/internal/chunker"
	"study-rag/internal/config"
	"study-rag/internal/embedding"
	"study-rag/internal/helper"
	"study-rag/internal/llmservice"
	"study-rag/internal/parser"
	"study-rag/internal/store"
)

// Index is a handle to an open vector index for one document.
type Index struct {
	Key   string
	Store store.Store
}

// Pipeline orchestrates ingestion, retrieval and generation. It holds
// no per-document state; every operation takes the index explicitly.
type Pipeline struct {
	embedder  embedding.Embedder
	completer llmservice.Completer
	cfg       *config.Config
}

func NewPipeline(embedder embedding.Embedder, completer llmservice.Completer, cfg *config.Config) *Pipeline {
	return &Pipeline{embedder: embedder, completer: completer, cfg: cfg}
}

// BuildIndex ingests raw file bytes into a vector index keyed by the
// content hash of the bytes. An already-populated index for the same
// bytes is reopened without re-embedding.
func (p *Pipeline) BuildIndex(ctx context.Context, fileBytes []byte, fileName string) (*Index, error) {
	key := store.IndexKey(fileBytes)
	logger := log.With().Str("request_id", helper.NewRequestID()).Str("index", key).Logger()

	if err := helper.CreateFolder(p.cfg.DataDir); err != nil {
		return nil, err
	}

	st, err := store.Open(p.cfg, key)
	if err != nil {
		return nil, err
	}

	count, err := st.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		logger.Info().Int("chunks", count).Msg("Reusing existing index")
		return &Index{Key: key, Store: st}, nil
	}

	tempDir, err := os.MkdirTemp("", "study-rag-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %v", err)
	}
	defer func() {
		if err := os.RemoveAll(tempDir); err != nil {
			logger.Warn().Err(err).Str("dir", tempDir).Msg("Failed to clean up temp dir")
		}
	}()

	name := filepath.Base(fileName)
	if name == "." || name == string(filepath.Separator) {
		name = "upload"
	}
	tempPath := filepath.Join(tempDir, name)
	if err := os.WriteFile(tempPath, fileBytes, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write temp file: %v", err)
	}

	pages, err := parser.Extract(tempPath)
	if err != nil {
		return nil, err
	}

	chunks, err := chunker.New(p.cfg.RAG.ChunkSize, p.cfg.RAG.ChunkOverlap).Chunk(pages, name)
	if err != nil {
		return nil, err
	}
	logger.Debug().Int("pages", len(pages)).Int("chunks", len(chunks)).Msg("Chunked document")

	chunkEmbeddings, err := embedding.EmbedChunks(ctx, p.embedder, &p.cfg.EmbedLLM, name, chunks)
	if err != nil {
		return nil, err
	}

	if err := st.Add(ctx, chunkEmbeddings); err != nil {
		return nil, err
	}
	logger.Info().Int("chunks", len(chunkEmbeddings)).Msg("Built index")

	return &Index{Key: key, Store: st}, nil
}

// OpenIndex reopens a previously built index by its content-hash key.
func (p *Pipeline) OpenIndex(key string) (*Index, error) {
	st, err := store.Open(p.cfg, key)
	if err != nil {
		return nil, err
	}
	return &Index{Key: key, Store: st}, nil
}
