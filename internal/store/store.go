package store

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"path/filepath"

	"study-rag/internal/config"
	"study-rag/internal/models"
)

// Store is a key-addressed vector store for one document's chunks.
type Store interface {
	// Add appends chunk/vector records to the store.
	Add(ctx context.Context, docs []models.ChunkEmbedding) error
	// Search returns up to k records most similar to the query vector,
	// ordered by descending similarity. An empty store yields an empty
	// result.
	Search(ctx context.Context, queryEmbedding []float32, k int) ([]models.RetrievedChunk, error)
	// Count reports the number of stored records.
	Count(ctx context.Context) (int, error)
	Close() error
}

// IndexKey returns the deterministic storage key for a file's bytes.
// Identical bytes always map to the same key.
func IndexKey(fileBytes []byte) string {
	sum := md5.Sum(fileBytes)
	return hex.EncodeToString(sum[:])
}

// Open creates or reopens the vector store for the given content-hash
// key, using the configured backend.
func Open(cfg *config.Config, key string) (Store, error) {
	switch cfg.Store {
	case "", "chromem":
		return OpenChromem(filepath.Join(cfg.DataDir, "db_"+key))
	case "postgres":
		return OpenPostgres(&cfg.Database, key)
	default:
		return nil, fmt.Errorf("%w: unknown store backend %q", models.ErrConfiguration, cfg.Store)
	}
}
