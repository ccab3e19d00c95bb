package store

import (
	"context"
	"fmt"
	"runtime"
	"strconv"

	"github.com/philippgille/chromem-go"

	"study-rag/internal/models"
)

const (
	collectionName = "chunks"
	compress       = false
)

// ChromemStore persists chunks and vectors in a chromem-go database
// under a content-hash-keyed directory.
type ChromemStore struct {
	db         *chromem.DB
	collection *chromem.Collection
}

// OpenChromem creates or reopens the persistent database at path.
func OpenChromem(path string) (*ChromemStore, error) {
	db, err := chromem.NewPersistentDB(path, compress)
	if err != nil {
		return nil, fmt.Errorf("failed to create database: %v", err)
	}
	// embeddings are always supplied explicitly, the embedding func is
	// never invoked
	c, err := db.GetOrCreateCollection(collectionName, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create/get collection: %v", err)
	}
	return &ChromemStore{db: db, collection: c}, nil
}

func (s *ChromemStore) Add(ctx context.Context, docs []models.ChunkEmbedding) error {
	if len(docs) == 0 {
		return nil
	}
	chromemDocs := make([]chromem.Document, len(docs))
	for i, d := range docs {
		chromemDocs[i] = chromem.Document{
			ID:      fmt.Sprintf("%s-%d", d.SourceFilename, d.ChunkID),
			Content: d.Content,
			Metadata: map[string]string{
				"source":   d.SourceFilename,
				"page":     strconv.Itoa(d.PageNumber),
				"chunk_id": strconv.Itoa(d.ChunkID),
			},
			Embedding: d.Embedding,
		}
	}
	if err := s.collection.AddDocuments(ctx, chromemDocs, runtime.NumCPU()); err != nil {
		return fmt.Errorf("failed to add documents: %v", err)
	}
	return nil
}

func (s *ChromemStore) Search(ctx context.Context, queryEmbedding []float32, k int) ([]models.RetrievedChunk, error) {
	count := s.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if k > count {
		k = count
	}
	if k <= 0 {
		return nil, nil
	}

	results, err := s.collection.QueryWithOptions(ctx, chromem.QueryOptions{
		QueryEmbedding: queryEmbedding,
		NResults:       k,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query by similarity: %v", err)
	}

	chunks := make([]models.RetrievedChunk, len(results))
	for i, r := range results {
		page, _ := strconv.Atoi(r.Metadata["page"])
		source := r.Metadata["source"]
		if source == "" {
			source = models.DefaultSource
		}
		chunks[i] = models.RetrievedChunk{
			Content:    r.Content,
			Page:       page,
			Source:     source,
			Similarity: r.Similarity,
		}
	}
	return chunks, nil
}

func (s *ChromemStore) Count(ctx context.Context) (int, error) {
	return s.collection.Count(), nil
}

func (s *ChromemStore) Close() error { return nil }
