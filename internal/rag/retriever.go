package rag

import (
	"context"
	"fmt"
	"strings"

	"study-rag/internal/embedding"
	"study-rag/internal/models"
)

// Retrieve returns the k chunks most similar to the query, ordered by
// descending similarity. The result is empty only when the index is
// empty.
func (p *Pipeline) Retrieve(ctx context.Context, idx *Index, query string, k int) ([]models.RetrievedChunk, error) {
	queryEmbedding, err := embedding.EmbedQuery(ctx, p.embedder, &p.cfg.EmbedLLM, query)
	if err != nil {
		return nil, err
	}
	return idx.Store.Search(ctx, queryEmbedding, k)
}

// FormatContext renders retrieved chunks into the excerpt block fed to
// the model.
func FormatContext(chunks []models.RetrievedChunk) string {
	var sb strings.Builder
	for i, chunk := range chunks {
		if i > 0 {
			sb.WriteString(models.ExcerptSeparator)
		}
		fmt.Fprintf(&sb, "---\nExcerpt %d (Page %s):\n%s\n---", i+1, chunk.PageLabel(), chunk.Content)
	}
	return sb.String()
}
