package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"study-rag/internal/config"
	"study-rag/internal/models"
)

type chunkRow struct {
	bun.BaseModel `bun:"table:chunks,alias:c"`
	ID            int64     `bun:"id,pk,autoincrement"`
	FileHash      string    `bun:"file_hash,notnull"`
	Content       string    `bun:"content,notnull"`
	Embedding     string    `bun:"embedding,notnull,type:vector(768)"`
	Source        string    `bun:"source"`
	PageNumber    int       `bun:"page_number"`
	ChunkID       int       `bun:"chunk_id"`
	Distance      float64   `bun:"distance,scanonly"`
}

// PostgresStore keeps chunk records in a pgvector-enabled Postgres
// table, keyed by the file's content hash.
type PostgresStore struct {
	db       *bun.DB
	fileHash string
}

// OpenPostgres connects to the configured database and ensures the
// chunks table exists.
func OpenPostgres(cfg *config.DatabaseConfig, fileHash string) (*PostgresStore, error) {
	dsn := cfg.URL + "?sslmode=disable"
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn), pgdriver.WithPassword(cfg.Key)))
	db := bun.NewDB(sqldb, pgdialect.New())
	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	s := &PostgresStore{db: db, fileHash: fileHash}
	if _, err := db.NewCreateTable().Model((*chunkRow)(nil)).IfNotExists().Exec(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to initialize chunks table: %v", err)
	}
	return s, nil
}

func (s *PostgresStore) Add(ctx context.Context, docs []models.ChunkEmbedding) error {
	if len(docs) == 0 {
		return nil
	}
	rows := make([]chunkRow, len(docs))
	for i, d := range docs {
		rows[i] = chunkRow{
			FileHash:   s.fileHash,
			Content:    d.Content,
			Embedding:  vectorLiteral(d.Embedding),
			Source:     d.SourceFilename,
			PageNumber: d.PageNumber,
			ChunkID:    d.ChunkID,
		}
	}
	if _, err := s.db.NewInsert().Model(&rows).Exec(ctx); err != nil {
		return fmt.Errorf("failed to store chunks: %v", err)
	}
	return nil
}

func (s *PostgresStore) Search(ctx context.Context, queryEmbedding []float32, k int) ([]models.RetrievedChunk, error) {
	if k <= 0 {
		return nil, nil
	}
	vec := vectorLiteral(queryEmbedding)
	var rows []chunkRow
	err := s.db.NewSelect().
		Model(&rows).
		Column("content", "source", "page_number", "chunk_id").
		ColumnExpr("embedding <=> ? AS distance", vec).
		Where("file_hash = ?", s.fileHash).
		OrderExpr("embedding <=> ?, chunk_id", vec).
		Limit(k).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query by similarity: %v", err)
	}

	chunks := make([]models.RetrievedChunk, len(rows))
	for i, r := range rows {
		source := r.Source
		if source == "" {
			source = models.DefaultSource
		}
		chunks[i] = models.RetrievedChunk{
			Content:    r.Content,
			Page:       r.PageNumber,
			Source:     source,
			Similarity: float32(1 - r.Distance),
		}
	}
	return chunks, nil
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	count, err := s.db.NewSelect().
		Model((*chunkRow)(nil)).
		Where("file_hash = ?", s.fileHash).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count chunks: %v", err)
	}
	return count, nil
}

func (s *PostgresStore) Close() error { return s.db.Close() }

// vectorLiteral renders a pgvector input literal, e.g. [0.1,0.2].
func vectorLiteral(vec []float32) string {
	parts := make([]string, len(vec))
	for i, v := range vec {
		parts[i] = strconv.FormatFloat(float64(v), 'f', -1, 32)
	}
	return "[" + strings.Join(parts, ",") + "]"
}
