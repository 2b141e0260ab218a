package store

import (
	"context"
	"strings"
	"time"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
	pgxvector "github.com/pgvector/pgvector-go/pgx"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/shopmindai/shopmind/llm"
)

// Passage is one ranked retrieval hit.
type Passage struct {
	Content string  `json:"content"`
	Source  string  `json:"source"`
	Score   float64 `json:"score"` // cosine similarity in [0, 1]
}

// VectorStore persists document chunks with their embeddings in Postgres
// (pgvector) and serves ranked similarity search over them.
type VectorStore struct {
	pool     *pgxpool.Pool
	embedder llm.Embedder
}

func NewVectorStore(pool *pgxpool.Pool, embedder llm.Embedder) *VectorStore {
	return &VectorStore{pool: pool, embedder: embedder}
}

// NewPool opens a pgx pool with pgvector types registered on every
// connection.
func NewPool(ctx context.Context, uri string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(uri)
	if err != nil {
		return nil, err
	}

	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return pgxvector.RegisterTypes(ctx, conn)
	}

	return pgxpool.NewWithConfig(ctx, cfg)
}

// EnsureSchema creates the documents table and vector extension if missing.
func (s *VectorStore) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		`CREATE TABLE IF NOT EXISTS documents (
			id SERIAL PRIMARY KEY,
			content TEXT NOT NULL,
			source_file TEXT NOT NULL,
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
			embedding VECTOR(768)
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return status.Errorf(codes.Internal, "ensure schema: %v", err)
		}
	}
	return nil
}

// InsertChunks embeds and stores each non-empty chunk. Failed chunks are
// skipped so one bad chunk does not abort a whole document. Returns the
// number of chunks inserted.
func (s *VectorStore) InsertChunks(ctx context.Context, contents []string, sourceFile string) (int, error) {
	inserted := 0
	for _, content := range contents {
		content = strings.TrimSpace(content)
		if content == "" {
			continue
		}

		emb, err := s.embedder.Embed(ctx, content)
		if err != nil {
			logger.Error("failed to embed chunk", zap.String("source", sourceFile), zap.Error(err))
			continue
		}

		_, err = s.pool.Exec(ctx,
			`INSERT INTO documents (content, source_file, created_at, embedding)
			 VALUES ($1, $2, $3, $4)`,
			content, sourceFile, time.Now(), pgvector.NewVector(emb))
		if err != nil {
			logger.Error("failed to insert chunk", zap.String("source", sourceFile), zap.Error(err))
			continue
		}
		inserted++
	}

	logger.Info("inserted chunks",
		zap.Int("inserted", inserted),
		zap.Int("total", len(contents)),
		zap.String("source", sourceFile))
	return inserted, nil
}

// Search embeds the query and returns the top-k passages ranked by cosine
// similarity, descending. An empty result set is returned as-is; callers
// decide what an empty retrieval means.
func (s *VectorStore) Search(ctx context.Context, query string, k int) ([]Passage, error) {
	emb, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "embed: %v", err)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT content, source_file,
		        1 - (embedding <=> $1) AS similarity
		 FROM documents
		 ORDER BY similarity DESC
		 LIMIT $2`,
		pgvector.NewVector(emb), k)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "vector search: %v", err)
	}
	defer rows.Close()

	var out []Passage
	for rows.Next() {
		var p Passage
		if err := rows.Scan(&p.Content, &p.Source, &p.Score); err != nil {
			return nil, status.Errorf(codes.Internal, "scan passage: %v", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, status.Errorf(codes.Internal, "vector search: %v", err)
	}
	return out, nil
}

// DeleteTempDocuments removes chunks ingested from temporary upload files.
func (s *VectorStore) DeleteTempDocuments(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM documents WHERE source_file ILIKE $1`, "%temp_file%")
	if err != nil {
		return 0, status.Errorf(codes.Internal, "delete temp documents: %v", err)
	}
	return tag.RowsAffected(), nil
}
