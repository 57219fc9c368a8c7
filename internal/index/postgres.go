// Package index provides vector stores for indexed chunks: a
// Postgres/pgvector store for persistent deployments and an in-memory
// store for single-process runs and tests.
package index

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/Drdr1/Offline-LLM-RAG-System/internal/models"
)

// PostgresStore stores chunk vectors in a pgvector-enabled Postgres
// database. Concurrent Add and Query are safe through the pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to the database and verifies the
// connection.
func NewPostgresStore(ctx context.Context, connStr string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Initialize sets up the chunk table and the cosine vector index.
// dimension is the embedding size of the configured model and must not
// change for the lifetime of the table.
func (s *PostgresStore) Initialize(ctx context.Context, dimension int) error {
	_, err := s.pool.Exec(ctx, `CREATE EXTENSION IF NOT EXISTS vector`)
	if err != nil {
		return fmt.Errorf("failed to create vector extension: %w", err)
	}

	_, err = s.pool.Exec(ctx, fmt.Sprintf(`
        CREATE TABLE IF NOT EXISTS indexed_chunks (
            id TEXT PRIMARY KEY,
            content TEXT NOT NULL,
            page INTEGER NOT NULL,
            source TEXT NOT NULL,
            embedding vector(%d) NOT NULL
        )
    `, dimension))
	if err != nil {
		return fmt.Errorf("failed to create indexed_chunks table: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		CREATE INDEX IF NOT EXISTS indexed_chunks_embedding_idx ON indexed_chunks
		USING ivfflat (embedding vector_cosine_ops) WITH (lists = 100)
	`)
	if err != nil {
		return fmt.Errorf("failed to create vector index: %w", err)
	}

	return nil
}

// Add inserts all chunks in one batched round trip.
func (s *PostgresStore) Add(ctx context.Context, chunks []models.IndexedChunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("chunks and vectors length mismatch: %d vs %d", len(chunks), len(vectors))
	}

	batch := &pgx.Batch{}
	for i, chunk := range chunks {
		batch.Queue(`
            INSERT INTO indexed_chunks (id, content, page, source, embedding)
            VALUES ($1, $2, $3, $4, $5)
        `, chunk.ID, chunk.Text, chunk.Page, chunk.Source, pgvector.NewVector(vectors[i]))
	}

	results := s.pool.SendBatch(ctx, batch)
	defer results.Close()
	for range chunks {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to store chunk: %w", err)
		}
	}
	return nil
}

// Query returns the topK nearest chunks by cosine similarity, most
// similar first.
func (s *PostgresStore) Query(ctx context.Context, vector []float32, topK int) ([]models.SearchResult, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, content, page, source, 1 - (embedding <=> $1) AS similarity
		FROM indexed_chunks
		ORDER BY embedding <=> $1
		LIMIT $2
	`, pgvector.NewVector(vector), topK)
	if err != nil {
		return nil, fmt.Errorf("failed to query similar chunks: %w", err)
	}
	defer rows.Close()

	var results []models.SearchResult
	for rows.Next() {
		var r models.SearchResult
		if err := rows.Scan(&r.Chunk.ID, &r.Chunk.Text, &r.Chunk.Page, &r.Chunk.Source, &r.Similarity); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return results, nil
}

// Count returns the number of stored chunks.
func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM indexed_chunks`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count chunks: %w", err)
	}
	return count, nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}
