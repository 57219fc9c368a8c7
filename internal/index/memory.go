package index

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/Drdr1/Offline-LLM-RAG-System/internal/models"
)

// MemoryStore is an in-memory vector store using brute-force cosine
// similarity. Safe for concurrent Add and Query.
type MemoryStore struct {
	mu      sync.RWMutex
	chunks  []models.IndexedChunk
	vectors [][]float32
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Add appends all chunks and their vectors.
func (s *MemoryStore) Add(ctx context.Context, chunks []models.IndexedChunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("chunks and vectors length mismatch: %d vs %d", len(chunks), len(vectors))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks = append(s.chunks, chunks...)
	s.vectors = append(s.vectors, vectors...)
	return nil
}

// Query returns the topK stored chunks by descending cosine similarity
// to vector.
func (s *MemoryStore) Query(ctx context.Context, vector []float32, topK int) ([]models.SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]models.SearchResult, 0, len(s.chunks))
	for i := range s.chunks {
		results = append(results, models.SearchResult{
			Chunk:      s.chunks[i],
			Similarity: cosineSimilarity(vector, s.vectors[i]),
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
	if topK < len(results) {
		results = results[:topK]
	}
	return results, nil
}

// Count returns the number of stored chunks.
func (s *MemoryStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks), nil
}

func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float32
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (float32(math.Sqrt(float64(normA))) * float32(math.Sqrt(float64(normB))))
}
