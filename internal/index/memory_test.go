package index_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Drdr1/Offline-LLM-RAG-System/internal/index"
	"github.com/Drdr1/Offline-LLM-RAG-System/internal/models"
)

func seedStore(t *testing.T, chunks []models.IndexedChunk, vectors [][]float32) *index.MemoryStore {
	t.Helper()
	store := index.NewMemoryStore()
	require.NoError(t, store.Add(context.Background(), chunks, vectors))
	return store
}

func TestMemoryStoreQueryOrdersBySimilarity(t *testing.T) {
	store := seedStore(t,
		[]models.IndexedChunk{
			{ID: "far", Text: "far", Page: 1, Source: "a.pdf"},
			{ID: "near", Text: "near", Page: 2, Source: "a.pdf"},
			{ID: "mid", Text: "mid", Page: 3, Source: "a.pdf"},
		},
		[][]float32{
			{0, 1, 0},
			{1, 0, 0},
			{1, 1, 0},
		},
	)

	results, err := store.Query(context.Background(), []float32{1, 0, 0}, 3)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "near", results[0].Chunk.ID)
	assert.Equal(t, "mid", results[1].Chunk.ID)
	assert.Equal(t, "far", results[2].Chunk.ID)
	assert.GreaterOrEqual(t, results[0].Similarity, results[1].Similarity)
	assert.GreaterOrEqual(t, results[1].Similarity, results[2].Similarity)
}

func TestMemoryStoreQueryClipsToTopK(t *testing.T) {
	store := seedStore(t,
		[]models.IndexedChunk{
			{ID: "1"}, {ID: "2"}, {ID: "3"}, {ID: "4"},
		},
		[][]float32{
			{1, 0}, {0.9, 0.1}, {0.5, 0.5}, {0, 1},
		},
	)

	results, err := store.Query(context.Background(), []float32{1, 0}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "1", results[0].Chunk.ID)
	assert.Equal(t, "2", results[1].Chunk.ID)
}

func TestMemoryStoreQueryAcrossSources(t *testing.T) {
	store := seedStore(t,
		[]models.IndexedChunk{
			{ID: "a1", Text: "alpha", Page: 1, Source: "a.pdf"},
			{ID: "b1", Text: "beta", Page: 4, Source: "b.pdf"},
			{ID: "b2", Text: "gamma", Page: 7, Source: "b.pdf"},
		},
		[][]float32{
			{1, 0, 0},
			{0.8, 0.6, 0},
			{0, 0, 1},
		},
	)

	results, err := store.Query(context.Background(), []float32{1, 0, 0}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "a.pdf", results[0].Chunk.Source)
	assert.Equal(t, 1, results[0].Chunk.Page)
	assert.Equal(t, "b.pdf", results[1].Chunk.Source)
	assert.Equal(t, 4, results[1].Chunk.Page)
}

func TestMemoryStoreCount(t *testing.T) {
	store := index.NewMemoryStore()

	count, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, store.Add(context.Background(),
		[]models.IndexedChunk{{ID: "1"}, {ID: "2"}},
		[][]float32{{1}, {2}},
	))
	require.NoError(t, store.Add(context.Background(),
		[]models.IndexedChunk{{ID: "3"}},
		[][]float32{{3}},
	))

	count, err = store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestMemoryStoreAddLengthMismatch(t *testing.T) {
	store := index.NewMemoryStore()
	err := store.Add(context.Background(),
		[]models.IndexedChunk{{ID: "1"}, {ID: "2"}},
		[][]float32{{1}},
	)
	assert.Error(t, err)
}

func TestMemoryStoreQueryEmpty(t *testing.T) {
	store := index.NewMemoryStore()
	results, err := store.Query(context.Background(), []float32{1, 0}, 3)
	require.NoError(t, err)
	assert.Empty(t, results)
}
