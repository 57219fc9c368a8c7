package chunker_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Drdr1/Offline-LLM-RAG-System/internal/chunker"
	"github.com/Drdr1/Offline-LLM-RAG-System/internal/rag"
)

func words(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "w%d", i)
	}
	return b.String()
}

func TestSplitWindowBoundaries(t *testing.T) {
	c, err := chunker.New(500, 50)
	require.NoError(t, err)

	chunks := c.Split(words(600))
	require.Len(t, chunks, 2)

	first := strings.Fields(chunks[0])
	second := strings.Fields(chunks[1])
	assert.Len(t, first, 500)
	assert.Len(t, second, 150)
	assert.Equal(t, "w0", first[0])
	assert.Equal(t, "w499", first[len(first)-1])
	assert.Equal(t, "w450", second[0])
	assert.Equal(t, "w599", second[len(second)-1])
}

func TestSplitCoversEveryToken(t *testing.T) {
	c, err := chunker.New(7, 3)
	require.NoError(t, err)

	text := words(23)
	seen := map[string]bool{}
	for _, chunk := range c.Split(text) {
		for _, tok := range strings.Fields(chunk) {
			seen[tok] = true
		}
	}
	for _, tok := range strings.Fields(text) {
		assert.True(t, seen[tok], "token %s missing from chunks", tok)
	}
}

func TestSplitConsecutiveChunksShareOverlap(t *testing.T) {
	c, err := chunker.New(10, 4)
	require.NoError(t, err)

	// step = 6: each window starts 6 tokens after the previous one, so
	// the tokens of cur past position step are the prefix of next.
	chunks := c.Split(words(50))
	require.Greater(t, len(chunks), 1)
	for i := 0; i < len(chunks)-1; i++ {
		cur := strings.Fields(chunks[i])
		next := strings.Fields(chunks[i+1])
		require.Greater(t, len(cur), 6)
		shared := cur[6:]
		require.LessOrEqual(t, len(shared), len(next))
		assert.Equal(t, shared, next[:len(shared)])
	}
}

func TestSplitEmitsTrailingWindowAtExactBoundary(t *testing.T) {
	c, err := chunker.New(500, 50)
	require.NoError(t, err)

	// 500 tokens: offsets 0 and 450 are both below the token count, so
	// a short trailing window [450,500) follows the full one.
	chunks := c.Split(words(500))
	require.Len(t, chunks, 2)
	second := strings.Fields(chunks[1])
	assert.Len(t, second, 50)
	assert.Equal(t, "w450", second[0])
	assert.Equal(t, "w499", second[len(second)-1])

	// 950 tokens: offsets 0, 450, 900 -> three windows, the last [900,950).
	chunks = c.Split(words(950))
	require.Len(t, chunks, 3)
	last := strings.Fields(chunks[2])
	assert.Len(t, last, 50)
	assert.Equal(t, "w900", last[0])
	assert.Equal(t, "w949", last[len(last)-1])
}

func TestSplitZeroOverlapTiles(t *testing.T) {
	c, err := chunker.New(5, 0)
	require.NoError(t, err)

	chunks := c.Split(words(12))
	require.Len(t, chunks, 3)
	assert.Len(t, strings.Fields(chunks[0]), 5)
	assert.Len(t, strings.Fields(chunks[1]), 5)
	assert.Len(t, strings.Fields(chunks[2]), 2)
}

func TestSplitDeterministic(t *testing.T) {
	c, err := chunker.New(8, 2)
	require.NoError(t, err)

	text := words(37)
	assert.Equal(t, c.Split(text), c.Split(text))
}

func TestSplitBlankText(t *testing.T) {
	c, err := chunker.New(500, 50)
	require.NoError(t, err)

	assert.Empty(t, c.Split(""))
	assert.Empty(t, c.Split("  \n\t  "))
}

func TestSplitShortTextSingleChunk(t *testing.T) {
	c, err := chunker.New(500, 50)
	require.NoError(t, err)

	chunks := c.Split("just a few words")
	require.Len(t, chunks, 1)
	assert.Equal(t, "just a few words", chunks[0])
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cases := []struct {
		name    string
		size    int
		overlap int
	}{
		{"zero size", 0, 0},
		{"negative size", -1, 0},
		{"negative overlap", 10, -1},
		{"overlap equals size", 10, 10},
		{"overlap exceeds size", 10, 20},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := chunker.New(tc.size, tc.overlap)
			require.Error(t, err)
			assert.ErrorIs(t, err, rag.ErrInvalidChunkConfig)
		})
	}
}
