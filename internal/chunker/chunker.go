// Package chunker splits page text into overlapping word windows, the
// unit that gets embedded and indexed.
package chunker

import (
	"fmt"
	"strings"

	"github.com/Drdr1/Offline-LLM-RAG-System/internal/rag"
)

const (
	DefaultChunkSize = 500
	DefaultOverlap   = 50
)

// Chunker produces fixed-size overlapping windows over whitespace
// tokens. It is stateless and safe for concurrent use.
type Chunker struct {
	chunkSize int
	overlap   int
}

// New validates the window parameters and returns a Chunker.
// overlap must be strictly smaller than chunkSize, otherwise the window
// offset would never advance.
func New(chunkSize, overlap int) (*Chunker, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be > 0, got %d", rag.ErrInvalidChunkConfig, chunkSize)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("%w: overlap must be >= 0, got %d", rag.ErrInvalidChunkConfig, overlap)
	}
	if overlap >= chunkSize {
		return nil, fmt.Errorf("%w: overlap %d must be smaller than chunk size %d", rag.ErrInvalidChunkConfig, overlap, chunkSize)
	}
	return &Chunker{chunkSize: chunkSize, overlap: overlap}, nil
}

// Split returns one window per offset 0, step, 2*step, … below the
// token count, each clipped to the end of the text. Every token appears
// in at least one window, consecutive full windows share exactly
// overlap tokens, and trailing windows are kept even when shorter than
// the chunk size. Blank text yields no windows.
func (c *Chunker) Split(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	step := c.chunkSize - c.overlap
	var chunks []string
	for offset := 0; offset < len(words); offset += step {
		end := offset + c.chunkSize
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[offset:end], " "))
	}
	return chunks
}
