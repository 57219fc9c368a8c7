// Package rag wires the document-to-chunk ingestion pipeline and the
// retrieval-grounded answering flow on top of pluggable extraction,
// embedding, indexing and generation backends.
package rag

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/Drdr1/Offline-LLM-RAG-System/internal/llm"
	"github.com/Drdr1/Offline-LLM-RAG-System/internal/models"
)

// DefaultTopK is the number of chunks retrieved when a question does
// not specify one.
const DefaultTopK = 3

// Extractor produces the ordered non-blank pages of a document.
type Extractor interface {
	Extract(path string) ([]models.PageChunk, error)
}

// Chunker splits page text into the windows that get indexed.
type Chunker interface {
	Split(text string) []string
}

// Embedder maps text to fixed-dimension vectors.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	ModelName() string
}

// Store persists chunk vectors and answers nearest-neighbor queries in
// descending cosine-similarity order.
type Store interface {
	Add(ctx context.Context, chunks []models.IndexedChunk, vectors [][]float32) error
	Query(ctx context.Context, vector []float32, topK int) ([]models.SearchResult, error)
	Count(ctx context.Context) (int, error)
}

// Generator produces an answer from an assembled prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts llm.Options) (string, error)
	ModelName() string
}

// Service orchestrates ingestion and question answering.
type Service struct {
	extractor Extractor
	chunker   Chunker
	embedder  Embedder
	store     Store
	generator Generator
	genOpts   llm.Options
}

// NewService assembles a Service from its collaborators.
func NewService(extractor Extractor, chunker Chunker, embedder Embedder, store Store, generator Generator, genOpts llm.Options) *Service {
	return &Service{
		extractor: extractor,
		chunker:   chunker,
		embedder:  embedder,
		store:     store,
		generator: generator,
		genOpts:   genOpts,
	}
}

// Ingest extracts, chunks, embeds and indexes the PDF at path and
// returns the number of chunks added. A document whose pages carry no
// extractable text (for example an image-only scan) adds zero chunks,
// which is not an error.
func (s *Service) Ingest(ctx context.Context, path string) (int, error) {
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return 0, fmt.Errorf("%w: %s (only PDF files are allowed)", ErrUnsupportedFormat, filepath.Base(path))
	}

	pages, err := s.extractor.Extract(path)
	if err != nil {
		return 0, err
	}

	var chunks []models.IndexedChunk
	var texts []string
	for _, page := range pages {
		for _, text := range s.chunker.Split(page.Text) {
			chunks = append(chunks, models.IndexedChunk{
				ID:     uuid.NewString(),
				Text:   text,
				Page:   page.Page,
				Source: page.Source,
			})
			texts = append(texts, text)
		}
	}
	if len(chunks) == 0 {
		return 0, nil
	}

	// One embedder round trip per document, not per chunk.
	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embedding %d chunks: %w", len(chunks), err)
	}

	if err := s.store.Add(ctx, chunks, vectors); err != nil {
		return 0, fmt.Errorf("indexing %d chunks: %w", len(chunks), err)
	}
	return len(chunks), nil
}

// Answer retrieves the chunks nearest to the question, asks the
// generator for a grounded answer, and returns it together with one
// citation per retrieved chunk in retrieval order.
func (s *Service) Answer(ctx context.Context, question models.Question) (models.Answer, error) {
	topK := question.TopK
	if topK < 1 {
		topK = DefaultTopK
	}

	vector, err := s.embedder.Embed(ctx, question.Text)
	if err != nil {
		return models.Answer{}, fmt.Errorf("embedding question: %w", err)
	}

	results, err := s.store.Query(ctx, vector, topK)
	if err != nil {
		return models.Answer{}, fmt.Errorf("querying index: %w", err)
	}
	if len(results) == 0 {
		return models.Answer{}, ErrNoDocumentsIndexed
	}

	citations := make([]models.Citation, len(results))
	for i, r := range results {
		citations[i] = models.Citation{
			Text:   r.Chunk.Text,
			Page:   r.Chunk.Page,
			Source: r.Chunk.Source,
		}
	}

	prompt := BuildPrompt(question.Text, results)
	answer, err := s.generator.Generate(ctx, prompt, s.genOpts)
	if err != nil {
		return models.Answer{}, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	return models.Answer{Text: answer, Citations: citations}, nil
}

// Stats reports the indexed chunk count and the active models.
func (s *Service) Stats(ctx context.Context) (models.Stats, error) {
	count, err := s.store.Count(ctx)
	if err != nil {
		return models.Stats{}, fmt.Errorf("counting chunks: %w", err)
	}
	return models.Stats{
		IndexedChunks:  count,
		Model:          s.generator.ModelName(),
		EmbeddingModel: s.embedder.ModelName(),
	}, nil
}

// BuildPrompt assembles the grounding prompt: each retrieved chunk
// labeled [Source N] in retrieval order, the question, and the
// instruction to answer from the context only. The label number is the
// 1-based rank of the matching citation.
func BuildPrompt(question string, results []models.SearchResult) string {
	var b strings.Builder
	b.WriteString("Based on the following context from documents, answer the question. If the answer is not in the context, say so.\n\n")
	b.WriteString("Context:\n")
	for i, r := range results {
		fmt.Fprintf(&b, "[Source %d] %s", i+1, r.Chunk.Text)
		b.WriteString("\n\n")
	}
	b.WriteString("Question: " + question + "\n\n")
	b.WriteString("Answer (cite sources using [Source N] notation):")
	return b.String()
}
