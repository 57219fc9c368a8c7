package models

// PageChunk is the raw text of a single PDF page, as produced by the
// extractor. Pages with no extractable text are never represented.
type PageChunk struct {
	Text   string `json:"text"`
	Page   int    `json:"page"`
	Source string `json:"source"`
}

// IndexedChunk is the unit stored in the vector index. It is created
// during ingestion and immutable once added; the id is unique across
// the index for the process lifetime.
type IndexedChunk struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Page   int    `json:"page"`
	Source string `json:"source"`
}

// SearchResult is a single nearest-neighbor hit returned by a vector
// store query.
type SearchResult struct {
	Chunk      IndexedChunk `json:"chunk"`
	Similarity float32      `json:"similarity"`
}

// Citation is the provenance of one retrieved chunk, attached to an
// answer in retrieval order.
type Citation struct {
	Text   string `json:"text"`
	Page   int    `json:"page"`
	Source string `json:"source"`
}

// Question is a single retrieval request.
type Question struct {
	Text string `json:"question"`
	TopK int    `json:"top_k"`
}

// Answer is the generated response plus its citations, ordered by
// descending retrieval similarity.
type Answer struct {
	Text      string     `json:"answer"`
	Citations []Citation `json:"citations"`
}

// Stats describes the current state of the index and the active models.
type Stats struct {
	IndexedChunks  int    `json:"indexed_chunks"`
	Model          string `json:"model"`
	EmbeddingModel string `json:"embedding_model"`
}
