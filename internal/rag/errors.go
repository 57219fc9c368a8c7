package rag

import "errors"

// The five failure kinds a caller can distinguish. Extraction and
// generation failures carry the underlying cause in the wrapped message.
var (
	// ErrInvalidChunkConfig indicates unusable chunking parameters
	// (overlap >= chunk size). Fatal: the configuration must be fixed.
	ErrInvalidChunkConfig = errors.New("invalid chunking configuration")

	// ErrUnsupportedFormat indicates the uploaded document is not a PDF.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrExtraction indicates the PDF could not be read. The whole
	// document's ingestion is aborted; prior index state is untouched.
	ErrExtraction = errors.New("extraction failed")

	// ErrNoDocumentsIndexed indicates a query against an empty index.
	// The caller should ingest documents first.
	ErrNoDocumentsIndexed = errors.New("no documents indexed")

	// ErrGeneration indicates the language-model backend failed or
	// timed out. Never converted to an empty answer.
	ErrGeneration = errors.New("generation failed")
)
