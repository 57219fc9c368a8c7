// Package processor extracts per-page text from PDF documents.
package processor

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/Drdr1/Offline-LLM-RAG-System/internal/models"
	"github.com/Drdr1/Offline-LLM-RAG-System/internal/rag"
)

// PDFExtractor reads PDF files with ledongthuc/pdf and yields one
// PageChunk per page that has extractable text.
type PDFExtractor struct{}

// NewPDFExtractor creates a new PDF extractor.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// Extract returns the non-blank pages of the PDF at path in page order.
// Pages are numbered from 1 and Source is the file's base name. Any
// read failure aborts the whole document.
func (e *PDFExtractor) Extract(path string) ([]models.PageChunk, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", rag.ErrExtraction, filepath.Base(path), err)
	}
	defer f.Close()

	source := filepath.Base(path)
	var pages []models.PageChunk
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("%w: reading page %d of %s: %v", rag.ErrExtraction, i, source, err)
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		pages = append(pages, models.PageChunk{
			Text:   text,
			Page:   i,
			Source: source,
		})
	}
	return pages, nil
}
