// Package server exposes the ingestion and question-answering pipeline
// over HTTP.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/Drdr1/Offline-LLM-RAG-System/internal/models"
	"github.com/Drdr1/Offline-LLM-RAG-System/internal/rag"
)

//go:embed static/index.html
var staticFS embed.FS

// maxUploadBytes bounds a single PDF upload.
const maxUploadBytes = 64 << 20

// RAG is the pipeline surface the handlers depend on.
type RAG interface {
	Ingest(ctx context.Context, path string) (int, error)
	Answer(ctx context.Context, question models.Question) (models.Answer, error)
	Stats(ctx context.Context) (models.Stats, error)
}

// Server holds the HTTP handlers and their dependencies.
type Server struct {
	svc       RAG
	uploadDir string
	mux       *http.ServeMux
}

// New creates a Server storing uploads under uploadDir.
func New(svc RAG, uploadDir string) *Server {
	s := &Server{
		svc:       svc,
		uploadDir: uploadDir,
		mux:       http.NewServeMux(),
	}
	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/upload", s.handleUpload)
	s.mux.HandleFunc("/ask", s.handleAsk)
	s.mux.HandleFunc("/stats", s.handleStats)
	s.mux.HandleFunc("/health", s.handleHealth)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

type errorResponse struct {
	Detail string `json:"detail"`
}

type uploadResponse struct {
	Message     string `json:"message"`
	ChunksAdded int    `json:"chunks_added"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	page, err := staticFS.ReadFile("static/index.html")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "UI not available")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "use POST")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	// Reject non-PDFs before anything touches the upload dir.
	if !strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("%v: %s (only PDF files are allowed)", rag.ErrUnsupportedFormat, filepath.Base(header.Filename)))
		return
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		writeError(w, http.StatusInternalServerError, "creating upload dir: "+err.Error())
		return
	}
	// filepath.Base strips any client-supplied directory components.
	path := filepath.Join(s.uploadDir, filepath.Base(header.Filename))
	dst, err := os.Create(path)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "saving upload: "+err.Error())
		return
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		writeError(w, http.StatusInternalServerError, "saving upload: "+err.Error())
		return
	}
	if err := dst.Close(); err != nil {
		writeError(w, http.StatusInternalServerError, "saving upload: "+err.Error())
		return
	}

	added, err := s.svc.Ingest(r.Context(), path)
	if err != nil {
		switch {
		case errors.Is(err, rag.ErrUnsupportedFormat), errors.Is(err, rag.ErrExtraction):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	log.Printf("indexed %s: %d chunks", header.Filename, added)
	writeJSON(w, http.StatusOK, uploadResponse{
		Message:     "PDF indexed successfully",
		ChunksAdded: added,
	})
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "use POST")
		return
	}

	var question models.Question
	if err := json.NewDecoder(r.Body).Decode(&question); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if question.Text == "" {
		writeError(w, http.StatusBadRequest, "question is required")
		return
	}

	answer, err := s.svc.Answer(r.Context(), question)
	if err != nil {
		switch {
		case errors.Is(err, rag.ErrNoDocumentsIndexed):
			writeError(w, http.StatusNotFound, "No documents found. Please upload PDFs first.")
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, answer)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.svc.Stats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
