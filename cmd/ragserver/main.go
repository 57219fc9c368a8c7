package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"github.com/Drdr1/Offline-LLM-RAG-System/internal/chunker"
	"github.com/Drdr1/Offline-LLM-RAG-System/internal/config"
	"github.com/Drdr1/Offline-LLM-RAG-System/internal/embedding"
	"github.com/Drdr1/Offline-LLM-RAG-System/internal/index"
	"github.com/Drdr1/Offline-LLM-RAG-System/internal/llm"
	"github.com/Drdr1/Offline-LLM-RAG-System/internal/processor"
	"github.com/Drdr1/Offline-LLM-RAG-System/internal/rag"
	"github.com/Drdr1/Offline-LLM-RAG-System/internal/server"
)

func main() {
	_ = godotenv.Load()

	cfgPath := flag.String("config", "config.yaml", "Path to config YAML")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	ch, err := chunker.New(cfg.Chunker.ChunkSize, cfg.Chunker.Overlap)
	if err != nil {
		log.Fatalf("Invalid chunker configuration: %v", err)
	}

	var embedder rag.Embedder
	switch cfg.Embedder.Type {
	case "ollama":
		embedder, err = embedding.NewOllamaEmbedder(cfg.Ollama.Host, cfg.Embedder.Model)
	case "openai":
		embedder, err = embedding.NewOpenAIEmbedder(cfg.Embedder.Model)
	default:
		log.Fatalf("Unknown embedder type: %s", cfg.Embedder.Type)
	}
	if err != nil {
		log.Fatalf("Failed to create embedder: %v", err)
	}

	var generator rag.Generator
	switch cfg.Generator.Type {
	case "ollama":
		generator, err = llm.NewOllamaGenerator(cfg.Ollama.Host, cfg.Generator.Model, cfg.GeneratorTimeout())
	case "openai":
		generator, err = llm.NewOpenAIGenerator(cfg.Generator.Model, cfg.GeneratorTimeout())
	default:
		log.Fatalf("Unknown generator type: %s", cfg.Generator.Type)
	}
	if err != nil {
		log.Fatalf("Failed to create generator: %v", err)
	}

	var store rag.Store
	switch cfg.Store.Type {
	case "memory":
		store = index.NewMemoryStore()
	case "postgres":
		pg, err := index.NewPostgresStore(ctx, cfg.Store.Postgres)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer pg.Close()
		if err := pg.Initialize(ctx, cfg.Embedder.Dimension); err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		store = pg
	default:
		log.Fatalf("Unknown store type: %s", cfg.Store.Type)
	}

	svc := rag.NewService(processor.NewPDFExtractor(), ch, embedder, store, generator, llm.Options{
		Temperature: cfg.Generator.Temperature,
		TopP:        cfg.Generator.TopP,
	})

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: server.New(svc, cfg.Server.UploadDir),
		// /ask waits on the generator, so the write timeout must cover
		// the full generation window.
		ReadTimeout:  time.Minute,
		WriteTimeout: cfg.GeneratorTimeout() + time.Minute,
	}

	log.Printf("RAG server listening on %s (embedder=%s, model=%s, store=%s)",
		cfg.Server.Addr, embedder.ModelName(), generator.ModelName(), cfg.Store.Type)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
