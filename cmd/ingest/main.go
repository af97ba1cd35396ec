package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"rag-chat-be/internal/bootstrap"
	"rag-chat-be/internal/config"
	"rag-chat-be/internal/repository/contract"
	"rag-chat-be/internal/repository/implementation"
	"rag-chat-be/pkg/database"

	"github.com/fatih/color"
)

// Converts PDF files into knowledge chunks and embeddings. Chunks are
// stored synchronously; embeddings are produced by the in-process consumer,
// so the command waits until every chunk has its vector before exiting.
func main() {
	dir := flag.String("dir", "", "folder containing PDF files")
	timeout := flag.Duration("timeout", 10*time.Minute, "max wait for embedding completion")
	flag.Parse()

	if *dir == "" {
		color.Red("Usage: ingest -dir <folder-with-pdfs>")
		os.Exit(1)
	}

	pdfs, err := filepath.Glob(filepath.Join(*dir, "*.pdf"))
	if err != nil || len(pdfs) == 0 {
		color.Red("No PDF files found in %s", *dir)
		os.Exit(1)
	}
	color.Cyan("Found %d PDF file(s)", len(pdfs))

	cfg := config.Load()
	db, err := database.Connect(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(db, cfg)

	ctx := context.Background()
	if err := container.ConsumerService.Consume(ctx); err != nil {
		log.Fatalf("Failed to start embedding consumer: %v", err)
	}

	for _, path := range pdfs {
		color.White("Ingesting %s ...", filepath.Base(path))
		count, err := container.IngestService.IngestPDF(ctx, path)
		if err != nil {
			color.Red("  failed: %v", err)
			os.Exit(1)
		}
		color.Green("  stored %d chunk(s)", count)
	}

	knowledgeRepo := implementation.NewKnowledgeRepository(db)
	embeddingRepo := implementation.NewChunkEmbeddingRepository(db)
	if err := waitForEmbeddings(ctx, knowledgeRepo, embeddingRepo, *timeout); err != nil {
		color.Red("Embedding did not complete: %v", err)
		os.Exit(1)
	}

	if err := container.KeywordService.Rebuild(ctx); err != nil {
		color.Yellow("Keyword rebuild failed (the server rebuilds at startup): %v", err)
	}

	color.Green("Ingestion complete")
}

// waitForEmbeddings polls until every stored chunk has its vector: the
// consumer works off the in-process pubsub, so exiting earlier would drop
// queued chunks.
func waitForEmbeddings(
	ctx context.Context,
	knowledge contract.KnowledgeRepository,
	embeddings contract.ChunkEmbeddingRepository,
	timeout time.Duration,
) error {
	deadline := time.Now().Add(timeout)

	for {
		chunkCount, err := knowledge.Count(ctx)
		if err != nil {
			return err
		}
		embeddingCount, err := embeddings.Count(ctx)
		if err != nil {
			return err
		}

		if embeddingCount >= chunkCount {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("timed out with %d of %d chunks embedded", embeddingCount, chunkCount)
		}

		color.White("  embedded %d / %d ...", embeddingCount, chunkCount)
		time.Sleep(2 * time.Second)
	}
}
