package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"resume-reviewer/internal/config"
	"resume-reviewer/internal/models"
	"resume-reviewer/internal/services"
)

// Ingests curated skill-guide PDFs into the Qdrant collection used to
// ground feedback enrichment. Each PDF in ./guides is chunked, embedded
// and upserted under the skill named by its filename, e.g.
// guides/docker.pdf -> skill "docker".
func main() {
	log.Println("starting skill-guide ingestion")

	cfg := config.Load()

	if cfg.Gemini.APIKey == "" || cfg.Qdrant.URL == "" {
		log.Fatal("GEMINI_API_KEY and QDRANT_URL are required for ingestion")
	}

	gemini, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Fatalf("failed to initialize gemini: %v", err)
	}

	guides, err := services.NewGuideStore(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
	if err != nil {
		log.Fatalf("failed to initialize qdrant: %v", err)
	}

	ctx := context.Background()

	if err := guides.InitCollection(ctx); err != nil {
		log.Fatalf("failed to initialize collection: %v", err)
	}

	extractor := services.NewDocumentExtractor()
	chunker := services.NewTextChunker()

	paths, err := filepath.Glob("./guides/*.pdf")
	if err != nil {
		log.Fatalf("failed to list guide files: %v", err)
	}
	if len(paths) == 0 {
		log.Fatal("no guide PDFs found under ./guides")
	}

	successCount := 0
	failCount := 0

	for _, path := range paths {
		skill := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		log.Printf("processing guide for %q (%s)", skill, path)

		content, err := os.ReadFile(path)
		if err != nil {
			log.Printf("  failed to read file: %v", err)
			failCount++
			continue
		}

		text, err := extractor.Extract(models.RawDocument{
			Content:   content,
			MediaType: services.MediaTypePDF,
			Filename:  filepath.Base(path),
		})
		if err != nil {
			log.Printf("  failed to extract text: %v", err)
			failCount++
			continue
		}

		chunks := chunker.ChunkText(text, 1000, 200)
		log.Printf("  created %d chunks", len(chunks))

		stored := 0
		for i, chunk := range chunks {
			embedding, err := gemini.GenerateEmbedding(ctx, chunk)
			if err != nil {
				log.Printf("  failed to embed chunk %d: %v", i+1, err)
				continue
			}

			guideID := fmt.Sprintf("%s_chunk_%d", skill, i)
			if err := guides.UpsertGuide(ctx, guideID, skill, chunk, embedding); err != nil {
				log.Printf("  failed to store chunk %d: %v", i+1, err)
				continue
			}
			stored++
		}

		log.Printf("  stored %d/%d chunks", stored, len(chunks))
		if stored > 0 {
			successCount++
		} else {
			failCount++
		}
	}

	log.Printf("ingestion finished: %d ok, %d failed", successCount, failCount)
}
