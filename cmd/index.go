/*
Copyright © 2025 dbarkol
*/
package cmd

import (
	"context"
	"log"

	"github.com/dbarkol/telco-ai-solution-labs/service"
	"github.com/spf13/cobra"
)

// indexCmd runs the one-shot indexing job: extract, chunk, embed, upload.
var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Index a PDF manual into the search store",
	Long: `Extracts the manual's text page by page, splits it into overlapping
chunks with page provenance, embeds every chunk and uploads the result to
Weaviate. Re-running against the same document overwrites the previous run.`,
	Run: func(cmd *cobra.Command, args []string) {
		filePath, _ := cmd.Flags().GetString("file")
		reinit, _ := cmd.Flags().GetBool("reinit")
		if filePath == "" {
			log.Fatal("--file is required")
		}

		cfg := mustLoadConfig()
		store := newStore(cfg)
		ctx := context.Background()

		if reinit {
			if err := store.Reset(ctx); err != nil {
				log.Fatalf("Failed to reinitialize index: %v", err)
			}
			log.Printf("Index %s reinitialized", cfg.IndexName)
		}

		embedder := service.NewEmbeddingService(service.NewAIClientConfig(cfg), cfg.EmbeddingDeployment)
		job := service.NewIndexingService(
			service.NewDocumentService(),
			service.NewChunkerService(cfg.ChunkSize, cfg.ChunkOverlap),
			embedder,
			store,
		)

		summary, err := job.Run(ctx, filePath)
		if err != nil {
			log.Fatalf("Indexing failed: %v", err)
		}

		log.Printf("Indexed %s into %s", summary.DocumentName, cfg.IndexName)
		log.Printf("  Pages: %d (%d covered by chunks)", summary.TotalPages, summary.PagesCovered)
		log.Printf("  Chunks: %d", summary.TotalChunks)
		log.Printf("  Embedding dimensions: %d", summary.EmbeddingDims)
		log.Printf("  Took: %s", summary.Duration)
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)

	indexCmd.Flags().StringP("file", "f", "", "Path to the PDF manual to index")
	indexCmd.Flags().BoolP("reinit", "r", false, "Drop and recreate the index before uploading")
}
