/*
Copyright © 2025 dbarkol
*/
package cmd

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/dbarkol/telco-ai-solution-labs/service"
	"github.com/spf13/cobra"
)

// askCmd answers a single question from the command line.
var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the manual a question",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		question := strings.Join(args, " ")

		cfg := mustLoadConfig()
		store := newStore(cfg)
		embedder := service.NewEmbeddingService(service.NewAIClientConfig(cfg), cfg.EmbeddingDeployment)
		rag := service.NewRAGService(embedder, store, newGenerator(cfg), service.NewRankedFusionPolicy(), cfg.TopK)

		resp, err := rag.Query(context.Background(), question)
		if err != nil {
			log.Fatalf("Query failed: %v", err)
		}

		fmt.Println(resp.Answer)
		fmt.Println()
		fmt.Printf("Confidence: %s\n", resp.Confidence)
		for i, src := range resp.Sources {
			pages := make([]string, len(src.Pages))
			for j, p := range src.Pages {
				pages[j] = fmt.Sprintf("%d", p)
			}
			section := ""
			if src.Section != "" {
				section = " (" + src.Section + ")"
			}
			fmt.Printf("Source %d: page %s%s, score %.4f\n", i+1, strings.Join(pages, ", "), section, src.RelevanceScore)
		}
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}
