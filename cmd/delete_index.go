/*
Copyright © 2025 dbarkol
*/
package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"
)

// deleteIndexCmd removes the search index and everything in it.
var deleteIndexCmd = &cobra.Command{
	Use:   "delete-index",
	Short: "Delete the search index",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()
		store := newStore(cfg)

		if err := store.DeleteIndex(context.Background()); err != nil {
			log.Fatalf("Failed to delete index %s: %v", cfg.IndexName, err)
		}
		log.Printf("Index %s deleted", cfg.IndexName)
	},
}

func init() {
	rootCmd.AddCommand(deleteIndexCmd)
}
