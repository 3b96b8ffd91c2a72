/*
Copyright © 2025 dbarkol
*/
package cmd

import (
	"log"

	"github.com/dbarkol/telco-ai-solution-labs/handler"
	"github.com/dbarkol/telco-ai-solution-labs/service"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

// serveCmd starts the HTTP API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the support API server",
	Long:  `Starts a server that answers gateway support questions over HTTP and websocket.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		store := newStore(cfg)
		clientConfig := service.NewAIClientConfig(cfg)
		embedder := service.NewEmbeddingService(clientConfig, cfg.EmbeddingDeployment)
		rag := service.NewRAGService(embedder, store, newGenerator(cfg), service.NewRankedFusionPolicy(), cfg.TopK)

		indexing := service.NewIndexingService(
			service.NewDocumentService(),
			service.NewChunkerService(cfg.ChunkSize, cfg.ChunkOverlap),
			embedder,
			store,
		)
		files, err := service.NewFileService(cfg.UploadDir, indexing)
		if err != nil {
			log.Fatalf("Failed to set up upload directory: %v", err)
		}

		askHandler := handler.NewAskHandler(rag)
		searchHandler := handler.NewSearchHandler(rag)
		uploadHandler := handler.NewUploadHandler(files)
		wsService := service.NewWebSocketService(rag)

		router := gin.Default()
		router.Use(handler.CorsMiddleware)

		router.GET("/health", handler.HandleHealth)

		apiV1 := router.Group("/api/v1")
		{
			apiV1.POST("/ask", askHandler.HandleAsk)
			apiV1.POST("/documents/search", searchHandler.HandleSearch)
			apiV1.GET("/ws/ask", func(c *gin.Context) {
				wsService.HandleAsk(c.Writer, c.Request)
			})
		}

		adminV1 := router.Group("/admin/api/v1")
		{
			adminV1.POST("/upload", uploadHandler.HandleUpload)
		}

		log.Printf("Starting server on port %s...", cfg.Port)
		if err := router.Run(":" + cfg.Port); err != nil {
			log.Fatal("Server error:", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
