/*
Copyright © 2025 nordgaard
*/
package cmd

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nordgaard/saiborg-be/config"
	"github.com/nordgaard/saiborg-be/database"
	"github.com/nordgaard/saiborg-be/handler"
	"github.com/nordgaard/saiborg-be/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the chat gateway",
	Long:  `Starts the server that receives chat mentions and answers them.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config-file")
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		if err := cfg.Validate(); err != nil {
			log.Fatalf("Invalid config: %v", err)
		}

		logger := newLogger()
		defer logger.Sync()

		ctx := context.Background()
		llm, embedder, err := newAIProvider(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to initialize AI provider: %v", err)
		}

		// A missing or unreachable index disables retrieval; the assistant
		// keeps answering from general knowledge.
		var searcher service.VectorSearcher
		weaviateDb, err := database.NewWeaviateStore(cfg.WeaviateStoreConfig)
		if err != nil {
			logger.Warn("no document index available, RAG disabled", zap.Error(err))
		} else {
			searcher = weaviateDb
		}

		mondayService := service.NewMondayService(cfg.Monday, logger)
		if !mondayService.Configured() {
			logger.Warn("MONDAY_API_KEY missing – Monday functions will not work")
		}

		retriever := service.NewRetrieverService(embedder, searcher, cfg.RetrievalLimit, logger)
		answers := service.NewAnswerService(llm, retriever, logger)
		intents := service.NewIntentService()
		assistant := service.NewAssistantService(intents, answers, mondayService, cfg.Monday.BoardID, logger)

		wsService := service.NewWebSocketService(assistant, cfg.BotUserID, logger)
		corsHandler := handler.NewCorsHandler()
		chatHandler := handler.NewChatHandler(assistant, wsService)

		// Setup Gin router
		router := gin.Default()
		router.Use(corsHandler.CorsMiddleware)

		apiV1 := router.Group("/api/v1")
		apiV1.POST("/message", chatHandler.HandleMessage)

		router.GET("/ws", gin.WrapF(wsService.HandleChat))
		router.GET("/healthz", func(c *gin.Context) {
			c.String(http.StatusOK, "OK")
		})

		logger.Info("Saiborg is online", zap.String("port", cfg.Port))
		if err := router.Run(":" + cfg.Port); err != nil {
			log.Fatal("Server error:", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
	startCmd.Flags().StringP("config-file", "c", "config/config.yaml", "config file")
}
