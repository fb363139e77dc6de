/*
Copyright © 2025 nordgaard
*/
package cmd

import (
	"context"
	"log"

	"github.com/nordgaard/saiborg-be/config"
	"github.com/nordgaard/saiborg-be/database"
	"github.com/nordgaard/saiborg-be/service"
	"github.com/nordgaard/saiborg-be/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// buildIndexCmd represents the build-index command
var buildIndexCmd = &cobra.Command{
	Use:   "build-index",
	Short: "Rebuild the document index from a directory of PDFs",
	Long: `Reads every PDF in the data directory, splits the page texts into
overlapping chunks, embeds them and replaces the similarity index in full.
Run this offline; it must not overlap with live query serving.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config-file")
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		if err := cfg.Validate(); err != nil {
			log.Fatalf("Invalid config: %v", err)
		}

		if dataDir, _ := cmd.Flags().GetString("data-dir"); dataDir != "" {
			cfg.DataDir = dataDir
		}
		if chunkSize, _ := cmd.Flags().GetInt("chunk-size"); chunkSize > 0 {
			cfg.ChunkSize = chunkSize
		}
		if chunkOverlap, _ := cmd.Flags().GetInt("chunk-overlap"); chunkOverlap >= 0 {
			cfg.ChunkOverlap = chunkOverlap
		}

		logger := newLogger()
		defer logger.Sync()

		ctx := context.Background()
		_, embedder, err := newAIProvider(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to initialize AI provider: %v", err)
		}

		weaviateDb, err := database.NewWeaviateStore(cfg.WeaviateStoreConfig)
		if err != nil {
			log.Fatalf("Failed to connect to Weaviate database: %v", err)
		}

		pdfService := service.NewPDFService(
			types.DocumentServiceConfig{
				MaxChunkSize: cfg.ChunkSize,
				OverlapSize:  cfg.ChunkOverlap,
			}, logger)
		indexer := service.NewIndexerService(pdfService, embedder, weaviateDb, logger)

		logger.Info("building index",
			zap.String("data_dir", cfg.DataDir),
			zap.Int("chunk_size", cfg.ChunkSize),
			zap.Int("chunk_overlap", cfg.ChunkOverlap))
		count, err := indexer.BuildIndex(ctx, cfg.DataDir)
		if err != nil {
			log.Fatalf("Failed to build index: %v", err)
		}
		logger.Info("index built successfully", zap.Int("chunks", count))
	},
}

func init() {
	rootCmd.AddCommand(buildIndexCmd)
	buildIndexCmd.Flags().StringP("config-file", "c", "config/config.yaml", "config file")
	buildIndexCmd.Flags().String("data-dir", "", "directory of source PDFs (overrides config)")
	buildIndexCmd.Flags().Int("chunk-size", 0, "target chunk size (overrides config)")
	buildIndexCmd.Flags().Int("chunk-overlap", -1, "chunk overlap (overrides config)")
}
