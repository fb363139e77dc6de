/*
Copyright © 2025 nordgaard
*/
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/nordgaard/saiborg-be/config"
	"github.com/nordgaard/saiborg-be/service"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "saiborg-be",
	Short: "Saiborg chat assistant backend",
	Long: `Saiborg answers questions in a team chat channel by combining a
locally indexed document corpus (RAG) with monday.com CRM records.

Subcommands start the chat gateway, rebuild the document index from a
directory of PDFs, or probe the CRM connection.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.saiborg-be.yaml)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".saiborg-be" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".saiborg-be")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func newLogger() *zap.Logger {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to initialize logger:", err)
		os.Exit(1)
	}
	return logger
}

// newAIProvider builds the configured LLM/embedding provider. Both returned
// values are usually the same client exposed through two interfaces.
func newAIProvider(ctx context.Context, cfg *config.Config) (service.LLMService, service.EmbeddingService, error) {
	switch cfg.AIProvider {
	case "openai":
		s := service.NewOpenAIService(cfg.AIEndpoint, cfg.OpenAIAPIKey, cfg.Model, cfg.EmbeddingModel)
		return s, s, nil
	case "gemini":
		s, err := service.NewGeminiService(ctx, cfg.GeminiAPIKey, cfg.Model, cfg.EmbeddingModel)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	default:
		return nil, nil, fmt.Errorf("unknown ai_provider: %s", cfg.AIProvider)
	}
}
