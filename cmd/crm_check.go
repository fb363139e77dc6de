/*
Copyright © 2025 nordgaard
*/
package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/nordgaard/saiborg-be/config"
	"github.com/nordgaard/saiborg-be/service"
	"github.com/spf13/cobra"
)

// crmCheckCmd represents the crm-check command
var crmCheckCmd = &cobra.Command{
	Use:   "crm-check",
	Short: "Test the monday.com API connection",
	Long:  `Runs the identity query against monday.com and reports who the configured API key belongs to.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config-file")
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		logger := newLogger()
		defer logger.Sync()

		mondayService := service.NewMondayService(cfg.Monday, logger)
		if !mondayService.Configured() {
			log.Fatal("MONDAY_API_KEY is missing")
		}

		me, err := mondayService.Me(context.Background())
		if err != nil {
			log.Fatalf("❌ Error testing Monday: %v", err)
		}
		fmt.Printf("✅ OK! Logged in as: %s (%s)\n", me.Name, me.Email)
	},
}

func init() {
	rootCmd.AddCommand(crmCheckCmd)
	crmCheckCmd.Flags().StringP("config-file", "c", "config/config.yaml", "config file")
}
