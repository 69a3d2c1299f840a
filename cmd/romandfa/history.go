package main

import (
	"os"

	"github.com/aretw0/romandfa/internal/cli"
	"github.com/aretw0/romandfa/internal/config"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded verdicts",
	Long:  `Lists verdicts persisted by previous check or serve runs. Only meaningful with the redis store.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, logger, err := loadConfig(cmd)
		exitOnError("Error loading config", err)
		if cfg.Store != config.StoreRedis {
			logger.Warn("History uses the in-memory store; nothing has been recorded", "store", cfg.Store)
		}

		engine, closeStore, err := cli.NewEngine(cmd.Context(), cli.EngineOptions{Config: cfg, Logger: logger})
		exitOnError("Error initializing engine", err)
		defer closeStore()

		limit, _ := cmd.Flags().GetInt("limit")
		jsonMode, _ := cmd.Flags().GetBool("json")
		err = cli.RunHistory(cmd.Context(), engine, os.Stdout, cli.HistoryOptions{Limit: limit, JSON: jsonMode})
		exitOnError("Error listing history", err)
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 20, "Show only the most recent records (0 for all)")
	historyCmd.Flags().Bool("json", false, "Print records as NDJSON")
}
