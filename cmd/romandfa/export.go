package main

import (
	"os"

	"github.com/aretw0/romandfa/internal/cli"
	"github.com/aretw0/romandfa/internal/config"
	"github.com/aretw0/romandfa/pkg/adapters/file"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the active automaton definition",
	Long: `Prints the automaton (built-in or loaded with --definition) with its completed
transition table. The output is a valid --definition file and a starting point for custom tables.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, logger, err := loadConfig(cmd)
		exitOnError("Error loading config", err)
		cfg.Store = config.StoreMemory

		engine, closeStore, err := cli.NewEngine(cmd.Context(), cli.EngineOptions{Config: cfg, Logger: logger})
		exitOnError("Error initializing engine", err)
		defer closeStore()

		format, _ := cmd.Flags().GetString("format")
		data, err := file.EncodeDefinition(engine.Inspect().Definition(), file.Format(format))
		exitOnError("Error encoding definition", err)
		_, _ = os.Stdout.Write(data)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringP("format", "f", "yaml", "Output format: yaml or json")
}
