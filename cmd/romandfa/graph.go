package main

import (
	"context"
	"os"

	"github.com/aretw0/romandfa/internal/cli"
	"github.com/aretw0/romandfa/internal/config"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [numeral]",
	Short: "Export the automaton visualization",
	Long: `Outputs a Mermaid diagram (graph LR) of the automaton. When a numeral is given,
the states and edges it visits are highlighted.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, logger, err := loadConfig(cmd)
		exitOnError("Error loading config", err)
		cfg.Store = config.StoreMemory

		engine, closeStore, err := cli.NewEngine(context.Background(), cli.EngineOptions{Config: cfg, Logger: logger})
		exitOnError("Error initializing engine", err)
		defer closeStore()

		hideDead, _ := cmd.Flags().GetBool("hide-dead")
		opts := cli.GraphOptions{HideDead: hideDead}
		if len(args) > 0 {
			opts.Input = args[0]
		}
		exitOnError("Error rendering graph", cli.RunGraph(cmd.Context(), engine, os.Stdout, opts))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().Bool("hide-dead", false, "Omit the dead state and the edges into it")
}
