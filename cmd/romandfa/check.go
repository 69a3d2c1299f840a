package main

import (
	"os"

	"github.com/aretw0/romandfa/internal/cli"
	"github.com/aretw0/romandfa/internal/presentation/tui"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [numeral...]",
	Short: "Validate and decode numerals",
	Long: `Validates each numeral given as an argument. Without arguments, numerals are read
from standard input one per line; a prompt is shown when stdin is a terminal.

Exits with status 1 if any numeral is rejected.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, logger, err := loadConfig(cmd)
		exitOnError("Error loading config", err)

		format, _ := cmd.Flags().GetString("format")
		trace, _ := cmd.Flags().GetBool("trace")

		ctx := cmd.Context()

		engine, closeStore, err := cli.NewEngine(ctx, cli.EngineOptions{Config: cfg, Logger: logger})
		exitOnError("Error initializing engine", err)
		defer closeStore()

		interactive := len(args) == 0 && cli.IsTerminal(os.Stdin)
		if interactive && format == cli.FormatText {
			tui.PrintBanner(os.Stdout, Version())
		}

		opts := cli.CheckOptions{
			Inputs:  args,
			In:      os.Stdin,
			Out:     os.Stdout,
			Format:  format,
			Trace:   trace,
			Prompt:  interactive,
			Profile: termenv.EnvColorProfile(),
		}
		if cli.IsTerminal(os.Stdout) {
			opts.Render = tui.NewRenderer()
		}

		rejected, err := cli.RunCheck(ctx, engine, opts)
		exitOnError("Check failed", err)
		if rejected > 0 {
			closeStore()
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringP("format", "f", cli.FormatText, "Output format: text, json (NDJSON) or markdown")
	checkCmd.Flags().BoolP("trace", "t", false, "Print the state path of each numeral (text format)")
}
