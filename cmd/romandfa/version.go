package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/romandfa"
	"github.com/spf13/cobra"
)

// Version returns the trimmed build version.
func Version() string {
	return strings.TrimSpace(romandfa.Version)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of romandfa",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("romandfa version %s\n", Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
