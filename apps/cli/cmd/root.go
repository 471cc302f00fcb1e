// Package cmd implements the fetchkit command line interface.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "fetchkit",
	Short: "fetch-style HTTP requests from the command line",
	Long: `fetchkit issues fetch-style HTTP requests through pluggable
transports. Requests can be sent live, recorded into a local SQLite
store, replayed offline, or benchmarked.`,
}

func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(requestCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(versionCmd)
}
