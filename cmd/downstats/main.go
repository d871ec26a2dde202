// Package main provides the entry point for the downstats CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/downstats/cmd/downstats/commands"
	"github.com/Sumatoshi-tech/downstats/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "downstats",
		Short: "Downstats - download telemetry reconciliation and reporting",
		Long: `Downstats ingests the daily download feeds and the local override
file, reconciles them into one table, and renders the summary report.

Commands:
  run       Fetch, reconcile, validate and render`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewRunCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "downstats %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
