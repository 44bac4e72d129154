// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/saveenstha/repopulse/internal/usecase"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Analyzes a repository and outputs the report as JSON",
	Long: `Fetches a repository's recent activity (metadata, contributors, issues,
pull requests, commits), computes the analytics report and prints it as
JSON. Partial API failures are reported inside the report as warnings.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		owner, _ := cmd.Flags().GetString("owner")
		repo, _ := cmd.Flags().GetString("repo")
		periods, _ := cmd.Flags().GetInt("periods")
		top, _ := cmd.Flags().GetInt("top")

		d, err := buildDeps(cmd, false, true,
			usecase.WithForecastPeriods(periods),
			usecase.WithTopContributors(top),
		)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
			os.Exit(1)
		}

		snap, err := d.fetcher.FetchSnapshot(ctx, owner, repo)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to fetch repository data: %v\n", err)
			os.Exit(1)
		}
		report := d.analyzer.BuildReport(snap)
		if !report.Found() {
			fmt.Fprintf(os.Stderr, "Repository %s/%s was not found.\n", owner, repo)
			os.Exit(1)
		}

		jsonData, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to marshal report to JSON: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(jsonData))
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringP("owner", "o", "", "Repository owner (required)")
	reportCmd.Flags().StringP("repo", "r", "", "Repository name (required)")
	reportCmd.MarkFlagRequired("owner")
	reportCmd.MarkFlagRequired("repo")
	reportCmd.Flags().Int("periods", 30, "Forecast horizon in days")
	reportCmd.Flags().Int("top", 10, "How many contributors to rank")
}
