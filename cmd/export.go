// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/saveenstha/repopulse/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Exports a repository report as an Excel workbook",
	Long: `Fetches a repository's recent activity, computes the analytics report
and writes it to an .xlsx workbook with one sheet per dashboard section.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		owner, _ := cmd.Flags().GetString("owner")
		repo, _ := cmd.Flags().GetString("repo")
		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out = fmt.Sprintf("%s-%s-report.xlsx", owner, repo)
		}

		d, err := buildDeps(cmd, false, true)
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

		if err := export.SaveReport(report, out); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write workbook: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Report written to %s\n", out)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringP("owner", "o", "", "Repository owner (required)")
	exportCmd.Flags().StringP("repo", "r", "", "Repository name (required)")
	exportCmd.MarkFlagRequired("owner")
	exportCmd.MarkFlagRequired("repo")
	exportCmd.Flags().String("out", "", "Output path (defaults to <owner>-<repo>-report.xlsx)")
}
