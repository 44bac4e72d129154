// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/saveenstha/repopulse/internal/config"
	"github.com/saveenstha/repopulse/internal/gateway"
	"github.com/saveenstha/repopulse/internal/usecase"
)

var rootCmd = &cobra.Command{
	Use:   "repopulse",
	Short: "Analytics for a single GitHub repository.",
	Long: `repopulse analyzes one GitHub repository: development velocity, issue
health, contributor ranking and a star growth forecast. The report can be
served as a web dashboard, printed as JSON, or exported as a workbook.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Flags shared by all subcommands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().String("token", "", "GitHub API token (defaults to GITHUB_TOKEN)")
}

// deps bundles the collaborators every subcommand assembles the same way.
type deps struct {
	cfg      *config.Config
	logger   *logrus.Logger
	fetcher  gateway.Fetcher
	analyzer *usecase.Analyzer
}

// buildDeps loads the configuration and wires the gateway and analyzer.
// With quiet set, logs are discarded unless --verbose is given, keeping
// one-shot command output clean. withCache only matters for long-lived
// commands; a one-shot process never re-reads its own cache.
func buildDeps(cmd *cobra.Command, withCache, quiet bool, opts ...usecase.Option) (*deps, error) {
	cfg := config.Load()
	if token, _ := cmd.InheritedFlags().GetString("token"); token != "" {
		cfg.Token = token
	}
	verbose, _ := cmd.InheritedFlags().GetBool("verbose")

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else if quiet {
		logger.SetOutput(io.Discard)
	}

	gh, err := gateway.NewGitHubGateway(cfg.Token, logger)
	if err != nil {
		return nil, err
	}
	var fetcher gateway.Fetcher = gh
	if withCache {
		cache := gateway.NewSnapshotCache(cfg.CacheTTL)
		fetcher = gateway.NewCachedFetcher(gh, cache, logger)
	}

	return &deps{
		cfg:      cfg,
		logger:   logger,
		fetcher:  fetcher,
		analyzer: usecase.NewAnalyzer(logger, opts...),
	}, nil
}
