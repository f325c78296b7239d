package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vytor/rankedversus/internal/config"
	"github.com/vytor/rankedversus/internal/logger"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "rankedversus",
	Short: "Head-to-head records for MCSR Ranked players",
	Long: `A command-line viewer for ranked head-to-head records. Each run pulls
the matches played since the last run into the local cache and prints the
filtered and sorted records.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.SetDefault(logger.New(
			logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
			logger.WithOutput(os.Stderr),
			logger.WithColors(true),
		))
		return cfg.Validate()
	},
}

func init() {
	cfg = config.Load()
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to the SQLite cache")
	flags.StringVar(&cfg.RankedAPIURL, "api", cfg.RankedAPIURL, "Base URL of the ranked API")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (DEBUG, INFO, WARN, ERROR)")
	flags.DurationVar(&cfg.HTTPTimeout, "timeout", cfg.HTTPTimeout, "Timeout for one ranked API request")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
