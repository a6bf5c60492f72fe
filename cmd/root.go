// Package cmd implements the CLI commands using Cobra.
package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"xpost/internal/config"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Global flags
var (
	flagFormat string
	flagOutput string
	flagStdin  bool
	flagLimit  int
	flagQuiet  bool
	flagDebug  bool
)

// cfg holds the loaded configuration (merged: defaults < config file < flags).
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "xpost [url...]",
	Short: "Fetch X (Twitter) posts as structured JSON",
	Long: `xpost fetches X (Twitter) posts by URL and emits structured JSON records.
Each post is tried against the oEmbed API, the post page's preview metadata,
and the embeddable tweet page, in that order; extraction is best-effort and
falls back to a placeholder when every source is blocked.`,
	Args:              cobra.ArbitraryArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
	RunE:              fetchRun,
}

// Execute runs the root command. Exit code 130 distinguishes user
// cancellation from ordinary failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errInterrupted) {
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "json", "Output format: json (array) or jsonl (one JSON per line)")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.PersistentFlags().BoolVar(&flagStdin, "stdin", false, "Read URLs from stdin (one per line)")
	rootCmd.PersistentFlags().IntVar(&flagLimit, "limit", 0, "Limit the number of posts to process")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress messages")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "x", false, "Debug logging to stderr")

	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("xpost", Version)
	},
}

// loadConfig loads and merges configuration: defaults < config file < CLI flags.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if flagDebug {
		cfg.Debug = true
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Diagnostics always go to stderr, never the payload stream.
	log.SetOutput(os.Stderr)
	log.SetFlags(0)

	return nil
}

// infof logs a progress message unless quiet mode is on.
func infof(format string, args ...interface{}) {
	if !flagQuiet {
		log.Printf(format, args...)
	}
}

// debugf logs a message if debug mode is enabled.
func debugf(format string, args ...interface{}) {
	if cfg != nil && cfg.Debug {
		log.Printf(format, args...)
	}
}
