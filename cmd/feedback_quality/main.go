// Package main provides the feedback_quality CLI: the HTTP API server and
// one-shot evaluation of response set files.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "feedback_quality",
	Short: "Feedback quality assessment for 360 reviews",
	Long: `feedback_quality grades the quality of 360-degree feedback before it reaches the employee.

A rule-based evaluation always runs; when a model provider is configured and the
campaign allows it, the model's review replaces the rule-based one.

Configuration is read from an optional JSON file (--config) and the environment
(FEEDBACK_AI_*, DATABASE_URL, REDIS_URL, PORT). A .env file is loaded if present.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.json (environment variables override file values)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging and boxed, human-readable output")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
