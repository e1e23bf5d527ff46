package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/unieval-ai/unieval/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	flagLogLevel  string
	flagLogFormat string
)

var rootCmd = &cobra.Command{
	Use:   "unieval",
	Short: "Score unified multimodal models on generation benchmarks",
	Long: "UniEval scores a unified model's answers to multiple-choice questions\n" +
		"attached to generation prompts and aggregates them into a UniScore\n" +
		"across the two-level tag taxonomy.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(parseLevel(flagLogLevel), flagLogFormat, nil)
	},
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "log format: text or json")
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(screenCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
