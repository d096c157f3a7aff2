// Command strata derives document outlines (title plus H1..H6 headings
// with pages) from PDFs, as single files or directory batches.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/colmreid/strata/version"
)

var (
	cfgFile  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "strata",
	Short: "Derive structured outlines from PDF documents",
	Long: `Strata converts PDF documents into structured outlines: a title plus
the heading hierarchy (H1, H2, H3, ...) with the page each heading
appears on.

The result is deterministic and fully offline: no network access, no
model downloads, the same document always yields the same outline.`,
	Version:       version.GitRelease,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.strata/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&logLevel, "log-level", "info", "log level: debug, info, warn, error",
	)

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		slog.SetDefault(newLogger(logLevel))
	}

	rootCmd.AddCommand(outlineCmd)
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(versionCmd)
}

// newLogger builds the process-wide structured logger. Logs go to stderr
// so piped outline JSON stays clean.
func newLogger(level string) *slog.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}
