package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/colmreid/strata"
	"github.com/colmreid/strata/extract"
	"github.com/colmreid/strata/internal/batch"
	"github.com/colmreid/strata/internal/config"
	"github.com/colmreid/strata/model"
	"github.com/colmreid/strata/ocr"
)

var (
	processWatch   bool
	processInput   string
	processOutput  string
	processWorkers int
	processTimeout time.Duration
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Process a directory of documents",
	Long: `Process derives outlines for every document in the configured input
directory, writing one <stem>.json per document to the output directory.

With --watch, strata keeps running and processes documents as they
arrive.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := config.NewManager(cfgFile)
		if err != nil {
			return err
		}
		if processWatch {
			mgr.Watch()
		}

		// Copy so flag overrides never leak into the live config, which
		// watch mode may replace on reload.
		cfg := *mgr.Get()
		if processInput != "" {
			cfg.Input.Dir = processInput
		}
		if processOutput != "" {
			cfg.Output.Dir = processOutput
		}
		if processWorkers > 0 {
			cfg.Workers = processWorkers
		}
		if processTimeout > 0 {
			cfg.Timeout = processTimeout
		}

		if cfg.OCR.Enabled {
			// Fail fast on misconfiguration before the batch starts.
			client, err := ocr.New()
			if err != nil {
				return fmt.Errorf("ocr: %w", err)
			}
			client.Close()
		}

		process := func(ctx context.Context, path string) (model.Outline, error) {
			cur := mgr.Get()
			chain := strata.Open(path).WithPipelineConfig(cur.ToPipelineConfig())
			if cur.OCR.Enabled {
				// Tesseract sessions are not concurrent-safe, so each
				// document gets its own.
				client, err := ocr.New()
				if err != nil {
					return model.Outline{}, fmt.Errorf("ocr: %w", err)
				}
				defer client.Close()
				if err := client.SetLanguage(cur.OCR.Language); err != nil {
					return model.Outline{}, fmt.Errorf("ocr language: %w", err)
				}
				chain = chain.WithOCR(client, extract.NewPdftoppmRenderer(path))
			}
			return chain.Outline()
		}

		o := batch.New(batch.Config{
			InputDir:  cfg.Input.Dir,
			Pattern:   cfg.Input.Pattern,
			OutputDir: cfg.Output.Dir,
			Workers:   cfg.Workers,
			Timeout:   cfg.Timeout,
			Validate:  cfg.Output.Validate,
		}, process, slog.Default())

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if processWatch {
			if err := o.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		}

		summary, err := o.Run(ctx)
		if err != nil {
			return err
		}
		if summary.Failed > 0 {
			return fmt.Errorf("%d of %d documents failed",
				summary.Failed, summary.Failed+summary.Processed)
		}
		return nil
	},
}

func init() {
	processCmd.Flags().BoolVar(
		&processWatch, "watch", false, "keep running and process documents as they arrive",
	)
	processCmd.Flags().StringVar(
		&processInput, "input", "", "input directory (overrides config)",
	)
	processCmd.Flags().StringVar(
		&processOutput, "output", "", "output directory (overrides config)",
	)
	processCmd.Flags().IntVar(
		&processWorkers, "workers", 0, "concurrent documents (overrides config)",
	)
	processCmd.Flags().DurationVar(
		&processTimeout, "timeout", 0, "per-document timeout (overrides config)",
	)
}
