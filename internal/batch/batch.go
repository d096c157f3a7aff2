// Package batch runs the outline pipeline over directories of documents:
// a bounded worker pool, per-document timeouts, and an optional watch mode
// that picks up files as they arrive. Each document is an independent
// job; one failure never stops the batch.
package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/colmreid/strata/model"
	"github.com/colmreid/strata/schema"
)

// ProcessFunc derives one document's outline. The orchestrator supplies a
// context carrying the per-document deadline.
type ProcessFunc func(ctx context.Context, path string) (model.Outline, error)

// Config holds orchestrator settings.
type Config struct {
	// InputDir is scanned for documents matching Pattern.
	InputDir string

	// Pattern is the filename glob. Default "*.pdf".
	Pattern string

	// OutputDir receives one <stem>.json per document.
	OutputDir string

	// Workers bounds concurrent documents. Default 4.
	Workers int

	// Timeout is the per-document processing deadline. Default 1 minute.
	Timeout time.Duration

	// Validate re-checks outlines against the interchange schema before
	// writing.
	Validate bool
}

// Result records the outcome of one document job.
type Result struct {
	JobID    string
	Input    string
	Output   string
	Err      error
	Duration time.Duration
}

// Summary aggregates a batch run.
type Summary struct {
	Processed int
	Failed    int
}

// Orchestrator feeds documents through a worker pool.
type Orchestrator struct {
	config  Config
	process ProcessFunc
	logger  *slog.Logger
}

// New creates an orchestrator. A nil logger falls back to slog.Default.
func New(cfg Config, process ProcessFunc, logger *slog.Logger) *Orchestrator {
	if cfg.Pattern == "" {
		cfg.Pattern = "*.pdf"
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		config:  cfg,
		process: process,
		logger:  logger.With("component", "batch"),
	}
}

// Run processes every matching document in the input directory and
// returns the aggregate summary. Individual document failures are logged
// and counted, not returned; the error covers setup problems only.
func (o *Orchestrator) Run(ctx context.Context) (Summary, error) {
	paths, err := o.scan()
	if err != nil {
		return Summary{}, err
	}
	if err := os.MkdirAll(o.config.OutputDir, 0o755); err != nil {
		return Summary{}, fmt.Errorf("create output dir: %w", err)
	}

	o.logger.Info("batch started",
		"documents", len(paths),
		"workers", o.config.Workers)

	jobs := make(chan string)
	results := make(chan Result)

	var wg sync.WaitGroup
	for i := 0; i < o.config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				results <- o.processOne(ctx, path)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, p := range paths {
			select {
			case jobs <- p:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var summary Summary
	for r := range results {
		if r.Err != nil {
			summary.Failed++
			o.logger.Error("document failed",
				"job", r.JobID,
				"input", r.Input,
				"duration", r.Duration,
				"error", r.Err)
			continue
		}
		summary.Processed++
		o.logger.Info("document processed",
			"job", r.JobID,
			"input", r.Input,
			"output", r.Output,
			"duration", r.Duration)
	}

	o.logger.Info("batch finished",
		"processed", summary.Processed,
		"failed", summary.Failed)
	return summary, ctx.Err()
}

// processOne runs a single document job under the per-document deadline
// and writes its outline.
func (o *Orchestrator) processOne(ctx context.Context, path string) Result {
	r := Result{
		JobID: uuid.NewString(),
		Input: path,
	}

	ctx, cancel := context.WithTimeout(ctx, o.config.Timeout)
	defer cancel()

	start := time.Now()
	out, err := o.process(ctx, path)
	r.Duration = time.Since(start)
	if err != nil {
		r.Err = fmt.Errorf("process %s: %w", path, err)
		return r
	}
	if err := ctx.Err(); err != nil {
		r.Err = fmt.Errorf("process %s: %w", path, err)
		return r
	}

	r.Output = o.outputPath(path)
	if err := o.write(r.Output, out); err != nil {
		r.Err = err
		return r
	}
	return r
}

// write persists one outline, through the schema when validation is on.
func (o *Orchestrator) write(path string, out model.Outline) error {
	if o.config.Validate {
		return schema.WriteFile(path, out)
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal outline: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write outline %s: %w", path, err)
	}
	return nil
}

// scan lists the matching documents in the input directory.
func (o *Orchestrator) scan() ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(o.config.InputDir, o.config.Pattern))
	if err != nil {
		return nil, fmt.Errorf("scan input dir: %w", err)
	}
	return paths, nil
}

// outputPath maps an input document to its outline file.
func (o *Orchestrator) outputPath(input string) string {
	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(o.config.OutputDir, stem+".json")
}
