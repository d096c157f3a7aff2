package batch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/colmreid/strata/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeInputs(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("%PDF-1.4"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func stubOutline(title string) model.Outline {
	out := model.NewOutline(title)
	out.Entries = append(out.Entries, model.OutlineEntry{
		Level: model.Level1, Text: "1. Overview", Page: 1,
	})
	return out
}

func TestRunProcessesAllDocuments(t *testing.T) {
	in, outDir := t.TempDir(), t.TempDir()
	writeInputs(t, in, "a.pdf", "b.pdf", "c.pdf")

	o := New(Config{InputDir: in, OutputDir: outDir, Workers: 2, Validate: true},
		func(ctx context.Context, path string) (model.Outline, error) {
			return stubOutline(filepath.Base(path)), nil
		}, discardLogger())

	summary, err := o.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if summary.Processed != 3 || summary.Failed != 0 {
		t.Fatalf("summary = %+v", summary)
	}

	for _, stem := range []string{"a", "b", "c"} {
		if _, err := os.Stat(filepath.Join(outDir, stem+".json")); err != nil {
			t.Errorf("missing output for %s: %v", stem, err)
		}
	}
}

func TestRunIgnoresNonMatchingFiles(t *testing.T) {
	in, outDir := t.TempDir(), t.TempDir()
	writeInputs(t, in, "a.pdf", "notes.txt")

	o := New(Config{InputDir: in, OutputDir: outDir},
		func(ctx context.Context, path string) (model.Outline, error) {
			return stubOutline("x"), nil
		}, discardLogger())

	summary, err := o.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if summary.Processed != 1 {
		t.Errorf("processed = %d, want 1", summary.Processed)
	}
}

func TestRunCountsFailures(t *testing.T) {
	in, outDir := t.TempDir(), t.TempDir()
	writeInputs(t, in, "good.pdf", "bad.pdf")

	o := New(Config{InputDir: in, OutputDir: outDir},
		func(ctx context.Context, path string) (model.Outline, error) {
			if filepath.Base(path) == "bad.pdf" {
				return model.Outline{}, errors.New("corrupt document")
			}
			return stubOutline("good"), nil
		}, discardLogger())

	summary, err := o.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if summary.Processed != 1 || summary.Failed != 1 {
		t.Fatalf("summary = %+v", summary)
	}
	if _, err := os.Stat(filepath.Join(outDir, "bad.json")); !os.IsNotExist(err) {
		t.Error("failed document left an output file")
	}
}

func TestRunEnforcesTimeout(t *testing.T) {
	in, outDir := t.TempDir(), t.TempDir()
	writeInputs(t, in, "slow.pdf")

	o := New(Config{InputDir: in, OutputDir: outDir, Timeout: 10 * time.Millisecond},
		func(ctx context.Context, path string) (model.Outline, error) {
			<-ctx.Done()
			return model.Outline{}, ctx.Err()
		}, discardLogger())

	summary, err := o.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if summary.Failed != 1 {
		t.Fatalf("summary = %+v, want one timeout failure", summary)
	}
}

func TestRunValidationFailure(t *testing.T) {
	in, outDir := t.TempDir(), t.TempDir()
	writeInputs(t, in, "a.pdf")

	// An entry with empty text violates the interchange schema.
	bad := model.NewOutline("t")
	bad.Entries = append(bad.Entries, model.OutlineEntry{Level: model.Level1, Text: "", Page: 1})

	o := New(Config{InputDir: in, OutputDir: outDir, Validate: true},
		func(ctx context.Context, path string) (model.Outline, error) {
			return bad, nil
		}, discardLogger())

	summary, err := o.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if summary.Failed != 1 {
		t.Fatalf("summary = %+v, want schema failure", summary)
	}
}

func TestWatchStopsOnCancel(t *testing.T) {
	in, outDir := t.TempDir(), t.TempDir()

	o := New(Config{InputDir: in, OutputDir: outDir},
		func(ctx context.Context, path string) (model.Outline, error) {
			return stubOutline("x"), nil
		}, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- o.Watch(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Watch returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not stop after cancellation")
	}
}

func TestWatchPicksUpNewFiles(t *testing.T) {
	in, outDir := t.TempDir(), t.TempDir()

	o := New(Config{InputDir: in, OutputDir: outDir},
		func(ctx context.Context, path string) (model.Outline, error) {
			return stubOutline("arrived"), nil
		}, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- o.Watch(ctx) }()

	// Give the watcher time to register before creating the file.
	time.Sleep(100 * time.Millisecond)
	writeInputs(t, in, "late.pdf")

	output := filepath.Join(outDir, "late.json")
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(output); err == nil {
			cancel()
			<-done
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("watched file was never processed")
}
