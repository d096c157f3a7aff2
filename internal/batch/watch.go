package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch processes documents as they appear in the input directory,
// blocking until the context is cancelled. Existing documents are
// processed first, then filesystem events drive the rest.
func (o *Orchestrator) Watch(ctx context.Context) error {
	if _, err := o.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(o.config.InputDir); err != nil {
		return fmt.Errorf("watch %s: %w", o.config.InputDir, err)
	}
	o.logger.Info("watching for documents", "dir", o.config.InputDir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !o.matches(event.Name) {
				continue
			}
			r := o.processOne(ctx, event.Name)
			if r.Err != nil {
				o.logger.Error("document failed",
					"job", r.JobID, "input", r.Input, "error", r.Err)
				continue
			}
			o.logger.Info("document processed",
				"job", r.JobID, "input", r.Input, "output", r.Output)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			o.logger.Error("watch error", "error", err)
		}
	}
}

// matches reports whether a path is a regular file matching the input
// pattern.
func (o *Orchestrator) matches(path string) bool {
	ok, err := filepath.Match(o.config.Pattern, filepath.Base(path))
	if err != nil || !ok {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
