// Package watch rebuilds the publication catalog when its source file changes.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/homepage/pubs/internal/enrich"
	"github.com/homepage/pubs/internal/logger"
)

// DefaultDebounce collapses bursts of events from a single save.
const DefaultDebounce = 100 * time.Millisecond

// LoadFunc builds a fresh catalog.
type LoadFunc func(ctx context.Context) (*enrich.Catalog, error)

// Watcher publishes the latest successfully loaded catalog.
type Watcher struct {
	path     string
	load     LoadFunc
	log      logger.Logger
	debounce time.Duration
	current  atomic.Pointer[enrich.Catalog]

	// OnReload is called after each successful load with the new catalog.
	OnReload func(*enrich.Catalog)
	// OnError is called when a load fails. The previous catalog stays current.
	OnError func(error)
}

// New creates a watcher for the source file at path.
func New(path string, load LoadFunc, log logger.Logger) *Watcher {
	if log == nil {
		log = logger.Discard()
	}
	return &Watcher{
		path:     path,
		load:     load,
		log:      log,
		debounce: DefaultDebounce,
	}
}

// Current returns the most recent catalog, or nil before the first
// successful load.
func (w *Watcher) Current() *enrich.Catalog {
	return w.current.Load()
}

// Reload runs the pipeline once and, on success, replaces the current catalog.
func (w *Watcher) Reload(ctx context.Context) error {
	start := time.Now()
	cat, err := w.load(ctx)
	if err != nil {
		w.log.Warn("reload failed", "path", w.path, "err", err)
		if w.OnError != nil {
			w.OnError(err)
		}
		return err
	}

	w.current.Store(cat)
	w.log.Info("catalog loaded", "path", w.path, "records", cat.Len(), "took", time.Since(start))
	if w.OnReload != nil {
		w.OnReload(cat)
	}
	return nil
}

// Run loads the catalog, then reloads it on every change to the source file
// until ctx is canceled. The containing directory is watched so editors that
// save by renaming are seen too.
func (w *Watcher) Run(ctx context.Context) error {
	abs, err := filepath.Abs(w.path)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	_ = w.Reload(ctx)

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.log.Debug("source changed", "op", event.Op.String())
			timer.Reset(w.debounce)

		case <-timer.C:
			_ = w.Reload(ctx)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", "err", err)
		}
	}
}
