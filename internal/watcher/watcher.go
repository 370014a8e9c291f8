// Package watcher notifies the picker when the project store changes on
// disk, so edits made by another projctl process show up without a restart.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/firefly-engineering/projctl/internal/logging"
)

// Watcher watches the directory holding the store database and reports
// writes to the database file or its journal files (-wal, -shm, -journal).
type Watcher struct {
	dir      string
	base     string
	debounce time.Duration
	logger   *slog.Logger
}

// Option is a function that configures the Watcher
type Option func(*Watcher)

// WithDebounce overrides DefaultDebounceDuration.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithLogger sets the watcher's logger
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		w.logger = l
	}
}

// New creates a Watcher for the database at dbPath.
func New(dbPath string, opts ...Option) *Watcher {
	w := &Watcher{
		dir:      filepath.Dir(dbPath),
		base:     filepath.Base(dbPath),
		debounce: DefaultDebounceDuration,
		logger:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Matches reports whether name is the database file or one of its
// sidecar files.
func (w *Watcher) Matches(name string) bool {
	return strings.HasPrefix(filepath.Base(name), w.base)
}

// Run watches until ctx is done, calling onChange after each burst of
// relevant events. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}

	deb := NewDebouncer(w.debounce)
	defer deb.Cancel()

	w.logger.Debug("watching store", "dir", w.dir, "file", w.base)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.Matches(ev.Name) || ev.Op == fsnotify.Chmod {
				continue
			}
			w.logger.Debug("store changed", "file", ev.Name, "op", ev.Op.String())
			deb.Trigger(onChange)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}
