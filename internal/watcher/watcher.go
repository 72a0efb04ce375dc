// Package watcher reloads configuration when its file changes on disk.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/Nomadcxx/jellybucket/internal/logging"
	"github.com/fsnotify/fsnotify"
)

// ReloadFunc is called after the watched file changes.
type ReloadFunc func() error

// ConfigWatcher watches a single file. The parent directory is watched so
// editors that replace the file on save are still seen.
type ConfigWatcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	reload    ReloadFunc
	debounce  time.Duration
	logger    *logging.Logger
}

type Option func(*ConfigWatcher)

// WithDebounce collapses bursts of events into one reload.
func WithDebounce(d time.Duration) Option {
	return func(w *ConfigWatcher) {
		w.debounce = d
	}
}

func WithLogger(logger *logging.Logger) Option {
	return func(w *ConfigWatcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

func New(path string, reload ReloadFunc, opts ...Option) (*ConfigWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("unable to resolve %s: %w", path, err)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("unable to create watcher: %w", err)
	}
	if err := fsWatcher.Add(filepath.Dir(abs)); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("unable to watch %s: %w", filepath.Dir(abs), err)
	}

	w := &ConfigWatcher{
		fsWatcher: fsWatcher,
		path:      abs,
		reload:    reload,
		debounce:  200 * time.Millisecond,
		logger:    logging.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Run blocks until ctx is done or the underlying watcher fails.
func (w *ConfigWatcher) Run(ctx context.Context) error {
	w.logger.Info("watcher", "Watching config", logging.F("path", w.path))

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !w.relevant(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if err := w.reload(); err != nil {
				w.logger.Error("watcher", "Config reload failed, keeping previous buckets", err,
					logging.F("path", w.path))
				continue
			}
			w.logger.Info("watcher", "Config reloaded", logging.F("path", w.path))

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Warn("watcher", "Watcher error", logging.F("error", err))
		}
	}
}

func (w *ConfigWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

func (w *ConfigWatcher) Close() error {
	return w.fsWatcher.Close()
}
