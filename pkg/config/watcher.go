package config

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches the configuration file and triggers reloads on change.
// Editors tend to emit bursts of write/rename events for a single save, so
// reloads are debounced.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   *slog.Logger
}

// NewWatcher creates a watcher for the given config file path.
func NewWatcher(path string) *Watcher {
	return &Watcher{
		path:     path,
		debounce: 200 * time.Millisecond,
		logger:   slog.Default().With("component", "config.watcher"),
	}
}

// Watch blocks until the context is cancelled, invoking onReload after each
// debounced change to the config file. Reload failures are logged and the
// previous configuration stays in effect; the watcher keeps running.
func (w *Watcher) Watch(ctx context.Context, onReload func(*Config) error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors replace files by rename,
	// which drops a watch registered on the file itself.
	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		return err
	}

	w.logger.Info("watching configuration", "path", w.path)

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			w.reload(onReload)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watch error", "error", err)
		}
	}
}

func (w *Watcher) reload(onReload func(*Config) error) {
	cfg, err := Load(w.path)
	if err != nil {
		w.logger.Error("configuration reload failed, keeping previous", "error", err)
		return
	}
	if err := onReload(cfg); err != nil {
		w.logger.Error("configuration reload rejected", "error", err)
		return
	}
	w.logger.Info("configuration reloaded", "path", w.path)
}
