package config

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/imgcaptions/internal/foundation/errors"
	"git.home.luguber.info/inful/imgcaptions/internal/logfields"
)

// Watcher reloads a Holder when its settings file changes.
type Watcher struct {
	holder       *Holder
	watcher      *fsnotify.Watcher
	debounceTime time.Duration
	logger       *slog.Logger

	mu       sync.Mutex
	timer    *time.Timer
	stopOnce sync.Once
	stopChan chan struct{}
}

// NewWatcher creates a watcher for holder's settings file. Changes are
// coalesced for debounce before reloading.
func NewWatcher(holder *Holder, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to create file watcher").Build()
	}
	return &Watcher{
		holder:       holder,
		watcher:      fw,
		debounceTime: debounce,
		logger:       holder.logger,
		stopChan:     make(chan struct{}),
	}, nil
}

// Start begins monitoring. The directory containing the file is watched,
// which keeps working when editors replace the file on save.
func (w *Watcher) Start(ctx context.Context) error {
	absPath, err := filepath.Abs(w.holder.Path())
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to resolve config path").
			WithContext("path", w.holder.Path()).
			Build()
	}
	dir := filepath.Dir(absPath)
	if err := w.watcher.Add(dir); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to watch config directory").
			WithContext("path", dir).
			Build()
	}

	w.logger.Info("Starting configuration watcher", logfields.Path(absPath))
	go w.loop(ctx, filepath.Base(absPath))
	return nil
}

// Stop stops watching. Pending reloads are dropped.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopChan)
		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()
		if err := w.watcher.Close(); err != nil {
			w.logger.Error("Error closing config watcher", logfields.Error(err))
		}
	})
}

func (w *Watcher) loop(ctx context.Context, name string) {
	for {
		select {
		case <-ctx.Done():
			w.Stop()
			return
		case <-w.stopChan:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			switch {
			case event.Has(fsnotify.Write), event.Has(fsnotify.Create), event.Has(fsnotify.Rename):
				w.logger.Debug("Config file change detected", logfields.Path(event.Name))
				w.schedule()
			case event.Has(fsnotify.Remove):
				w.logger.Warn("Config file removed", logfields.Path(event.Name))
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Config watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounceTime, func() {
		select {
		case <-w.stopChan:
			return
		default:
		}
		// Errors are logged by the holder.
		_, _ = w.holder.Reload()
	})
}
