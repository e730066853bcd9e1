// Package watch turns filesystem changes below a docs directory into
// DocumentChanged events.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/imgcaptions/internal/events"
	"git.home.luguber.info/inful/imgcaptions/internal/foundation/errors"
	"git.home.luguber.info/inful/imgcaptions/internal/logfields"
)

// Watcher publishes a DocumentChanged event for every Markdown document that
// changes below root. Bursts of events for one path are coalesced.
type Watcher struct {
	root     string
	bus      *events.Bus
	debounce time.Duration
	logger   *slog.Logger
	fw       *fsnotify.Watcher

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// New creates a Watcher for root. Directories created later are picked up
// as they appear.
func New(root string, bus *events.Bus, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to resolve docs path").
			WithContext("path", root).
			Build()
	}
	fi, err := os.Stat(abs)
	if err != nil || !fi.IsDir() {
		return nil, errors.FileSystemError("docs path is not a directory").
			WithCause(err).
			WithContext("path", abs).
			Build()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to create file watcher").Build()
	}
	w := &Watcher{
		root:     abs,
		bus:      bus,
		debounce: debounce,
		logger:   logger,
		fw:       fw,
		timers:   make(map[string]*time.Timer),
	}
	w.addDirsRecursive(abs)
	return w, nil
}

// Root returns the absolute docs directory.
func (w *Watcher) Root() string { return w.root }

// Run processes filesystem events until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.close()

	w.logger.Info("Watching documents", logfields.Path(w.root))
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			w.handle(ctx, ev)
		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) handle(ctx context.Context, ev fsnotify.Event) {
	if ShouldIgnore(ev.Name) {
		return
	}
	if ev.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			w.addDirsRecursive(ev.Name)
			return
		}
	}
	if !IsDocument(ev.Name) || ev.Op == fsnotify.Chmod {
		return
	}
	w.logger.Debug("Document change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	w.trigger(ctx, ev.Name)
}

// trigger (re)starts the debounce timer for path. The event is published
// once the path has been quiet for the debounce interval.
func (w *Watcher) trigger(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.timers[path]; ok {
		t.Stop()
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()

		_, statErr := os.Stat(path)
		evt := events.DocumentChanged{
			Path:      path,
			Removed:   os.IsNotExist(statErr),
			ChangedAt: time.Now(),
		}
		if err := w.bus.Publish(ctx, evt); err != nil && ctx.Err() == nil {
			w.logger.Warn("Failed to publish document change", logfields.Path(path), logfields.Error(err))
		}
	})
}

func (w *Watcher) close() {
	w.mu.Lock()
	for _, t := range w.timers {
		t.Stop()
	}
	clear(w.timers)
	w.mu.Unlock()

	if err := w.fw.Close(); err != nil {
		w.logger.Warn("Error closing watcher", logfields.Error(err))
	}
}

func (w *Watcher) addDirsRecursive(root string) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != root && ShouldIgnore(path) {
				return filepath.SkipDir
			}
			if err := w.fw.Add(path); err != nil {
				w.logger.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
			}
		}
		return nil
	})
}

// Scan returns every Markdown document below root in lexical order.
func Scan(root string) ([]string, error) {
	var docs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != root && ShouldIgnore(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() && IsDocument(path) {
			docs = append(docs, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to scan documents").
			WithContext("path", root).
			Build()
	}
	slices.Sort(docs)
	return docs, nil
}

// IsDocument reports whether path names a Markdown document.
func IsDocument(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// ShouldIgnore reports whether path is a hidden, editor temp or lock file.
func ShouldIgnore(path string) bool {
	base := filepath.Base(path)

	if strings.HasPrefix(base, ".") {
		return true
	}
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}
	return base == "Thumbs.db"
}
