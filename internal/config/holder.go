package config

import (
	"log/slog"
	"sync"

	"git.home.luguber.info/inful/imgcaptions/internal/logfields"
)

// Holder keeps the active settings. A failed reload leaves the previously
// valid settings active.
type Holder struct {
	path   string
	logger *slog.Logger

	mu        sync.RWMutex
	current   *Settings
	lastErr   error
	listeners []func(*Settings)
}

// NewHolder loads path and returns a Holder for it. The initial load must
// succeed.
func NewHolder(path string, logger *slog.Logger) (*Holder, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s, err := Load(path)
	if err != nil {
		return nil, err
	}
	return &Holder{path: path, logger: logger, current: s}, nil
}

// Path returns the settings file path.
func (h *Holder) Path() string { return h.path }

// Current returns the active settings. Callers must not modify them.
func (h *Holder) Current() *Settings {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Err returns the error of the last failed reload, or nil once a reload
// succeeds.
func (h *Holder) Err() error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.lastErr
}

// OnChange registers fn to run after every successful reload.
func (h *Holder) OnChange(fn func(*Settings)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.listeners = append(h.listeners, fn)
}

// Reload loads the settings file again. On error the active settings stay
// unchanged and the error is returned and logged.
func (h *Holder) Reload() (*Settings, error) {
	s, err := Load(h.path)

	h.mu.Lock()
	if err != nil {
		h.lastErr = err
		current := h.current
		h.mu.Unlock()
		h.logger.Error("Invalid configuration, keeping previous settings",
			logfields.Path(h.path),
			logfields.Error(err))
		return current, err
	}
	h.current = s
	h.lastErr = nil
	listeners := append([]func(*Settings){}, h.listeners...)
	h.mu.Unlock()

	h.logger.Info("Configuration reloaded", logfields.Path(h.path))
	for _, fn := range listeners {
		fn(s)
	}
	return s, nil
}
