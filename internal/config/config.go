// Package config loads, validates and hot-reloads caption settings.
package config

import (
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/imgcaptions/internal/caption"
	"git.home.luguber.info/inful/imgcaptions/internal/foundation/errors"
)

// DefaultPath is the settings file used when none is given.
const DefaultPath = "imgcaptions.yaml"

// Settings is the full settings file.
type Settings struct {
	Captions CaptionsConfig `yaml:"captions"`
	Render   RenderConfig   `yaml:"render"`
	Watch    WatchConfig    `yaml:"watch"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// CaptionsConfig controls caption parsing and presentation.
type CaptionsConfig struct {
	// Label is the caption label template; '#' is replaced by the figure index.
	Label string `yaml:"label"`
	// CSS is appended to the generated stylesheet.
	CSS string `yaml:"css,omitempty"`
	// Delimiter holds zero, one or two caption delimiters.
	Delimiter     []string `yaml:"delimiter,omitempty"`
	CaptionAsHTML bool     `yaml:"caption_as_html"`
}

// RenderConfig selects the rendered view and its destination.
type RenderConfig struct {
	Output string `yaml:"output,omitempty"`
	Mode   string `yaml:"mode"`
}

// WatchConfig tunes the document watcher.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// MetricsConfig enables the Prometheus endpoint when Listen is set.
type MetricsConfig struct {
	Listen string `yaml:"listen,omitempty"`
}

// Render modes accepted in render.mode.
const (
	ModeReading = "reading"
	ModeLive    = "live"
)

// Defaults returns the settings used for omitted fields.
func Defaults() *Settings {
	return &Settings{
		Captions: CaptionsConfig{Label: "Figure #"},
		Render:   RenderConfig{Mode: ModeReading},
		Watch:    WatchConfig{Debounce: 300 * time.Millisecond},
	}
}

// Load reads and validates a settings file. Environment variables from .env
// and .env.local are loaded first and ${VAR} references are expanded.
func Load(path string) (*Settings, error) {
	LoadEnv()

	// #nosec G304 -- path is user-provided configuration
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigError("configuration file not found").
				WithCause(err).
				WithContext("path", path).
				Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read config file").
			WithContext("path", path).
			Build()
	}
	return Parse(data)
}

// Parse decodes and validates settings from YAML, applying defaults first.
func Parse(data []byte) (*Settings, error) {
	s := Defaults()
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), s); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to unmarshal config").Build()
	}
	s.Render.Mode = strings.ToLower(strings.TrimSpace(s.Render.Mode))
	if s.Render.Mode == "" {
		s.Render.Mode = ModeReading
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the settings for values that cannot be applied.
func (s *Settings) Validate() error {
	if _, err := caption.NewDelimiterSpec(s.Captions.Delimiter); err != nil {
		if ce, ok := errors.AsClassified(err); ok {
			return ce.WithContext("field", "captions.delimiter")
		}
		return err
	}
	switch s.Render.Mode {
	case ModeReading, ModeLive:
	default:
		return errors.ConfigError("render.mode must be reading or live").
			WithContext("field", "render.mode").
			WithContext("value", s.Render.Mode).
			Build()
	}
	if s.Watch.Debounce < 0 {
		return errors.ConfigError("watch.debounce must not be negative").
			WithContext("field", "watch.debounce").
			WithContext("value", s.Watch.Debounce.String()).
			Build()
	}
	return nil
}

// Delimiters returns the validated delimiter specification.
func (s *Settings) Delimiters() caption.DelimiterSpec {
	spec, err := caption.NewDelimiterSpec(s.Captions.Delimiter)
	if err != nil {
		// Settings are validated on load; an invalid spec only comes from
		// hand-built values.
		return caption.DelimiterSpec{}
	}
	return spec
}
