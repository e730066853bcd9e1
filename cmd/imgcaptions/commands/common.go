package commands

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/imgcaptions/internal/caption"
	"git.home.luguber.info/inful/imgcaptions/internal/config"
	"git.home.luguber.info/inful/imgcaptions/internal/extract"
	"git.home.luguber.info/inful/imgcaptions/internal/foundation/errors"
	"git.home.luguber.info/inful/imgcaptions/internal/logfields"
	"git.home.luguber.info/inful/imgcaptions/internal/metrics"
	"git.home.luguber.info/inful/imgcaptions/internal/render"
	"git.home.luguber.info/inful/imgcaptions/internal/watch"
)

// Global carries state shared by every command.
type Global struct {
	Stdout   io.Writer
	Recorder metrics.Recorder
}

// NewGlobal returns a Global writing command output to stdout.
func NewGlobal(stdout io.Writer) *Global {
	return &Global{Stdout: stdout, Recorder: metrics.NoopRecorder{}}
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"imgcaptions.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Extract  ExtractCmd  `cmd:"" help:"List images with their captions and sizes"`
	Render   RenderCmd   `cmd:"" help:"Render a document with captions attached"`
	CSS      CSSCmd      `cmd:"" name:"css" help:"Print the caption stylesheet"`
	Watch    WatchCmd    `cmd:"" help:"Re-render documents whenever they change"`
	Init     InitCmd     `cmd:"" help:"Write a default configuration file"`
	Validate ValidateCmd `cmd:"" help:"Validate a configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// loadSettings loads the configuration file. A missing file at the default
// path is not an error; defaults are used instead.
func loadSettings(root *CLI) (*config.Settings, error) {
	if root.Config == config.DefaultPath {
		if _, err := os.Stat(root.Config); os.IsNotExist(err) {
			slog.Debug("No configuration file, using defaults", logfields.Path(root.Config))
			config.LoadEnv()
			return config.Defaults(), nil
		}
	}
	return config.Load(root.Config)
}

// delimiters returns override when set, the configured delimiters otherwise.
func delimiters(s *config.Settings, override []string) (caption.DelimiterSpec, error) {
	if len(override) == 0 {
		return s.Delimiters(), nil
	}
	return caption.NewDelimiterSpec(override)
}

func newRenderer(g *Global, s *config.Settings, spec caption.DelimiterSpec, captionAsHTML bool) *render.Renderer {
	x := extract.New(spec, extract.WithRecorder(g.Recorder))
	return render.New(x, render.Options{
		CaptionAsHTML: s.Captions.CaptionAsHTML || captionAsHTML,
		Recorder:      g.Recorder,
	})
}

// documentPaths expands directories into the Markdown documents below them.
func documentPaths(paths []string) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}
	var out []string
	for _, p := range paths {
		fi, err := os.Stat(p)
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryFileSystem, "cannot access document path").
				WithContext("path", p).
				Build()
		}
		if !fi.IsDir() {
			out = append(out, p)
			continue
		}
		docs, err := watch.Scan(p)
		if err != nil {
			return nil, err
		}
		out = append(out, docs...)
	}
	return out, nil
}

// writeOutput writes data to path, or to w when path is empty.
func writeOutput(w io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := w.Write(data)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to create output directory").
			WithContext("path", path).
			Build()
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write output").
			WithContext("path", path).
			Build()
	}
	return nil
}
