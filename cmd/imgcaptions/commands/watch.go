package commands

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"git.home.luguber.info/inful/imgcaptions/internal/config"
	"git.home.luguber.info/inful/imgcaptions/internal/docmodel"
	"git.home.luguber.info/inful/imgcaptions/internal/events"
	ferrors "git.home.luguber.info/inful/imgcaptions/internal/foundation/errors"
	"git.home.luguber.info/inful/imgcaptions/internal/logfields"
	"git.home.luguber.info/inful/imgcaptions/internal/metrics"
	"git.home.luguber.info/inful/imgcaptions/internal/render"
	"git.home.luguber.info/inful/imgcaptions/internal/watch"
)

const defaultOutDir = "captioned"

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Dir    string `arg:"" optional:"" default:"." help:"Docs directory to watch"`
	OutDir string `name:"out-dir" short:"o" help:"Directory for rendered documents (default: configured output, else ./captioned)"`
	Listen string `help:"Address for the Prometheus metrics endpoint, overriding the configuration"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return w.run(ctx, g, root)
}

func (w *WatchCmd) run(ctx context.Context, g *Global, root *CLI) error {
	settings, err := loadSettings(root)
	if err != nil {
		return err
	}
	current := func() *config.Settings { return settings }

	// Hot reload only applies when a settings file exists.
	if _, statErr := os.Stat(root.Config); statErr == nil {
		holder, err := config.NewHolder(root.Config, slog.Default())
		if err != nil {
			return err
		}
		cw, err := config.NewWatcher(holder, holder.Current().Watch.Debounce)
		if err != nil {
			return err
		}
		if err := cw.Start(ctx); err != nil {
			return err
		}
		defer cw.Stop()
		current = holder.Current
		settings = holder.Current()
	}

	listen := settings.Metrics.Listen
	if w.Listen != "" {
		listen = w.Listen
	}
	if listen != "" {
		reg := metrics.NewRegistry()
		g.Recorder = metrics.NewPrometheusRecorder(reg)
		stop := serveMetrics(listen, reg)
		defer stop()
	}

	outDir := settings.Render.Output
	if w.OutDir != "" {
		outDir = w.OutDir
	}
	if outDir == "" {
		outDir = defaultOutDir
	}
	site := &site{global: g, settings: current}
	if site.outDir, err = filepath.Abs(outDir); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to resolve output path").Build()
	}

	bus := events.NewBus()
	defer bus.Close()

	watcher, err := watch.New(w.Dir, bus, settings.Watch.Debounce, slog.Default())
	if err != nil {
		return err
	}
	site.docsDir = watcher.Root()

	docs, err := watch.Scan(site.docsDir)
	if err != nil {
		return err
	}
	for _, p := range docs {
		if err := site.renderDocument(ctx, p); err != nil {
			slog.Warn("Initial render failed", logfields.Path(p), logfields.Error(err))
		}
	}
	slog.Info("Initial render complete", slog.Int("documents", len(docs)), logfields.Path(site.outDir))

	done := watch.Consume(ctx, bus, site.handle, func(evt events.DocumentChanged, err error) {
		slog.Warn("Re-render failed", logfields.Path(evt.Path), logfields.Error(err))
	})
	runErr := watcher.Run(ctx)
	bus.Close()
	<-done
	return runErr
}

// site renders documents of one docs directory into an output directory.
type site struct {
	global   *Global
	settings func() *config.Settings
	docsDir  string
	outDir   string
}

func (s *site) handle(ctx context.Context, evt events.DocumentChanged) error {
	if s.isOutput(evt.Path) {
		return nil
	}
	if evt.Removed {
		target, err := s.target(evt.Path)
		if err != nil {
			return err
		}
		if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
			return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to remove output").
				WithContext("path", target).
				Build()
		}
		slog.Info("Removed output", logfields.Path(target))
		return nil
	}
	return s.renderDocument(ctx, evt.Path)
}

// renderDocument runs a full extraction pass and render of path with the
// currently active settings.
func (s *site) renderDocument(ctx context.Context, path string) error {
	if s.isOutput(path) {
		return nil
	}
	start := time.Now()
	settings := s.settings()
	mode, err := render.ParseMode(settings.Render.Mode)
	if err != nil {
		return err
	}

	rel, err := filepath.Rel(s.docsDir, path)
	if err != nil {
		rel = path
	}
	doc, err := docmodel.ParseFile(path, docmodel.Options{Name: filepath.ToSlash(rel)})
	if err != nil {
		return err
	}
	out, err := newRenderer(s.global, settings, settings.Delimiters(), false).Render(ctx, doc, mode)
	if err != nil {
		return err
	}

	target, err := s.target(path)
	if err != nil {
		return err
	}
	if err := writeOutput(nil, target, out); err != nil {
		return err
	}
	slog.Info("Rendered document",
		logfields.Document(doc.Name()),
		logfields.Path(target),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
	return nil
}

// target maps a document path to its output file.
func (s *site) target(path string) (string, error) {
	rel, err := filepath.Rel(s.docsDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", ferrors.FileSystemError("document is outside the docs directory").
			WithContext("path", path).
			Build()
	}
	ext := ".html"
	if s.settings().Render.Mode == config.ModeLive {
		ext = filepath.Ext(rel)
	}
	return filepath.Join(s.outDir, strings.TrimSuffix(rel, filepath.Ext(rel))+ext), nil
}

func (s *site) isOutput(path string) bool {
	rel, err := filepath.Rel(s.outDir, path)
	return err == nil && !strings.HasPrefix(rel, "..")
}

// serveMetrics exposes reg on addr until the returned stop func is called.
func serveMetrics(addr string, reg *metrics.Registry) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(reg))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		slog.Info("Serving metrics", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server failed", logfields.Error(err))
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
