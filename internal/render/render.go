// Package render attaches parsed captions to rendered documents.
//
// Two views are supported. The live view decorates a copy of the Markdown
// text with caption widgets placed right after each embed. The reading view
// renders HTML and attaches each caption to its image once the image has been
// reported as loaded; images that are never reported stay uncaptioned.
package render

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/imgcaptions/internal/docmodel"
	"git.home.luguber.info/inful/imgcaptions/internal/events"
	"git.home.luguber.info/inful/imgcaptions/internal/extract"
	"git.home.luguber.info/inful/imgcaptions/internal/foundation/errors"
	"git.home.luguber.info/inful/imgcaptions/internal/metrics"
)

// Mode selects a view.
type Mode string

const (
	ModeReading Mode = "reading"
	ModeLive    Mode = "live"
)

// ParseMode validates a configured mode name. The empty string selects the
// reading view.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeReading:
		return ModeReading, nil
	case ModeLive:
		return ModeLive, nil
	default:
		return "", errors.ConfigError("unknown render mode").
			WithContext("mode", s).
			Build()
	}
}

// Options configures a Renderer.
type Options struct {
	// CaptionAsHTML injects caption text as markup instead of escaped text.
	CaptionAsHTML bool
	Logger        *slog.Logger
	Recorder      metrics.Recorder
}

// Renderer renders documents with captions. It is safe for concurrent use.
type Renderer struct {
	extractor *extract.Extractor
	opts      Options

	// loadImages stands in for the host that reports loaded images.
	loadImages func(ctx context.Context, bus *events.Bus, document string, pane *html.Node)
}

// New returns a Renderer that uses x for every extraction pass.
func New(x *extract.Extractor, opts Options) *Renderer {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}
	return &Renderer{extractor: x, opts: opts, loadImages: host}
}

// Render runs a fresh extraction pass over doc and renders it in mode.
func (r *Renderer) Render(ctx context.Context, doc *docmodel.ParsedDoc, mode Mode) ([]byte, error) {
	var (
		out []byte
		err error
	)
	switch mode {
	case ModeLive:
		out, err = r.Live(doc)
	case ModeReading, "":
		mode = ModeReading
		out, err = r.Reading(ctx, doc)
	default:
		err = errors.ValidationError("unknown render mode").WithContext("mode", string(mode)).Build()
	}

	result := metrics.ResultSuccess
	if err != nil {
		result = metrics.ResultFailed
	}
	r.opts.Recorder.IncRender(string(mode), result)
	return out, err
}
