// Package extract finds embedded images in a token tree and parses their
// captions.
//
// A pass walks the tree depth-first, left to right. When a node opens an
// embed, it and its following siblings are collected into a Span until the
// matching end is seen; the children of collected nodes are not visited, so
// nested formatting inside an embed never counts as a second image. Every
// pass is a full, stateless rescan and may run concurrently with others.
package extract

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/imgcaptions/internal/caption"
	"git.home.luguber.info/inful/imgcaptions/internal/foundation/errors"
	"git.home.luguber.info/inful/imgcaptions/internal/logfields"
	"git.home.luguber.info/inful/imgcaptions/internal/metrics"
	"git.home.luguber.info/inful/imgcaptions/internal/syntax"
)

// ParsedImage is one recognized embed. Its position in Pass.Images is its
// figure index for that pass only.
type ParsedImage struct {
	Span    Span
	Kind    EmbedKind
	Source  string
	Caption *string
	Size    *caption.ImageSize
}

// Range returns the byte range of the embed in the document text.
func (p ParsedImage) Range() syntax.Range { return p.Span.Range() }

// Pass is the result of one extraction over a document snapshot.
type Pass struct {
	// ID is unique per pass; indices are meaningless across IDs.
	ID       string
	Images   []ParsedImage
	Failures []error
}

// Extractor turns token trees into ParsedImage lists. It holds no mutable
// state and is safe for concurrent use.
type Extractor struct {
	delimiters caption.DelimiterSpec
	logger     *slog.Logger
	recorder   metrics.Recorder
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger used for skipped embeds.
func WithLogger(l *slog.Logger) Option {
	return func(x *Extractor) {
		if l != nil {
			x.logger = l
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(x *Extractor) {
		if r != nil {
			x.recorder = r
		}
	}
}

// New returns an Extractor applying delimiters to every alt text.
func New(delimiters caption.DelimiterSpec, opts ...Option) *Extractor {
	x := &Extractor{
		delimiters: delimiters,
		logger:     slog.Default(),
		recorder:   metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Extract is a convenience wrapper returning only the images of one pass.
func Extract(root syntax.Node, text string, delimiters caption.DelimiterSpec) []ParsedImage {
	return New(delimiters).Extract(root, text).Images
}

// Extract runs one pass over root. text is the document the node ranges
// index into. Embeds without a resolvable source are logged and reported in
// Pass.Failures; they never affect the other images.
func (x *Extractor) Extract(root syntax.Node, text string) *Pass {
	started := time.Now()
	pass := &Pass{ID: uuid.NewString()}

	walk(root, func(span Span, kind EmbedKind) {
		img, err := x.build(span, kind, text)
		if err != nil {
			pass.Failures = append(pass.Failures, err)
			x.recorder.IncImage(string(kind), metrics.ResultSkipped)
			r := span.Range()
			x.logger.Warn("Skipping embed without source",
				logfields.PassID(pass.ID),
				logfields.EmbedKind(string(kind)),
				logfields.Span(r.Start, r.End),
				logfields.Error(err))
			return
		}
		pass.Images = append(pass.Images, img)
		x.recorder.IncImage(string(kind), metrics.ResultSuccess)
	})

	elapsed := time.Since(started)
	x.recorder.ObservePass(elapsed)
	x.logger.Debug("Extraction pass complete",
		logfields.PassID(pass.ID),
		logfields.Images(len(pass.Images)),
		logfields.DurationMS(float64(elapsed.Microseconds())/1000))
	return pass
}

// walk visits n and its siblings depth-first, calling emit for every embed span.
func walk(n syntax.Node, emit func(Span, EmbedKind)) {
	for n != nil {
		if kind, ok := startKind(n); ok {
			span := collectSpan(n, stopFor(kind))
			emit(span, kind)
			n = span.Nodes[len(span.Nodes)-1].NextSibling()
			continue
		}
		walk(n.FirstChild(), emit)
		n = n.NextSibling()
	}
}

func (x *Extractor) build(span Span, kind EmbedKind, text string) (ParsedImage, error) {
	src, err := span.source(text, kind)
	if err != nil {
		r := span.Range()
		return ParsedImage{}, errors.ExtractionError("cannot resolve embed source").
			WithCause(err).
			WithContext("kind", string(kind)).
			WithRange(r.Start, r.End).
			Build()
	}

	img := ParsedImage{Span: span, Kind: kind, Source: src}
	// No alias or alt text: nothing to parse, and a bare filename must not
	// become a caption.
	alt, ok := span.altText(text)
	if !ok {
		return img, nil
	}
	parsed := caption.Parse(alt, x.delimiters)
	img.Caption, img.Size = parsed.Text, parsed.Size
	return img, nil
}
