package render

import (
	"bytes"
	"context"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/unicode/norm"

	"git.home.luguber.info/inful/imgcaptions/internal/docmodel"
	"git.home.luguber.info/inful/imgcaptions/internal/events"
	"git.home.luguber.info/inful/imgcaptions/internal/extract"
	"git.home.luguber.info/inful/imgcaptions/internal/figures"
	"git.home.luguber.info/inful/imgcaptions/internal/foundation/errors"
	"git.home.luguber.info/inful/imgcaptions/internal/logfields"
	"git.home.luguber.info/inful/imgcaptions/internal/markdown"
)

// Reading renders doc to HTML and wraps every captioned image in a figure.
func (r *Renderer) Reading(ctx context.Context, doc *docmodel.ParsedDoc) ([]byte, error) {
	pass := doc.Images(r.extractor)
	logger := r.opts.Logger.With(logfields.Document(doc.Name()), logfields.PassID(pass.ID))

	rendered, err := markdown.RenderHTML(doc.Body(), markdown.Options{})
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryRender, "failed to render markdown").
			WithDocument(doc.Name()).
			Build()
	}
	pane, err := parsePane(rendered)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryRender, "failed to parse rendered html").
			WithDocument(doc.Name()).
			Build()
	}

	bus := events.NewBus()
	defer bus.Close()

	type waiter struct {
		index  int
		image  extract.ParsedImage
		loaded <-chan events.ImageLoaded
	}
	var waiters []waiter
	for i, img := range pass.Images {
		if img.Caption == nil && img.Size == nil {
			continue
		}
		end := img.Span.Range().End - doc.BodyOffset()
		waiters = append(waiters, waiter{
			index: i,
			image: img,
			loaded: events.AwaitOnce(ctx, bus, func(e events.ImageLoaded) bool {
				return e.Document == doc.Name() && e.End == end
			}),
		})
	}

	hostDone := make(chan struct{})
	go func() {
		defer close(hostDone)
		r.loadImages(ctx, bus, doc.Name(), pane)
	}()

	attached := 0
	for _, w := range waiters {
		evt, ok := <-w.loaded
		if !ok {
			logger.Debug("Image not loaded, leaving it uncaptioned",
				logfields.ImageIndex(w.index),
				logfields.Source(w.image.Source))
			continue
		}
		if r.attach(evt.Element, w.image) {
			attached++
		}
	}
	<-hostDone
	if err := ctx.Err(); err != nil {
		return nil, errors.WrapError(err, errors.CategoryRuntime, "render canceled").
			WithDocument(doc.Name()).
			Build()
	}

	stripEnds(pane)
	figures.Renumber(pane)
	r.opts.Recorder.SetCaptionsAttached(attached)
	logger.Debug("Rendered reading view", logfields.Images(attached))

	var buf bytes.Buffer
	for c := pane.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return nil, errors.WrapError(err, errors.CategoryRender, "failed to write html").Build()
		}
	}
	return buf.Bytes(), nil
}

// host reports every image of pane as loaded, in document order, and closes
// the bus afterwards. Images are collected before the first event is
// published, so attaching captions never races with the scan.
func host(ctx context.Context, bus *events.Bus, document string, pane *html.Node) {
	defer bus.Close()

	var loaded []events.ImageLoaded
	for n := range pane.Descendants() {
		if evt, ok := loadedImage(document, n); ok {
			loaded = append(loaded, evt)
		}
	}

	for _, evt := range loaded {
		if err := bus.Publish(ctx, evt); err != nil {
			return
		}
	}
}

// loadedImage describes n as a loaded image. Images without an end offset
// come from reference definitions and never match an extracted image.
func loadedImage(document string, n *html.Node) (events.ImageLoaded, bool) {
	if n.Type != html.ElementNode || n.DataAtom != atom.Img {
		return events.ImageLoaded{}, false
	}
	end, err := strconv.Atoi(attr(n, markdown.EndAttr))
	if err != nil {
		return events.ImageLoaded{}, false
	}
	return events.ImageLoaded{
		Document: document,
		Source:   normalizeSource(attr(n, "src")),
		End:      end,
		Element:  n,
	}, true
}

func stripEnds(pane *html.Node) {
	for n := range pane.Descendants() {
		if n.Type == html.ElementNode && n.DataAtom == atom.Img {
			n.Attr = slices.DeleteFunc(n.Attr, func(a html.Attribute) bool {
				return a.Namespace == "" && a.Key == markdown.EndAttr
			})
		}
	}
}

// attach applies img's size to el and wraps el with a figure holding the
// caption. It reports whether a caption was attached.
func (r *Renderer) attach(el *html.Node, img extract.ParsedImage) bool {
	if img.Size != nil {
		if w, ok := img.Size.Width.Value(); ok {
			setAttr(el, "width", strconv.Itoa(w))
		}
		if h, ok := img.Size.Height.Value(); ok {
			setAttr(el, "height", strconv.Itoa(h))
		}
	}

	text, ok := captionOf(img)
	if !ok || el.Parent == nil {
		return false
	}

	figure := &html.Node{Type: html.ElementNode, DataAtom: atom.Figure, Data: "figure",
		Attr: []html.Attribute{{Key: "class", Val: figures.FigureClass}}}
	caption := &html.Node{Type: html.ElementNode, DataAtom: atom.Figcaption, Data: "figcaption",
		Attr: []html.Attribute{{Key: "class", Val: figures.CaptionClass}}}
	for _, c := range r.captionContent(caption, text) {
		caption.AppendChild(c)
	}

	// A paragraph holding nothing but the image is replaced as a whole.
	target := el
	if p := el.Parent; p.DataAtom == atom.P && p.Parent != nil && onlyElement(p, el) {
		target = p
	}
	target.Parent.InsertBefore(figure, target)
	target.Parent.RemoveChild(target)
	if target != el {
		el.Parent.RemoveChild(el)
	}
	figure.AppendChild(el)
	figure.AppendChild(caption)
	return true
}

func (r *Renderer) captionContent(parent *html.Node, text string) []*html.Node {
	if r.opts.CaptionAsHTML {
		nodes, err := html.ParseFragment(strings.NewReader(text), parent)
		if err == nil {
			return nodes
		}
		r.opts.Logger.Warn("Caption is not valid HTML, inserting as text", logfields.Error(err))
	}
	return []*html.Node{{Type: html.TextNode, Data: text}}
}

func parsePane(fragment []byte) (*html.Node, error) {
	pane := &html.Node{Type: html.ElementNode, DataAtom: atom.Div, Data: "div"}
	nodes, err := html.ParseFragment(bytes.NewReader(fragment), &html.Node{
		Type: html.ElementNode, DataAtom: atom.Body, Data: "body",
	})
	if err != nil {
		return nil, err
	}
	for _, n := range nodes {
		pane.AppendChild(n)
	}
	return pane, nil
}

// normalizeSource decodes entities and percent escapes of a rendered src
// attribute and NFC normalizes the result.
func normalizeSource(s string) string {
	s = html.UnescapeString(strings.TrimSpace(s))
	if u, err := url.PathUnescape(s); err == nil {
		s = u
	}
	return norm.NFC.String(s)
}

func onlyElement(parent, el *html.Node) bool {
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c == el:
		case c.Type == html.TextNode && strings.TrimSpace(c.Data) == "":
		default:
			return false
		}
	}
	return true
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
