package render

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/imgcaptions/internal/docmodel"
	"git.home.luguber.info/inful/imgcaptions/internal/extract"
	"git.home.luguber.info/inful/imgcaptions/internal/figures"
	"git.home.luguber.info/inful/imgcaptions/internal/foundation/errors"
	"git.home.luguber.info/inful/imgcaptions/internal/logfields"
	"git.home.luguber.info/inful/imgcaptions/internal/markdown"
)

// Live returns a copy of the document text with a caption widget inserted
// after every captioned embed. The document itself is not modified.
func (r *Renderer) Live(doc *docmodel.ParsedDoc) ([]byte, error) {
	pass := doc.Images(r.extractor)
	edits := make([]markdown.Edit, 0, len(pass.Images))

	n := 0
	for _, img := range pass.Images {
		text, ok := captionOf(img)
		if !ok {
			continue
		}
		n++
		edits = append(edits, markdown.Insert(img.Range().End, r.widget(n, text)))
	}

	out, err := markdown.ApplyEdits(doc.Bytes(), edits)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryRender, "failed to decorate document").
			WithDocument(doc.Name()).
			Build()
	}

	r.opts.Logger.Debug("Decorated live view",
		logfields.Document(doc.Name()),
		logfields.PassID(pass.ID),
		logfields.Images(n))
	r.opts.Recorder.SetCaptionsAttached(n)
	return out, nil
}

func (r *Renderer) widget(index int, text string) string {
	if !r.opts.CaptionAsHTML {
		text = html.EscapeString(text)
	}
	var b strings.Builder
	b.WriteString(`<span class="` + figures.CaptionClass + `" ` + figures.IndexAttr + `="`)
	b.WriteString(strconv.Itoa(index))
	b.WriteString(`">`)
	b.WriteString(text)
	b.WriteString(`</span>`)
	return b.String()
}

func captionOf(img extract.ParsedImage) (string, bool) {
	if img.Caption == nil {
		return "", false
	}
	return *img.Caption, true
}
