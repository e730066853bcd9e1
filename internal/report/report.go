// Package report formats extraction results for the command line.
package report

import (
	"git.home.luguber.info/inful/imgcaptions/internal/caption"
	"git.home.luguber.info/inful/imgcaptions/internal/docmodel"
	"git.home.luguber.info/inful/imgcaptions/internal/extract"
)

// Document is the extraction result for one document.
type Document struct {
	Path    string   `json:"path" yaml:"path"`
	PassID  string   `json:"pass_id" yaml:"pass_id"`
	Images  []Image  `json:"images" yaml:"images"`
	Skipped []string `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// Image is one extracted embed. Index is 1-based and only meaningful
// together with the PassID of its document.
type Image struct {
	Index   int                `json:"index" yaml:"index"`
	Kind    string             `json:"kind" yaml:"kind"`
	Source  string             `json:"source" yaml:"source"`
	Caption *string            `json:"caption,omitempty" yaml:"caption,omitempty"`
	Size    *caption.ImageSize `json:"size,omitempty" yaml:"size,omitempty"`
	Line    int                `json:"line" yaml:"line"`
	Column  int                `json:"column" yaml:"column"`
}

// FromPass converts a pass over doc into a Document.
func FromPass(doc *docmodel.ParsedDoc, pass *extract.Pass) Document {
	out := Document{
		Path:   doc.Name(),
		PassID: pass.ID,
		Images: make([]Image, 0, len(pass.Images)),
	}
	for i, img := range pass.Images {
		line, col := doc.LineOf(img.Range().Start)
		out.Images = append(out.Images, Image{
			Index:   i + 1,
			Kind:    string(img.Kind),
			Source:  img.Source,
			Caption: img.Caption,
			Size:    img.Size,
			Line:    line,
			Column:  col,
		})
	}
	for _, err := range pass.Failures {
		out.Skipped = append(out.Skipped, err.Error())
	}
	return out
}

// Totals sums images and skipped embeds over docs.
func Totals(docs []Document) (images, skipped int) {
	for _, d := range docs {
		images += len(d.Images)
		skipped += len(d.Skipped)
	}
	return images, skipped
}
