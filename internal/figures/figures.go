// Package figures assigns display numbers to rendered caption elements.
//
// Numbering is a property of rendered output only: it is recomputed from the
// current DOM of every pane and never derived from extraction indices.
package figures

import (
	"iter"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

const (
	// CaptionClass marks a rendered caption element.
	CaptionClass = "image-captions-caption"
	// FigureClass marks the element wrapping an image and its caption.
	FigureClass = "image-captions-figure"
	// IndexAttr holds the 1-based display number of a caption within its pane.
	IndexAttr = "data-image-caption-index"
)

// Renumber assigns a dense 1-based index to every caption element of each
// pane, in document order. Numbering restarts for every pane. It returns the
// number of captions seen across all panes.
//
// Renumber only writes IndexAttr, so calling it again without structural
// changes leaves every pane unchanged.
func Renumber(panes ...*html.Node) int {
	total := 0
	for _, pane := range panes {
		if pane == nil {
			continue
		}
		n := 0
		for c := range Captions(pane) {
			n++
			setAttr(c, IndexAttr, strconv.Itoa(n))
		}
		total += n
	}
	return total
}

// Captions yields the caption elements below root in document order.
func Captions(root *html.Node) iter.Seq[*html.Node] {
	return func(yield func(*html.Node) bool) {
		for n := range root.Descendants() {
			if n.Type == html.ElementNode && HasClass(n, CaptionClass) {
				if !yield(n) {
					return
				}
			}
		}
	}
}

// HasClass reports whether n's class attribute contains class.
func HasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == "class" {
			for f := range strings.FieldsSeq(a.Val) {
				if f == class {
					return true
				}
			}
		}
	}
	return false
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
