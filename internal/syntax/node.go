// Package syntax defines the neutral token tree consumed by the image extractor.
//
// A tree producer tags every node with zero or more opaque names describing
// its role (marker, link target, alt text, ...). Consumers only look at tag
// membership, byte ranges and sibling/child links.
package syntax

import "git.home.luguber.info/inful/imgcaptions/internal/util/sets"

// Range is a half-open [Start, End) byte range into the document text.
type Range struct {
	Start int
	End   int
}

// Len returns the number of bytes covered.
func (r Range) Len() int { return r.End - r.Start }

// Text returns the covered substring of src, clamped to its bounds.
func (r Range) Text(src string) string {
	start, end := max(r.Start, 0), min(r.End, len(src))
	if start >= end {
		return ""
	}
	return src[start:end]
}

// Node is one element of a token tree.
//
// FirstChild and NextSibling return nil (an untyped nil interface) at the end
// of a chain.
type Node interface {
	Tags() sets.Set[string]
	Range() Range
	FirstChild() Node
	NextSibling() Node
}

// HasTag reports whether n carries tag.
func HasTag(n Node, tag string) bool {
	return n != nil && n.Tags().Has(tag)
}
