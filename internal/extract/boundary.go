package extract

import "git.home.luguber.info/inful/imgcaptions/internal/syntax"

// EmbedKind distinguishes vault-internal embeds from external images.
type EmbedKind string

const (
	EmbedInternal EmbedKind = "internal"
	EmbedExternal EmbedKind = "external"
)

// IsInternalEmbedStart reports whether n opens a ![[...]] embed.
func IsInternalEmbedStart(n syntax.Node) bool {
	return n.Tags().HasAll(syntax.TagFormattingLinkStart, syntax.TagFormattingEmbed)
}

// IsInternalEmbedEnd reports whether n closes a ![[...]] embed.
func IsInternalEmbedEnd(n syntax.Node) bool {
	return n.Tags().HasAll(syntax.TagFormattingLink, syntax.TagFormattingLinkEnd)
}

// IsExternalImageStart reports whether n opens a ![alt](url) image.
func IsExternalImageStart(n syntax.Node) bool {
	return n.Tags().HasAll(syntax.TagImageMarker, syntax.TagFormattingImage)
}

// IsLinkStringMarker reports whether n is one of the parentheses around an
// external image destination.
func IsLinkStringMarker(n syntax.Node) bool {
	return n.Tags().Has(syntax.TagFormattingLinkString)
}

// startKind classifies n as the first node of an embed span.
func startKind(n syntax.Node) (EmbedKind, bool) {
	switch {
	case IsInternalEmbedStart(n):
		return EmbedInternal, true
	case IsExternalImageStart(n):
		return EmbedExternal, true
	}
	return "", false
}

// stopFunc is fed each collected node in order and reports when the span is complete.
type stopFunc func(n syntax.Node) bool

// stopFor returns a fresh end predicate for kind. The external predicate is
// structural: the span closes once both link-string markers have been seen.
func stopFor(kind EmbedKind) stopFunc {
	if kind == EmbedInternal {
		return IsInternalEmbedEnd
	}
	seen := 0
	return func(n syntax.Node) bool {
		if IsLinkStringMarker(n) {
			seen++
		}
		return seen == 2
	}
}

// collectSpan gathers start and its following siblings until stop fires or
// the siblings run out. A span that never closes is returned as collected.
func collectSpan(start syntax.Node, stop stopFunc) Span {
	var nodes []syntax.Node
	for n := start; n != nil; n = n.NextSibling() {
		nodes = append(nodes, n)
		if stop(n) {
			break
		}
	}
	return Span{Nodes: nodes}
}
