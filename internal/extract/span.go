package extract

import (
	stderrors "errors"
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/imgcaptions/internal/syntax"
)

// ErrNoSource marks an embed span without a resolvable source reference.
var ErrNoSource = stderrors.New("embed has no source reference")

// Span is the run of sibling nodes that makes up one embed.
type Span struct {
	Nodes []syntax.Node
}

// Range covers the first through last node of the span.
func (s Span) Range() syntax.Range {
	if len(s.Nodes) == 0 {
		return syntax.Range{}
	}
	return syntax.Range{Start: s.Nodes[0].Range().Start, End: s.Nodes[len(s.Nodes)-1].Range().End}
}

// textOf concatenates the text of every node carrying any of tags. found is
// false when no node matched.
func (s Span) textOf(src string, tags ...string) (text string, found bool) {
	var b strings.Builder
	for _, n := range s.Nodes {
		if n.Tags().HasAny(tags...) {
			found = true
			b.WriteString(n.Range().Text(src))
		}
	}
	return b.String(), found
}

// source resolves the referenced path or URL for kind. External destinations
// are unescaped the way a markdown renderer writes them.
func (s Span) source(src string, kind EmbedKind) (string, error) {
	switch kind {
	case EmbedInternal:
		target, ok := s.textOf(src, syntax.TagInternalLink)
		if !ok {
			return "", ErrNoSource
		}
		path, _, _ := strings.Cut(target, "|")
		if path = strings.TrimSpace(path); path != "" {
			return path, nil
		}
	case EmbedExternal:
		url, ok := s.textOf(src, syntax.TagURL)
		if !ok {
			return "", ErrNoSource
		}
		if url = unescape(stripDelimiters(strings.TrimSpace(url))); url != "" {
			return url, nil
		}
	}
	return "", ErrNoSource
}

// stripDelimiters removes one leading and one trailing bracket or paren.
func stripDelimiters(s string) string {
	if s != "" && strings.ContainsRune("([<", rune(s[0])) {
		s = s[1:]
	}
	if s != "" && strings.ContainsRune(")]>", rune(s[len(s)-1])) {
		s = s[:len(s)-1]
	}
	return strings.TrimSpace(s)
}

// altText returns the unescaped alias or alt text of the span.
func (s Span) altText(src string) (string, bool) {
	raw, ok := s.textOf(src, syntax.TagLinkAlias, syntax.TagImageAltText)
	if !ok {
		return "", false
	}
	return unescape(raw), true
}

// unescape drops markdown backslash escapes before ASCII punctuation and
// decodes HTML character references.
func unescape(s string) string {
	if strings.IndexByte(s, '\\') >= 0 {
		var b strings.Builder
		b.Grow(len(s))
		for i := 0; i < len(s); i++ {
			if s[i] == '\\' && i+1 < len(s) && isASCIIPunct(s[i+1]) {
				i++
			}
			b.WriteByte(s[i])
		}
		s = b.String()
	}
	if strings.IndexByte(s, '&') >= 0 {
		s = html.UnescapeString(s)
	}
	return s
}

func isASCIIPunct(c byte) bool {
	return strings.IndexByte("!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~", c) >= 0
}
