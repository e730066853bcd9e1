package markdown

import (
	"bytes"

	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Options controls how Markdown is parsed for internal analysis.
//
// For now this is intentionally small; it exists so we can evolve parsing behavior
// (extensions/settings) without rewriting call sites.
type Options struct{}

// ParseBody parses a Markdown body (frontmatter already removed) into a Goldmark AST.
//
// Wiki-style embeds are recognized as images so that block structure and
// inline code detection match what RenderHTML produces.
func ParseBody(body []byte, _ Options) gmast.Node {
	return newMarkdown().Parser().Parse(text.NewReader(body))
}

// RenderHTML converts a Markdown body to an HTML fragment.
//
// ![[target|alias]] embeds are rendered as <img> elements with alias as alt
// text. Inline images and embeds carry EndAttr.
func RenderHTML(body []byte, _ Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := newMarkdown().Convert(body, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
