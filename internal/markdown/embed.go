package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Embeds is a goldmark extension that parses ![[target|alias]] into image nodes.
var Embeds goldmark.Extender = &embedExtension{}

type embedExtension struct{}

func (e *embedExtension) Extend(m goldmark.Markdown) {
	// Must run before the standard link parser, which also triggers on '!'.
	m.Parser().AddOptions(parser.WithInlineParsers(util.Prioritized(&embedParser{}, 199)))
}

type embedParser struct{}

var (
	embedOpen  = []byte("![[")
	embedClose = []byte("]]")
)

func (p *embedParser) Trigger() []byte {
	return []byte{'!'}
}

func (p *embedParser) Parse(_ gmast.Node, block text.Reader, _ parser.Context) gmast.Node {
	line, seg := block.PeekLine()
	if !bytes.HasPrefix(line, embedOpen) {
		return nil
	}
	closeIdx := bytes.Index(line[len(embedOpen):], embedClose)
	if closeIdx <= 0 {
		return nil
	}
	inner := line[len(embedOpen) : len(embedOpen)+closeIdx]
	target, alias, hasAlias := bytes.Cut(inner, []byte("|"))
	dest := bytes.TrimSpace(target)
	if len(dest) == 0 {
		return nil
	}

	link := gmast.NewLink()
	link.Destination = append([]byte(nil), dest...)
	img := gmast.NewImage(link)
	if hasAlias && len(alias) > 0 {
		start := seg.Start + len(embedOpen) + len(target) + 1
		img.AppendChild(img, gmast.NewTextSegment(text.NewSegment(start, start+len(alias))))
	}

	n := len(embedOpen) + closeIdx + len(embedClose)
	markEnd(img, seg.Start+n)
	block.Advance(n)
	return img
}
