package markdown

import (
	"strconv"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// EndAttr is set on every <img> written inline (![alt](dest)) or as an embed
// (![[target]]). Its value is the body offset where the image markup ends.
// Reference-style images do not carry it.
const EndAttr = "data-image-captions-end"

func newMarkdown() goldmark.Markdown {
	inlines := parser.DefaultInlineParsers()
	for i, p := range inlines {
		if p.Value == parser.NewLinkParser() {
			inlines[i] = util.Prioritized(&inlineImageParser{InlineParser: parser.NewLinkParser()}, p.Priority)
		}
	}
	return goldmark.New(
		goldmark.WithParser(parser.NewParser(
			parser.WithBlockParsers(parser.DefaultBlockParsers()...),
			parser.WithInlineParsers(inlines...),
			parser.WithParagraphTransformers(parser.DefaultParagraphTransformers()...),
		)),
		goldmark.WithExtensions(Embeds),
	)
}

// inlineImageParser wraps the standard link parser and records where an
// inline image ends.
type inlineImageParser struct {
	parser.InlineParser
}

func (p *inlineImageParser) Parse(parent gmast.Node, block text.Reader, pc parser.Context) gmast.Node {
	_, at := block.Position()
	n := p.InlineParser.Parse(parent, block, pc)
	img, ok := n.(*gmast.Image)
	if !ok {
		return n
	}
	// Only a ']' directly followed by a destination that parsed moves the
	// reader past the '('. Full, collapsed and shortcut references do not.
	_, after := block.Position()
	src := block.Source()
	if closing := at.Start; closing+1 < len(src) && src[closing+1] == '(' && after.Start > closing+1 {
		markEnd(img, after.Start)
	}
	return n
}

func (p *inlineImageParser) CloseBlock(parent gmast.Node, block text.Reader, pc parser.Context) {
	if cb, ok := p.InlineParser.(parser.CloseBlocker); ok {
		cb.CloseBlock(parent, block, pc)
	}
}

func markEnd(img *gmast.Image, end int) {
	img.SetAttributeString(EndAttr, strconv.Itoa(end))
}
