// Package docmodel holds one immutable snapshot of a Markdown document and
// the derived token tree and image records for that snapshot.
package docmodel

import (
	"os"
	"sync"

	"git.home.luguber.info/inful/imgcaptions/internal/extract"
	"git.home.luguber.info/inful/imgcaptions/internal/foundation/errors"
	"git.home.luguber.info/inful/imgcaptions/internal/markdown"
	"git.home.luguber.info/inful/imgcaptions/internal/syntax"
)

// Options controls parsing behavior for ParsedDoc.
type Options struct {
	// Name identifies the document in logs and rendered output.
	Name string
}

// ParsedDoc is a document snapshot split into frontmatter and body.
//
// Every change to the document produces a new ParsedDoc; nothing derived
// from one snapshot is carried into the next.
type ParsedDoc struct {
	name      string
	original  []byte
	bodyStart int
	hadFM     bool

	treeOnce sync.Once
	tree     *syntax.Token

	lineOnce   sync.Once
	lineStarts []int
}

// Parse parses raw file content into a ParsedDoc.
func Parse(content []byte, opts Options) (*ParsedDoc, error) {
	bodyStart, had, err := splitFrontmatter(content)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "failed to split frontmatter").
			WithDocument(opts.Name).
			Build()
	}
	return &ParsedDoc{
		name:      opts.Name,
		original:  append([]byte(nil), content...),
		bodyStart: bodyStart,
		hadFM:     had,
	}, nil
}

// ParseFile reads a file from disk and parses it into a ParsedDoc. The name
// defaults to path.
func ParseFile(path string, opts Options) (*ParsedDoc, error) {
	// #nosec G304 -- path is provided by the CLI or the document watcher.
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read document").
			WithContext("path", path).
			Build()
	}
	if opts.Name == "" {
		opts.Name = path
	}
	return Parse(content, opts)
}

// Name returns the document name given at parse time.
func (d *ParsedDoc) Name() string { return d.name }

// Text returns the full document text. Token ranges index into it.
func (d *ParsedDoc) Text() string { return string(d.original) }

// Bytes returns a copy of the full document bytes.
func (d *ParsedDoc) Bytes() []byte { return append([]byte(nil), d.original...) }

// Body returns a copy of the Markdown body (frontmatter removed).
func (d *ParsedDoc) Body() []byte { return append([]byte(nil), d.original[d.bodyStart:]...) }

// BodyOffset returns the byte offset of the body within the document.
func (d *ParsedDoc) BodyOffset() int { return d.bodyStart }

// HadFrontmatter reports whether the document started with a YAML frontmatter block.
func (d *ParsedDoc) HadFrontmatter() bool { return d.hadFM }

// Tree returns the token tree of the body, built on first use. Ranges are
// relative to Text, not Body.
func (d *ParsedDoc) Tree() *syntax.Token {
	d.treeOnce.Do(func() {
		d.tree = markdown.Tokenize(d.original[d.bodyStart:], d.bodyStart, markdown.Options{})
	})
	return d.tree
}

// Images runs a fresh extraction pass over the document.
func (d *ParsedDoc) Images(x *extract.Extractor) *extract.Pass {
	return x.Extract(d.Tree(), d.Text())
}
