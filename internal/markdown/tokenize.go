package markdown

import (
	"strings"

	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"git.home.luguber.info/inful/imgcaptions/internal/syntax"
)

// Tokenize builds the tagged token tree for a Markdown body.
//
// The root carries TagDocument. Each paragraph or heading becomes a child
// whose children are the inline tokens of its lines, in order. Embeds are
// split into marker, target, alias/alt and URL tokens; everything else is an
// untagged text token. Code blocks and inline code spans never yield embeds.
// offset is added to every range so ranges index the full document when the
// body follows a frontmatter block.
func Tokenize(body []byte, offset int, opts Options) *syntax.Token {
	root := syntax.NewToken(offset, offset+len(body), syntax.TagDocument)
	doc := ParseBody(body, opts)

	_ = gmast.Walk(doc, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		var tag string
		switch n.Kind() {
		case gmast.KindParagraph, gmast.KindTextBlock:
			tag = syntax.TagParagraph
		case gmast.KindHeading:
			tag = syntax.TagHeading
		default:
			return gmast.WalkContinue, nil
		}
		if block := tokenizeBlock(body, offset, n.Lines(), tag); block != nil {
			root.Append(block)
		}
		return gmast.WalkSkipChildren, nil
	})

	return root
}

func tokenizeBlock(body []byte, offset int, lines *text.Segments, tag string) *syntax.Token {
	if lines == nil || lines.Len() == 0 {
		return nil
	}
	first, last := lines.At(0), lines.At(lines.Len()-1)
	block := syntax.NewToken(offset+first.Start, offset+trimEOL(body, last.Start, last.Stop), tag)
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		stop := trimEOL(body, seg.Start, seg.Stop)
		s := &lineScanner{line: string(body[seg.Start:stop]), base: offset + seg.Start}
		block.Append(s.scan()...)
	}
	return block
}

func trimEOL(body []byte, start, stop int) int {
	for stop > start && (body[stop-1] == '\n' || body[stop-1] == '\r') {
		stop--
	}
	return stop
}

// lineScanner splits one line into tagged tokens.
type lineScanner struct {
	line      string
	base      int
	out       []*syntax.Token
	textStart int
}

func (s *lineScanner) scan() []*syntax.Token {
	line := s.line
	for i := 0; i < len(line); {
		switch {
		case line[i] == '\\':
			i += 2
		case line[i] == '`':
			i = s.codeSpan(i)
		case strings.HasPrefix(line[i:], "![["):
			if n := s.internalEmbed(i); n > 0 {
				i += n
				continue
			}
			i++
		case strings.HasPrefix(line[i:], "!["):
			if n := s.externalImage(i); n > 0 {
				i += n
				continue
			}
			i++
		default:
			i++
		}
	}
	s.flushText(len(line))
	return s.out
}

func (s *lineScanner) emit(start, end int, tags ...string) {
	if end <= start {
		return
	}
	s.out = append(s.out, syntax.NewToken(s.base+start, s.base+end, tags...))
}

func (s *lineScanner) flushText(upTo int) {
	s.emit(s.textStart, min(upTo, len(s.line)))
	s.textStart = upTo
}

// codeSpan consumes a backtick code span starting at i and returns the index
// after it. An unclosed run of backticks is treated as text.
func (s *lineScanner) codeSpan(i int) int {
	run := 1
	for i+run < len(s.line) && s.line[i+run] == '`' {
		run++
	}
	marker := strings.Repeat("`", run)
	closeRel := strings.Index(s.line[i+run:], marker)
	if closeRel == -1 {
		return i + run
	}
	end := i + run + closeRel + run
	s.flushText(i)
	s.emit(i, end, syntax.TagInlineCode)
	s.textStart = end
	return end
}

// internalEmbed tokenizes ![[target|alias]] at i and returns its length, or 0.
func (s *lineScanner) internalEmbed(i int) int {
	open := i + 3
	closeRel := strings.Index(s.line[open:], "]]")
	if closeRel <= 0 {
		return 0
	}
	closeAt := open + closeRel
	inner := s.line[open:closeAt]

	s.flushText(i)
	s.emit(i, open, syntax.TagFormatting, syntax.TagFormattingLink, syntax.TagFormattingLinkStart, syntax.TagFormattingEmbed)
	if pipe := strings.IndexByte(inner, '|'); pipe >= 0 {
		s.emit(open, open+pipe, syntax.TagEmbed, syntax.TagInternalLink)
		s.emit(open+pipe, open+pipe+1, syntax.TagEmbed, syntax.TagInternalLink, syntax.TagLinkAliasPipe)
		s.emit(open+pipe+1, closeAt, syntax.TagEmbed, syntax.TagInternalLink, syntax.TagLinkAlias)
	} else {
		s.emit(open, closeAt, syntax.TagEmbed, syntax.TagInternalLink)
	}
	s.emit(closeAt, closeAt+2, syntax.TagFormatting, syntax.TagFormattingLink, syntax.TagFormattingLinkEnd)
	s.textStart = closeAt + 2
	return closeAt + 2 - i
}

// externalImage tokenizes ![alt](dest "title") at i and returns its length, or 0.
func (s *lineScanner) externalImage(i int) int {
	line := s.line
	altEnd := matchBracket(line, i+1)
	if altEnd == -1 || altEnd+1 >= len(line) || line[altEnd+1] != '(' {
		return 0
	}
	d, ok := parseDestination(line, altEnd+2)
	if !ok {
		return 0
	}

	s.flushText(i)
	s.emit(i, i+2, syntax.TagFormatting, syntax.TagFormattingImage, syntax.TagImage, syntax.TagImageMarker)
	s.emit(i+2, altEnd, syntax.TagImage, syntax.TagImageAltText)
	s.emit(altEnd, altEnd+1, syntax.TagFormatting, syntax.TagFormattingImage, syntax.TagImage, syntax.TagImageAltTextEnd)
	s.emit(altEnd+1, altEnd+2, syntax.TagFormatting, syntax.TagFormattingLinkString, syntax.TagString, syntax.TagURL)
	if d.angled {
		s.emit(altEnd+2, d.start-1, syntax.TagString)
		s.emit(d.start-1, d.start, syntax.TagFormatting)
		s.emit(d.start, d.end, syntax.TagString, syntax.TagURL)
		s.emit(d.end, d.end+1, syntax.TagFormatting)
	} else {
		s.emit(altEnd+2, d.end, syntax.TagString, syntax.TagURL)
	}
	rest := d.end
	if d.angled {
		rest++
	}
	if d.titled {
		s.emit(rest, d.close, syntax.TagString, syntax.TagLinkTitle)
	} else {
		s.emit(rest, d.close, syntax.TagString)
	}
	s.emit(d.close, d.close+1, syntax.TagFormatting, syntax.TagFormattingLinkString, syntax.TagString, syntax.TagURL)
	s.textStart = d.close + 1
	return d.close + 1 - i
}

// matchBracket returns the index of the ']' closing the '[' at open, honoring
// nesting and backslash escapes, or -1.
func matchBracket(line string, open int) int {
	depth := 0
	for j := open; j < len(line); j++ {
		switch line[j] {
		case '\\':
			j++
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return -1
}

type destination struct {
	start, end int // destination text, without angle brackets
	close      int // index of the closing ')'
	angled     bool
	titled     bool
}

// parseDestination parses `dest "title")` starting right after '('.
func parseDestination(line string, at int) (destination, bool) {
	var d destination
	j := skipSpaces(line, at)
	if j < len(line) && line[j] == '<' {
		end := strings.IndexByte(line[j+1:], '>')
		if end == -1 {
			return d, false
		}
		d.angled = true
		d.start, d.end = j+1, j+1+end
		j = d.end + 1
	} else {
		d.start = j
		depth := 0
	loop:
		for ; j < len(line); j++ {
			switch c := line[j]; {
			case c == '\\':
				j++
			case c == '(':
				depth++
			case c == ')':
				if depth == 0 {
					break loop
				}
				depth--
			case c == ' ' || c == '\t':
				break loop
			}
		}
		d.end = min(j, len(line))
	}

	j = skipSpaces(line, j)
	if j < len(line) && strings.IndexByte(`"'(`, line[j]) >= 0 {
		closer := line[j]
		if closer == '(' {
			closer = ')'
		}
		end := strings.IndexByte(line[j+1:], closer)
		if end == -1 {
			return d, false
		}
		d.titled = true
		j = skipSpaces(line, j+1+end+1)
	}
	if j >= len(line) || line[j] != ')' {
		return d, false
	}
	d.close = j
	return d, true
}

func skipSpaces(line string, j int) int {
	for j < len(line) && (line[j] == ' ' || line[j] == '\t') {
		j++
	}
	return j
}
