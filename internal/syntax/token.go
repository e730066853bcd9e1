package syntax

import (
	"strings"

	"git.home.luguber.info/inful/imgcaptions/internal/util/sets"
)

// Token is the concrete Node built by tree producers and tests.
type Token struct {
	tags   sets.Set[string]
	rng    Range
	first  *Token
	last   *Token
	next   *Token
	parent *Token
}

// NewToken creates a detached token covering [start, end).
func NewToken(start, end int, tags ...string) *Token {
	return &Token{tags: sets.New(tags...), rng: Range{Start: start, End: end}}
}

// Tags returns the token's tag set. Callers must not modify it.
func (t *Token) Tags() sets.Set[string] { return t.tags }

func (t *Token) Range() Range { return t.rng }

func (t *Token) FirstChild() Node {
	if t.first == nil {
		return nil
	}
	return t.first
}

func (t *Token) NextSibling() Node {
	if t.next == nil {
		return nil
	}
	return t.next
}

// Parent returns the enclosing token, or nil for a root.
func (t *Token) Parent() *Token { return t.parent }

// Append adds children after any existing ones and returns t.
func (t *Token) Append(children ...*Token) *Token {
	for _, c := range children {
		c.parent = t
		c.next = nil
		if t.last == nil {
			t.first = c
		} else {
			t.last.next = c
		}
		t.last = c
	}
	return t
}

// Children returns the direct children in order.
func (t *Token) Children() []*Token {
	var out []*Token
	for c := t.first; c != nil; c = c.next {
		out = append(out, c)
	}
	return out
}

// Dump renders the tree for debugging: one token per line, indented by depth,
// with its sorted tags and quoted source text.
func Dump(n Node, src string) string {
	var b strings.Builder
	dump(&b, n, src, 0)
	return b.String()
}

func dump(b *strings.Builder, n Node, src string, depth int) {
	for ; n != nil; n = n.NextSibling() {
		b.WriteString(strings.Repeat("  ", depth))
		if tags := sets.Sorted(n.Tags()); len(tags) > 0 {
			b.WriteString(strings.Join(tags, "_"))
			b.WriteString(" ")
		}
		b.WriteString(quote(n.Range().Text(src)))
		b.WriteString("\n")
		dump(b, n.FirstChild(), src, depth+1)
	}
}

func quote(s string) string {
	return `"` + strings.NewReplacer(`"`, `\"`, "\n", `\n`).Replace(s) + `"`
}
