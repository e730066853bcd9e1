// Package style generates the stylesheet that displays caption labels.
package style

import (
	"strings"

	"git.home.luguber.info/inful/imgcaptions/internal/figures"
)

// Part is one piece of a parsed label template: either literal text or the
// figure index placeholder.
type Part struct {
	Literal string
	Index   bool
}

// ParseLabel splits a label template into parts. '#' stands for the figure
// index, "\#" is a literal '#' and "\\" a literal backslash. Any other
// backslash is kept as is. Adjacent literals are merged.
func ParseLabel(label string) []Part {
	var (
		parts []Part
		lit   strings.Builder
	)
	flush := func() {
		if lit.Len() > 0 {
			parts = append(parts, Part{Literal: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(label); i++ {
		c := label[i]
		switch {
		case c == '\\' && i+1 < len(label) && (label[i+1] == '#' || label[i+1] == '\\'):
			lit.WriteByte(label[i+1])
			i++
		case c == '#':
			flush()
			parts = append(parts, Part{Index: true})
		default:
			lit.WriteByte(c)
		}
	}
	flush()
	return parts
}

// Content renders parts as a CSS content value, or "" for no parts.
func Content(parts []Part) string {
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		if p.Index {
			items = append(items, "attr("+figures.IndexAttr+")")
			continue
		}
		items = append(items, quote(p.Literal))
	}
	return strings.Join(items, " ")
}

const base = `.` + figures.FigureClass + ` {
  display: table;
  margin-inline: auto;
}

.` + figures.CaptionClass + ` {
  display: table-caption;
  caption-side: bottom;
  text-align: center;
}
`

// Stylesheet builds the CSS for label and appends customCSS verbatim.
// An empty label produces no label rule.
func Stylesheet(label, customCSS string) string {
	var b strings.Builder
	b.WriteString(base)

	if content := Content(ParseLabel(label)); content != "" {
		b.WriteString("\n." + figures.CaptionClass + "::before {\n")
		b.WriteString("  content: " + content + ";\n")
		b.WriteString("  margin-inline-end: 0.25em;\n")
		b.WriteString("}\n")
	}

	if css := strings.TrimSpace(customCSS); css != "" {
		b.WriteString("\n")
		b.WriteString(css)
		b.WriteString("\n")
	}
	return b.String()
}

// quote returns s as a double-quoted CSS string.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\n':
			b.WriteString(`\A `)
		case '\r', '\f':
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
