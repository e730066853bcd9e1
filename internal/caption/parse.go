// Package caption splits image alt text into a caption and an optional size
// directive according to a configured delimiter specification.
package caption

import "strings"

// ParsedCaption is the result of parsing one alt text. Absent parts are nil.
type ParsedCaption struct {
	Text *string    `json:"caption,omitempty" yaml:"caption,omitempty"`
	Size *ImageSize `json:"size,omitempty" yaml:"size,omitempty"`
}

// Caption returns the caption text and whether one was found.
func (p ParsedCaption) Caption() (string, bool) {
	if p.Text == nil {
		return "", false
	}
	return *p.Text, true
}

// Parse splits text into caption and size using delimiters.
//
// Only the first start delimiter and the last end delimiter are significant,
// so delimiter characters inside the caption need no escaping. Text outside
// the caption is scanned for a WIDTHxHEIGHT directive, left side first. With
// no delimiters the whole text is the caption and no size is extracted.
func Parse(text string, delimiters DelimiterSpec) ParsedCaption {
	if text == "" {
		return ParsedCaption{}
	}
	if delimiters.Len() == 0 {
		return ParsedCaption{Text: &text}
	}

	open, closing := delimiters.bounds()
	start := strings.Index(text, open)
	end := strings.LastIndex(text, closing)

	if start == -1 || end == -1 || start == end || start+len(open) > end {
		return ParsedCaption{Size: findSize(text)}
	}

	body := text[start+len(open) : end]
	out := ParsedCaption{Text: &body}
	for _, segment := range []string{text[:start], text[end+len(closing):]} {
		if size := findSize(segment); size != nil {
			out.Size = size
			break
		}
	}
	return out
}
