package style

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLabel(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  []Part
	}{
		{name: "empty", label: "", want: nil},
		{name: "default", label: "Figure #", want: []Part{{Literal: "Figure "}, {Index: true}}},
		{name: "escaped hash", label: `Fig \## ok`, want: []Part{{Literal: "Fig #"}, {Index: true}, {Literal: " ok"}}},
		{name: "escaped backslash", label: `\\#`, want: []Part{{Literal: `\`}, {Index: true}}},
		{name: "lone backslash kept", label: `a\b`, want: []Part{{Literal: `a\b`}}},
		{name: "trailing backslash", label: `#\`, want: []Part{{Index: true}, {Literal: `\`}}},
		{name: "two placeholders", label: "#.#", want: []Part{{Index: true}, {Literal: "."}, {Index: true}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ParseLabel(tt.label))
		})
	}
}

func TestContent(t *testing.T) {
	require.Equal(t, `"Figure " attr(data-image-caption-index) ":"`, Content(ParseLabel("Figure #:")))
	require.Equal(t, `"say \"hi\" \\ "`, Content(ParseLabel(`say "hi" \\ `)))
	require.Equal(t, `"a\A b"`, Content([]Part{{Literal: "a\nb"}}))
	require.Empty(t, Content(nil))
}

func TestStylesheet(t *testing.T) {
	css := Stylesheet("Figure #", "  .image-captions-caption { color: red; }\n")

	require.Contains(t, css, ".image-captions-figure {")
	require.Contains(t, css, `content: "Figure " attr(data-image-caption-index);`)
	require.True(t, strings.HasSuffix(css, ".image-captions-caption { color: red; }\n"))
}

func TestStylesheet_EmptyLabelHasNoLabelRule(t *testing.T) {
	css := Stylesheet("", "")
	require.NotContains(t, css, "::before")
	require.Equal(t, base, css)
}
