package caption

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func strPtr(s string) *string { return &s }

func TestParse(t *testing.T) {
	quote := MustDelimiterSpec(`"`)
	braces := MustDelimiterSpec("{", "}")
	none := MustDelimiterSpec()

	cases := []struct {
		name  string
		text  string
		delim DelimiterSpec
		want  ParsedCaption
	}{
		{"empty text", "", quote, ParsedCaption{}},
		{"empty text no delimiter", "", none, ParsedCaption{}},
		{"no delimiter uses whole text", "A plain caption", none, ParsedCaption{Text: strPtr("A plain caption")}},
		{"no delimiter skips size", "100x150", none, ParsedCaption{Text: strPtr("100x150")}},
		{"single delimiter", `"My caption"`, quote, ParsedCaption{Text: strPtr("My caption")}},
		{"two delimiters", "{My caption}", braces, ParsedCaption{Text: strPtr("My caption")}},
		{"size only", "100x150", quote, ParsedCaption{Size: &ImageSize{Width: Pixels(100), Height: Pixels(150)}}},
		{
			"size before caption", `50x50 "Look at my caption"`, quote,
			ParsedCaption{Text: strPtr("Look at my caption"), Size: &ImageSize{Width: Pixels(50), Height: Pixels(50)}},
		},
		{
			"size after caption", `"Caption" 320xauto`, quote,
			ParsedCaption{Text: strPtr("Caption"), Size: &ImageSize{Width: Pixels(320), Height: Auto()}},
		},
		{
			"left segment wins", `10x20 {Cap} 30x40`, braces,
			ParsedCaption{Text: strPtr("Cap"), Size: &ImageSize{Width: Pixels(10), Height: Pixels(20)}},
		},
		{"auto width", "autox200", quote, ParsedCaption{Size: &ImageSize{Width: Auto(), Height: Pixels(200)}}},
		{"uppercase x and auto", "AUTOX90", quote, ParsedCaption{Size: &ImageSize{Width: Auto(), Height: Pixels(90)}}},
		{"inner delimiters preserved", `"He said ""hi"""`, quote, ParsedCaption{Text: strPtr(`He said ""hi""`)}},
		{"single occurrence is not a region", `Just "one quote`, quote, ParsedCaption{}},
		{"size inside caption is not extracted", `"A 10x10 grid"`, quote, ParsedCaption{Text: strPtr("A 10x10 grid")}},
		{"end before start", "}x{", braces, ParsedCaption{}},
		{"empty caption between delimiters", `""`, quote, ParsedCaption{Text: strPtr("")}},
		{"missing end delimiter scans whole text", "{oops 5x6", braces, ParsedCaption{Size: &ImageSize{Width: Pixels(5), Height: Pixels(6)}}},
		{"overflowing digits ignored", `"c" 99999999999999999999x1`, quote, ParsedCaption{Text: strPtr("c")}},
		{
			"later directive after overflow", `"c" 99999999999999999999x1 10x20`, quote,
			ParsedCaption{Text: strPtr("c"), Size: &ImageSize{Width: Pixels(10), Height: Pixels(20)}},
		},
		{"multi-char delimiters", "<<Nested < caption>> 1x2", MustDelimiterSpec("<<", ">>"),
			ParsedCaption{Text: strPtr("Nested < caption"), Size: &ImageSize{Width: Pixels(1), Height: Pixels(2)}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Parse(tc.text, tc.delim))
		})
	}
}

func TestParse_NoDelimiterOccurrenceScansWholeText(t *testing.T) {
	texts := []string{"", "plain", "100x100", "img 3x4 here", "autoxauto"}
	for _, text := range texts {
		got := Parse(text, MustDelimiterSpec("|"))
		require.Nil(t, got.Text, text)
		require.Equal(t, findSize(text), got.Size, text)
	}
}

func TestParse_EmptySpecIsIdentity(t *testing.T) {
	for _, text := range []string{"a", `"quoted"`, "1x1", "  spaced  "} {
		got := Parse(text, DelimiterSpec{})
		require.NotNil(t, got.Text)
		require.Equal(t, text, *got.Text)
		require.Nil(t, got.Size)
	}
}

func TestNewDelimiterSpec(t *testing.T) {
	spec, err := NewDelimiterSpec([]string{"  [ ", " ] "})
	require.NoError(t, err)
	require.Equal(t, []string{"[", "]"}, spec.Strings())

	spec, err = NewDelimiterSpec([]string{"   "})
	require.NoError(t, err)
	require.Equal(t, 0, spec.Len())

	_, err = NewDelimiterSpec([]string{"a", "b", "c"})
	require.ErrorIs(t, err, ErrTooManyDelimiters)

	_, err = NewDelimiterSpec([]string{"a", " "})
	require.ErrorIs(t, err, ErrEmptyDelimiter)

	require.Panics(t, func() { MustDelimiterSpec("", "x") })
}

func TestImageSize_Encoding(t *testing.T) {
	size := ImageSize{Width: Auto(), Height: Pixels(200)}
	require.Equal(t, "autox200", size.String())

	b, err := json.Marshal(size)
	require.NoError(t, err)
	require.JSONEq(t, `{"width":"auto","height":200}`, string(b))

	y, err := yaml.Marshal(size)
	require.NoError(t, err)
	require.Equal(t, "width: auto\nheight: 200\n", string(y))

	n, ok := Pixels(7).Value()
	require.True(t, ok)
	require.Equal(t, 7, n)
	_, ok = Auto().Value()
	require.False(t, ok)
}
