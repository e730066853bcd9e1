package docmodel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/imgcaptions/internal/caption"
	"git.home.luguber.info/inful/imgcaptions/internal/extract"
	"git.home.luguber.info/inful/imgcaptions/internal/foundation/errors"
)

func TestParse_NoFrontmatter(t *testing.T) {
	content := []byte("# Hello\n\n![[a.png|A]]\n")
	doc, err := Parse(content, Options{Name: "hello.md"})
	require.NoError(t, err)
	require.False(t, doc.HadFrontmatter())
	require.Equal(t, 0, doc.BodyOffset())
	require.Equal(t, content, doc.Body())
	require.Equal(t, "hello.md", doc.Name())
}

func TestParse_FrontmatterOffsetsIndexFullText(t *testing.T) {
	content := "---\ntitle: x\n---\n![[a.png|\"Cap\"]]\n"
	doc, err := Parse([]byte(content), Options{})
	require.NoError(t, err)
	require.True(t, doc.HadFrontmatter())
	require.Equal(t, len("---\ntitle: x\n---\n"), doc.BodyOffset())

	pass := doc.Images(extract.New(caption.MustDelimiterSpec(`"`)))
	require.Len(t, pass.Images, 1)
	img := pass.Images[0]
	require.Equal(t, "![[a.png|\"Cap\"]]", img.Range().Text(doc.Text()))
	require.Equal(t, "Cap", *img.Caption)

	line, col := doc.LineOf(img.Range().Start)
	require.Equal(t, 4, line)
	require.Equal(t, 1, col)
}

func TestParse_EmptyFrontmatterAndCRLF(t *testing.T) {
	doc, err := Parse([]byte("---\r\n---\r\n![x](x.png)\r\n"), Options{})
	require.NoError(t, err)
	require.True(t, doc.HadFrontmatter())
	require.Equal(t, 10, doc.BodyOffset())

	pass := doc.Images(extract.New(caption.MustDelimiterSpec()))
	require.Len(t, pass.Images, 1)
	require.Equal(t, "x.png", pass.Images[0].Source)
}

func TestParse_MissingClosingDelimiter(t *testing.T) {
	_, err := Parse([]byte("---\nkey: value\n# body\n"), Options{})
	require.ErrorIs(t, err, ErrMissingClosingDelimiter)
	require.True(t, errors.HasCategory(err, errors.CategoryValidation))
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("![a](a.png)\n"), 0o600))

	doc, err := ParseFile(path, Options{})
	require.NoError(t, err)
	require.Equal(t, path, doc.Name())

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.md"), Options{})
	require.True(t, errors.HasCategory(err, errors.CategoryFileSystem))
}

func TestParsedDoc_DoesNotExposeMutableBytes(t *testing.T) {
	doc, err := Parse([]byte("# Hello\n"), Options{})
	require.NoError(t, err)

	buf := doc.Bytes()
	buf[0] = 'X'
	require.Equal(t, byte('#'), doc.Bytes()[0])
	body := doc.Body()
	body[0] = 'Y'
	require.Equal(t, "# Hello\n", doc.Text())
}

func TestLineOf(t *testing.T) {
	doc, err := Parse([]byte("ab\ncd\n\nef"), Options{})
	require.NoError(t, err)

	cases := []struct{ offset, line, col int }{
		{0, 1, 1}, {1, 1, 2}, {2, 1, 3}, {3, 2, 1}, {6, 3, 1}, {7, 4, 1}, {8, 4, 2}, {99, 4, 3}, {-5, 1, 1},
	}
	for _, tc := range cases {
		line, col := doc.LineOf(tc.offset)
		require.Equal(t, tc.line, line, "offset %d", tc.offset)
		require.Equal(t, tc.col, col, "offset %d", tc.offset)
	}
}
