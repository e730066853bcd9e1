package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/imgcaptions/internal/caption"
	"git.home.luguber.info/inful/imgcaptions/internal/docmodel"
	"git.home.luguber.info/inful/imgcaptions/internal/extract"
	"git.home.luguber.info/inful/imgcaptions/internal/foundation/errors"
)

const sample = "# Notes\n\n![[a.png|\"Alpha\" autox80]]\n\nSee ![plain](b.png) and ![x]().\n"

func sampleDocs(t *testing.T) []Document {
	t.Helper()
	doc, err := docmodel.Parse([]byte(sample), docmodel.Options{Name: "notes.md"})
	require.NoError(t, err)
	pass := doc.Images(extract.New(caption.MustDelimiterSpec(`"`)))
	return []Document{FromPass(doc, pass)}
}

func TestFromPass(t *testing.T) {
	docs := sampleDocs(t)
	require.Len(t, docs, 1)
	d := docs[0]
	require.NotEmpty(t, d.PassID)
	require.Len(t, d.Images, 2)
	require.Len(t, d.Skipped, 1)

	a := d.Images[0]
	require.Equal(t, 1, a.Index)
	require.Equal(t, "internal", a.Kind)
	require.Equal(t, "Alpha", *a.Caption)
	require.Equal(t, "autox80", a.Size.String())
	require.Equal(t, 3, a.Line)
	require.Equal(t, 1, a.Column)

	b := d.Images[1]
	require.Equal(t, 2, b.Index)
	require.Equal(t, "external", b.Kind)
	require.Nil(t, b.Caption)
	require.Equal(t, 5, b.Line)
	require.Equal(t, 5, b.Column)
}

func TestTextFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&TextFormatter{}).Format(&buf, sampleDocs(t)))

	out := buf.String()
	require.Contains(t, out, "notes.md\n")
	require.Contains(t, out, `  #1 internal a.png caption="Alpha" size=autox80 at 3:1`+"\n")
	require.Contains(t, out, "  #2 external b.png at 5:5\n")
	require.Contains(t, out, "  skipped: ")
	require.Contains(t, out, "1 document, 2 images, 1 skipped\n")
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&JSONFormatter{}).Format(&buf, sampleDocs(t)))

	var got struct {
		Documents []struct {
			Images []map[string]any `json:"images"`
		} `json:"documents"`
		Images int `json:"images"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Equal(t, 2, got.Images)
	first := got.Documents[0].Images[0]
	require.Equal(t, map[string]any{"width": "auto", "height": float64(80)}, first["size"])
	require.NotContains(t, got.Documents[0].Images[1], "caption")
}

func TestJSONFormatter_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&JSONFormatter{}).Format(&buf, nil))
	require.JSONEq(t, `{"documents": [], "images": 0, "skipped": 0}`, buf.String())
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&YAMLFormatter{}).Format(&buf, sampleDocs(t)))

	var got map[string][]map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	images := got["documents"][0]["images"].([]any)
	first := images[0].(map[string]any)
	require.Equal(t, "Alpha", first["caption"])
	require.Equal(t, map[string]any{"width": "auto", "height": 80}, first["size"])
}

func TestNewFormatter(t *testing.T) {
	for _, name := range []string{"", "text", "json", "yaml"} {
		f, err := NewFormatter(name)
		require.NoError(t, err)
		require.NotNil(t, f)
	}
	_, err := NewFormatter("xml")
	require.True(t, errors.HasCategory(err, errors.CategoryValidation))
}
