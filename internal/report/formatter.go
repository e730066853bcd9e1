package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/imgcaptions/internal/foundation/errors"
)

// Formatter writes extraction results.
type Formatter interface {
	Format(w io.Writer, docs []Document) error
}

// NewFormatter returns the formatter for name: text, json or yaml.
func NewFormatter(name string) (Formatter, error) {
	switch name {
	case "", "text":
		return &TextFormatter{}, nil
	case "json":
		return &JSONFormatter{}, nil
	case "yaml":
		return &YAMLFormatter{}, nil
	default:
		return nil, errors.ValidationError("unknown output format").
			WithContext("format", name).
			Build()
	}
}

// TextFormatter formats results as human-readable text.
type TextFormatter struct{}

// Format outputs one block per document followed by a summary.
func (f *TextFormatter) Format(w io.Writer, docs []Document) error {
	for _, d := range docs {
		if _, err := fmt.Fprintf(w, "%s\n", d.Path); err != nil {
			return err
		}
		for _, img := range d.Images {
			if _, err := fmt.Fprintf(w, "  %s\n", formatImage(img)); err != nil {
				return err
			}
		}
		for _, s := range d.Skipped {
			if _, err := fmt.Fprintf(w, "  skipped: %s\n", s); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	images, skipped := Totals(docs)
	if _, err := fmt.Fprintln(w, strings.Repeat("━", 40)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d document%s, %d image%s, %d skipped\n",
		len(docs), pluralize(len(docs)), images, pluralize(images), skipped)
	return err
}

func formatImage(img Image) string {
	parts := []string{
		"#" + strconv.Itoa(img.Index),
		img.Kind,
		img.Source,
	}
	if img.Caption != nil {
		parts = append(parts, "caption="+strconv.Quote(*img.Caption))
	}
	if img.Size != nil {
		parts = append(parts, "size="+img.Size.String())
	}
	parts = append(parts, fmt.Sprintf("at %d:%d", img.Line, img.Column))
	return strings.Join(parts, " ")
}

func pluralize(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// JSONFormatter formats results as indented JSON.
type JSONFormatter struct{}

// JSONOutput is the top-level JSON document.
type JSONOutput struct {
	Documents []Document `json:"documents"`
	Images    int        `json:"images"`
	Skipped   int        `json:"skipped"`
}

func (f *JSONFormatter) Format(w io.Writer, docs []Document) error {
	images, skipped := Totals(docs)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(JSONOutput{Documents: nonNil(docs), Images: images, Skipped: skipped})
}

// YAMLFormatter formats results as YAML.
type YAMLFormatter struct{}

func (f *YAMLFormatter) Format(w io.Writer, docs []Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(map[string][]Document{"documents": nonNil(docs)}); err != nil {
		return err
	}
	return enc.Close()
}

func nonNil(docs []Document) []Document {
	if docs == nil {
		return []Document{}
	}
	return docs
}
