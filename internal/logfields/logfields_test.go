package logfields

import (
	"errors"
	"log/slog"
	"testing"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"Document", KeyDocument, "notes.md", Document("notes.md")},
		{"PassID", KeyPassID, "p1", PassID("p1")},
		{"Source", KeySource, "a.png", Source("a.png")},
		{"EmbedKind", KeyEmbedKind, "internal", EmbedKind("internal")},
		{"Path", KeyPath, "/tmp/x", Path("/tmp/x")},
		{"Error", KeyError, "boom", Error(errors.New("boom"))},
		{"NilError", KeyError, "", Error(nil)},
	}
	for _, tc := range cases {
		if tc.attr.Key != tc.attrKey {
			t.Fatalf("%s: key mismatch: got %s want %s", tc.name, tc.attr.Key, tc.attrKey)
		}
		if tc.attr.Value.String() != tc.attrVal {
			t.Fatalf("%s: value mismatch: got %s want %s", tc.name, tc.attr.Value.String(), tc.attrVal)
		}
	}
}

func TestNumericHelpers(t *testing.T) {
	if got := ImageIndex(3).Value.Int64(); got != 3 {
		t.Fatalf("ImageIndex: got %d", got)
	}
	if got := Images(7).Value.Int64(); got != 7 {
		t.Fatalf("Images: got %d", got)
	}
	if got := DurationMS(1.5).Value.Float64(); got != 1.5 {
		t.Fatalf("DurationMS: got %v", got)
	}
	span := Span(2, 9)
	if span.Key != "span" || len(span.Value.Group()) != 2 {
		t.Fatalf("Span: unexpected attr %v", span)
	}
}
