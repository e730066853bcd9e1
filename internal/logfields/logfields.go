package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyDocument   = "document"
	KeyPassID     = "pass_id"
	KeyImageIndex = "image_index"
	KeySource     = "source"
	KeyEmbedKind  = "embed_kind"
	KeySpanStart  = "span_start"
	KeySpanEnd    = "span_end"
	KeyImages     = "images"
	KeyPath       = "path"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

func Document(d string) slog.Attr     { return slog.String(KeyDocument, d) }
func PassID(id string) slog.Attr      { return slog.String(KeyPassID, id) }
func ImageIndex(i int) slog.Attr      { return slog.Int(KeyImageIndex, i) }
func Source(s string) slog.Attr       { return slog.String(KeySource, s) }
func EmbedKind(k string) slog.Attr    { return slog.String(KeyEmbedKind, k) }
func Images(n int) slog.Attr          { return slog.Int(KeyImages, n) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }

// Span groups the byte range of an embed.
func Span(start, end int) slog.Attr {
	return slog.Group("span", slog.Int("start", start), slog.Int("end", end))
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
