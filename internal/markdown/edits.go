package markdown

import (
	"cmp"
	"slices"

	"git.home.luguber.info/inful/imgcaptions/internal/foundation/errors"
)

// Edit is a byte-range replacement of source[Start:End].
//
// An edit with Start == End is a pure insertion. Decorations (caption
// widgets) are expressed as insertions so the document text itself is never
// rewritten, only a copy of it.
type Edit struct {
	Start       int
	End         int
	Replacement []byte
}

// Insert returns an edit inserting text at offset.
func Insert(offset int, text string) Edit {
	return Edit{Start: offset, End: offset, Replacement: []byte(text)}
}

// ApplyEdits applies non-overlapping edits to a copy of source.
//
// Offsets refer to the original source. Edits are applied from the end of the
// buffer toward the beginning so earlier offsets stay valid.
func ApplyEdits(source []byte, edits []Edit) ([]byte, error) {
	if len(edits) == 0 {
		return append([]byte(nil), source...), nil
	}

	sorted := slices.Clone(edits)
	slices.SortFunc(sorted, func(a, b Edit) int {
		if a.Start == b.Start {
			return cmp.Compare(b.End, a.End)
		}
		return cmp.Compare(b.Start, a.Start)
	})

	for i, e := range sorted {
		if e.Start < 0 || e.End < e.Start || e.End > len(source) {
			return nil, errors.ValidationError("edit range out of bounds").
				WithRange(e.Start, e.End).
				WithContext("length", len(source)).
				Build()
		}
		// Sorted by Start descending: the current edit must end at or before
		// the previous edit's start.
		if i > 0 && e.End > sorted[i-1].Start {
			return nil, errors.ValidationError("overlapping edits").
				WithContext("start", e.Start).
				WithContext("next_start", sorted[i-1].Start).
				Build()
		}
		if i > 0 && e.Start == e.End && e.Start == sorted[i-1].Start {
			return nil, errors.ValidationError("ambiguous insertions at the same offset").
				WithContext("offset", e.Start).
				Build()
		}
	}

	out := append([]byte(nil), source...)
	for _, e := range sorted {
		next := make([]byte, 0, len(out)-(e.End-e.Start)+len(e.Replacement))
		next = append(next, out[:e.Start]...)
		next = append(next, e.Replacement...)
		next = append(next, out[e.End:]...)
		out = next
	}
	return out, nil
}
