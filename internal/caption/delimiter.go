package caption

import (
	stderrors "errors"
	"strings"

	"git.home.luguber.info/inful/imgcaptions/internal/foundation/errors"
)

var (
	// ErrTooManyDelimiters is returned for a specification with more than two entries.
	ErrTooManyDelimiters = stderrors.New("at most two caption delimiters may be configured")
	// ErrEmptyDelimiter is returned when a start/end pair contains an empty entry.
	ErrEmptyDelimiter = stderrors.New("start and end delimiters must both be non-empty")
)

// DelimiterSpec marks where the caption sits inside alt text.
//
// The zero value uses the entire alt text as the caption. A single delimiter
// opens and closes the caption; a pair holds distinct start and end strings.
// Values are only produced by NewDelimiterSpec and are safe to share.
type DelimiterSpec struct {
	parts []string
}

// NewDelimiterSpec trims and validates a configured delimiter list.
//
// A single entry that is empty after trimming is treated as no delimiter.
func NewDelimiterSpec(raw []string) (DelimiterSpec, error) {
	if len(raw) > 2 {
		return DelimiterSpec{}, errors.WrapError(ErrTooManyDelimiters, errors.CategoryConfig, "invalid caption delimiter").
			WithContext("count", len(raw)).
			Build()
	}

	parts := make([]string, 0, len(raw))
	for _, p := range raw {
		parts = append(parts, strings.TrimSpace(p))
	}

	switch len(parts) {
	case 1:
		if parts[0] == "" {
			return DelimiterSpec{}, nil
		}
	case 2:
		if parts[0] == "" || parts[1] == "" {
			return DelimiterSpec{}, errors.WrapError(ErrEmptyDelimiter, errors.CategoryConfig, "invalid caption delimiter").
				WithContext("delimiters", parts).
				Build()
		}
	}
	return DelimiterSpec{parts: parts}, nil
}

// MustDelimiterSpec is like NewDelimiterSpec but panics on error.
func MustDelimiterSpec(raw ...string) DelimiterSpec {
	spec, err := NewDelimiterSpec(raw)
	if err != nil {
		panic(err)
	}
	return spec
}

// Len returns the number of configured delimiters (0, 1 or 2).
func (d DelimiterSpec) Len() int { return len(d.parts) }

// Strings returns a copy of the configured delimiters.
func (d DelimiterSpec) Strings() []string {
	return append([]string(nil), d.parts...)
}

// bounds returns the start and end delimiter. Only valid when Len() > 0.
func (d DelimiterSpec) bounds() (start, end string) {
	if len(d.parts) == 1 {
		return d.parts[0], d.parts[0]
	}
	return d.parts[0], d.parts[1]
}
