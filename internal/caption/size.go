package caption

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const autoToken = "auto"

var sizeDirective = regexp.MustCompile(`(?i)(\d+|auto)x(\d+|auto)`)

// Dimension is one side of a requested render size: a pixel count or "auto".
type Dimension struct {
	pixels int
	auto   bool
}

// Auto returns the dimension that scales with the other side.
func Auto() Dimension { return Dimension{auto: true} }

// Pixels returns an explicit dimension.
func Pixels(n int) Dimension { return Dimension{pixels: n} }

// Value returns the explicit pixel count; ok is false for auto.
func (d Dimension) Value() (n int, ok bool) {
	return d.pixels, !d.auto
}

func (d Dimension) String() string {
	if d.auto {
		return autoToken
	}
	return strconv.Itoa(d.pixels)
}

// MarshalJSON encodes auto as the string "auto" and explicit values as numbers.
func (d Dimension) MarshalJSON() ([]byte, error) {
	if d.auto {
		return json.Marshal(autoToken)
	}
	return json.Marshal(d.pixels)
}

// MarshalYAML mirrors MarshalJSON.
func (d Dimension) MarshalYAML() (any, error) {
	if d.auto {
		return autoToken, nil
	}
	return d.pixels, nil
}

// ImageSize is a user-requested render size.
type ImageSize struct {
	Width  Dimension `json:"width" yaml:"width"`
	Height Dimension `json:"height" yaml:"height"`
}

func (s ImageSize) String() string {
	return fmt.Sprintf("%sx%s", s.Width, s.Height)
}

// findSize returns the first size directive in segment whose dimensions
// both fit an int.
func findSize(segment string) *ImageSize {
	for _, m := range sizeDirective.FindAllStringSubmatch(segment, -1) {
		w, ok := parseDimension(m[1])
		if !ok {
			continue
		}
		h, ok := parseDimension(m[2])
		if !ok {
			continue
		}
		return &ImageSize{Width: w, Height: h}
	}
	return nil
}

func parseDimension(tok string) (Dimension, bool) {
	if strings.EqualFold(tok, autoToken) {
		return Auto(), true
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		// digits overflowing int
		return Dimension{}, false
	}
	return Pixels(n), true
}
