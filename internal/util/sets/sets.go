package sets

import (
	"slices"
	"strings"
)

// Set is a simple generic hash set for comparable keys.
// Usage: s := sets.New[string]("a","b"); s.Add("c"); if s.Has("b") {...}
type Set[T comparable] map[T]struct{}

// New creates a set pre-populated with the provided values.
func New[T comparable](vals ...T) Set[T] {
	s := make(Set[T], len(vals))
	for _, v := range vals {
		s[v] = struct{}{}
	}
	return s
}

// Add inserts value into the set.
func (s Set[T]) Add(v T) { s[v] = struct{}{} }

// Has returns true if v is present.
func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}

// HasAll reports whether every value in vals is present.
func (s Set[T]) HasAll(vals ...T) bool {
	for _, v := range vals {
		if !s.Has(v) {
			return false
		}
	}
	return true
}

// HasAny reports whether at least one value in vals is present.
func (s Set[T]) HasAny(vals ...T) bool {
	for _, v := range vals {
		if s.Has(v) {
			return true
		}
	}
	return false
}

// Split builds a string set from a separator-joined list, dropping empty parts.
// "formatting_formatting-link" with sep "_" yields {formatting, formatting-link}.
func Split(joined, sep string) Set[string] {
	s := make(Set[string])
	for _, part := range strings.Split(joined, sep) {
		if part != "" {
			s.Add(part)
		}
	}
	return s
}

// Sorted returns the members of a string set in lexical order.
func Sorted(s Set[string]) []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
