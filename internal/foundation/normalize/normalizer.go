// Package normalize maps loosely written option values onto typed enums.
package normalize

import (
	"slices"
	"strings"
)

// clean provides standard string normalization.
func clean(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Normalizer converts raw strings to values of an enum type.
type Normalizer[T comparable] struct {
	values       map[string]T
	defaultValue T
}

// New creates a normalizer from spelling->value pairs. Keys are matched
// case-insensitively and ignoring surrounding whitespace.
func New[T comparable](values map[string]T, defaultValue T) *Normalizer[T] {
	normalized := make(map[string]T, len(values))
	for k, v := range values {
		normalized[clean(k)] = v
	}
	return &Normalizer[T]{values: normalized, defaultValue: defaultValue}
}

// Normalize returns the value for raw, or the default if raw is not recognized.
func (n *Normalizer[T]) Normalize(raw string) T {
	v, _ := n.Lookup(raw)
	return v
}

// Lookup returns the value for raw and whether raw was recognized.
func (n *Normalizer[T]) Lookup(raw string) (T, bool) {
	if v, ok := n.values[clean(raw)]; ok {
		return v, true
	}
	return n.defaultValue, false
}

// Keys returns the recognized spellings, sorted.
func (n *Normalizer[T]) Keys() []string {
	keys := make([]string, 0, len(n.values))
	for k := range n.values {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
