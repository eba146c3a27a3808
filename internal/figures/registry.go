// Package figures holds the label to figure-number registry built while a
// document is numbered.
package figures

import "golang.org/x/text/unicode/norm"

// Entry is one registered figure.
type Entry struct {
	Label string
	Index int
}

// Lookup is the read-only view of a Registry handed to reference resolution.
type Lookup interface {
	Lookup(label string) (int, bool)
	Len() int
}

// Registry assigns sequential 1-based numbers to labels in first-seen order.
// A label keeps its number for the registry's lifetime. The zero value is
// not usable; create one with NewRegistry.
type Registry struct {
	entries []Entry
	byLabel map[string]int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byLabel: make(map[string]int)}
}

// Register returns the number for label, assigning the next one if label is new.
// Registering a known label again returns its existing number; two figures
// sharing a label therefore share a number.
func (r *Registry) Register(label string) int {
	key := canonical(label)
	if idx, ok := r.byLabel[key]; ok {
		return idx
	}
	idx := len(r.entries) + 1
	r.entries = append(r.entries, Entry{Label: key, Index: idx})
	r.byLabel[key] = idx
	return idx
}

// Lookup returns the number registered for label.
func (r *Registry) Lookup(label string) (int, bool) {
	idx, ok := r.byLabel[canonical(label)]
	return idx, ok
}

// Contains reports whether label has been registered.
func (r *Registry) Contains(label string) bool {
	_, ok := r.Lookup(label)
	return ok
}

// Len is the number of distinct labels.
func (r *Registry) Len() int { return len(r.entries) }

// Entries returns a copy of the registered figures in index order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

func canonical(label string) string {
	return norm.NFC.String(label)
}
