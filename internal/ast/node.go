// Package ast models a pandoc JSON document tree as a closed set of node variants.
//
// Every JSON value maps to exactly one variant:
//   - Scalar: strings, numbers, booleans and null
//   - Sequence: arrays
//   - Mapping: objects, with key order preserved
//   - Typed: objects of the shape {"t": kind} or {"t": kind, "c": payload}
//
// Callers inspect nodes with a type switch over these four types; no other
// implementations of Node exist.
package ast

import "encoding/json"

// Node is a single value in the document tree.
type Node interface {
	node()
}

// Scalar is a leaf value. Value holds a string, json.Number, bool or nil.
type Scalar struct {
	Value any
}

// Sequence is an ordered list of nodes.
type Sequence []Node

// Pair is one key/value entry of a Mapping.
type Pair struct {
	Key   string
	Value Node
}

// Mapping is an object whose entries keep their input order.
type Mapping []Pair

// Typed is a pandoc element: a kind tag ("Para", "Image", "Link", ...) with an
// optional payload. Content is nil for payload-less elements such as Space.
type Typed struct {
	Kind    string
	Content Node
}

func (Scalar) node()   {}
func (Sequence) node() {}
func (Mapping) node()  {}
func (*Typed) node()   {}

// String builds a string scalar.
func String(s string) Scalar { return Scalar{Value: s} }

// Number builds a numeric scalar from its JSON literal.
func Number(lit string) Scalar { return Scalar{Value: json.Number(lit)} }

// Text returns the scalar's string value.
func (s Scalar) Text() (string, bool) {
	str, ok := s.Value.(string)
	return str, ok
}

// Get returns the value stored under key.
func (m Mapping) Get(key string) (Node, bool) {
	for _, p := range m {
		if p.Key == key {
			return p.Value, true
		}
	}
	return nil, false
}

// NewTyped builds a typed element.
func NewTyped(kind string, content Node) *Typed {
	return &Typed{Kind: kind, Content: content}
}

// Para builds a paragraph holding the given inlines.
func Para(inlines ...Node) *Typed {
	return NewTyped("Para", Sequence(inlines))
}

// Str builds a Str inline.
func Str(text string) *Typed {
	return NewTyped("Str", String(text))
}

// Space builds a Space inline.
func Space() *Typed {
	return NewTyped("Space", nil)
}

// RawInline builds a RawInline element carrying markup for a single output format.
func RawInline(format, text string) *Typed {
	return NewTyped("RawInline", Sequence{String(format), String(text)})
}

// TextOf returns the string payload of a Str-like element.
func TextOf(n Node) (string, bool) {
	t, ok := n.(*Typed)
	if !ok {
		return "", false
	}
	s, ok := t.Content.(Scalar)
	if !ok {
		return "", false
	}
	return s.Text()
}
