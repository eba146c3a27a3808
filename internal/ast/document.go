package ast

import (
	"fmt"
	"io"
)

// Layout identifies which top-level shape a pandoc document was read in.
type Layout int

const (
	// LayoutModern is {"pandoc-api-version": [...], "meta": {...}, "blocks": [...]} (pandoc >= 1.18).
	LayoutModern Layout = iota
	// LayoutLegacy is [{"unMeta": {...}}, [...]] (pandoc < 1.18).
	LayoutLegacy
)

func (l Layout) String() string {
	switch l {
	case LayoutModern:
		return "modern"
	case LayoutLegacy:
		return "legacy"
	default:
		return "unknown"
	}
}

// Document is a pandoc document split into its opaque parts and its block list.
// Only Blocks is ever handed to filter passes.
type Document struct {
	Layout Layout

	// APIVersion is kept verbatim; nil for legacy documents.
	APIVersion Node

	// Meta is the document metadata, passed through untouched.
	Meta Node

	Blocks Sequence

	// extra holds unknown top-level object keys so they survive a round trip.
	extra Mapping
	// order is the top-level key order as read.
	order []string
}

// ReadDocument decodes a pandoc JSON document.
func ReadDocument(r io.Reader) (*Document, error) {
	root, err := Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode pandoc json: %w", err)
	}
	return FromNode(root)
}

// FromNode splits a decoded tree into a Document.
func FromNode(root Node) (*Document, error) {
	switch v := root.(type) {
	case Mapping:
		return fromModern(v)
	case Sequence:
		return fromLegacy(v)
	case Scalar, *Typed:
		return nil, fmt.Errorf("document root must be an object or array, got %T", root)
	default:
		return nil, fmt.Errorf("document root must be an object or array, got %T", root)
	}
}

func fromModern(m Mapping) (*Document, error) {
	doc := &Document{Layout: LayoutModern}
	var hasBlocks bool
	for _, p := range m {
		doc.order = append(doc.order, p.Key)
		switch p.Key {
		case "pandoc-api-version":
			doc.APIVersion = p.Value
		case "meta":
			doc.Meta = p.Value
		case "blocks":
			blocks, ok := p.Value.(Sequence)
			if !ok {
				return nil, fmt.Errorf("blocks must be an array, got %T", p.Value)
			}
			doc.Blocks = blocks
			hasBlocks = true
		default:
			doc.extra = append(doc.extra, p)
		}
	}
	if !hasBlocks {
		return nil, fmt.Errorf("document has no blocks")
	}
	return doc, nil
}

func fromLegacy(s Sequence) (*Document, error) {
	if len(s) != 2 {
		return nil, fmt.Errorf("legacy document must have 2 elements, got %d", len(s))
	}
	blocks, ok := s[1].(Sequence)
	if !ok {
		return nil, fmt.Errorf("legacy blocks must be an array, got %T", s[1])
	}
	return &Document{Layout: LayoutLegacy, Meta: s[0], Blocks: blocks}, nil
}

// WithBlocks returns a shallow copy of d holding the given blocks.
func (d *Document) WithBlocks(blocks Sequence) *Document {
	cp := *d
	cp.Blocks = blocks
	return &cp
}

// Node reassembles the document into a tree in its original layout.
func (d *Document) Node() Node {
	blocks := d.Blocks
	if blocks == nil {
		blocks = Sequence{}
	}
	if d.Layout == LayoutLegacy {
		meta := d.Meta
		if meta == nil {
			meta = Mapping{{Key: "unMeta", Value: Mapping{}}}
		}
		return Sequence{meta, blocks}
	}

	meta := d.Meta
	if meta == nil {
		meta = Mapping{}
	}
	fields := map[string]Node{"meta": meta, "blocks": blocks}
	if d.APIVersion != nil {
		fields["pandoc-api-version"] = d.APIVersion
	}

	m := make(Mapping, 0, len(fields)+len(d.extra))
	extra := d.extra
	for _, key := range d.order {
		if v, ok := fields[key]; ok {
			m = append(m, Pair{Key: key, Value: v})
			delete(fields, key)
			continue
		}
		if len(extra) > 0 && extra[0].Key == key {
			m = append(m, extra[0])
			extra = extra[1:]
		}
	}
	// Keys the input lacked go in pandoc's own order.
	for _, key := range []string{"pandoc-api-version", "meta", "blocks"} {
		if v, ok := fields[key]; ok {
			m = append(m, Pair{Key: key, Value: v})
		}
	}
	return append(m, extra...)
}

// WriteDocument encodes d as pandoc JSON.
func WriteDocument(w io.Writer, d *Document) error {
	return Encode(w, d.Node())
}
