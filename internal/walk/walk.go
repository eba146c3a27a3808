// Package walk applies a transformation to every typed element of a tree.
//
// Traversal is bottom-up: all children of a node are rewritten before the
// transformation sees the node itself, so a transform always observes
// already-rewritten nested content.
package walk

import (
	"git.home.luguber.info/inful/figref/internal/ast"
	"git.home.luguber.info/inful/figref/internal/render"
)

type op int

const (
	opKeep op = iota
	opReplace
	opReplaceMany
)

// Outcome is what a transform wants done with the element it was given.
type Outcome struct {
	op    op
	nodes []ast.Node
}

// Keep leaves the element unchanged.
func Keep() Outcome { return Outcome{op: opKeep} }

// Replace substitutes n for the element.
func Replace(n ast.Node) Outcome { return Outcome{op: opReplace, nodes: []ast.Node{n}} }

// ReplaceMany splices nodes into the parent sequence in place of the element.
// Zero nodes deletes the element.
func ReplaceMany(nodes ...ast.Node) Outcome {
	return Outcome{op: opReplaceMany, nodes: nodes}
}

// Func transforms one typed element. kind is the element tag and payload its
// content (nil for payload-less elements).
type Func func(kind string, payload ast.Node, target render.Target) Outcome

// Walk rewrites n bottom-up with fn and returns the new tree. The input tree
// is never modified.
//
// ReplaceMany only splices when the element sits in a Sequence. Anywhere else
// a single replacement node acts like Replace and any other count keeps the
// element.
func Walk(n ast.Node, fn Func, target render.Target) ast.Node {
	out := walkChildren(n, fn, target)
	t, ok := out.(*ast.Typed)
	if !ok {
		return out
	}
	res := fn(t.Kind, t.Content, target)
	switch res.op {
	case opReplace:
		return res.nodes[0]
	case opReplaceMany:
		if len(res.nodes) == 1 {
			return res.nodes[0]
		}
		return out
	case opKeep:
		return out
	default:
		return out
	}
}

// walkChildren rebuilds n with every child walked, without applying fn to n.
func walkChildren(n ast.Node, fn Func, target render.Target) ast.Node {
	switch v := n.(type) {
	case nil:
		return nil
	case ast.Scalar:
		return v
	case ast.Sequence:
		return walkSequence(v, fn, target)
	case ast.Mapping:
		m := make(ast.Mapping, len(v))
		for i, p := range v {
			m[i] = ast.Pair{Key: p.Key, Value: Walk(p.Value, fn, target)}
		}
		return m
	case *ast.Typed:
		return &ast.Typed{Kind: v.Kind, Content: Walk(v.Content, fn, target)}
	default:
		return n
	}
}

func walkSequence(seq ast.Sequence, fn Func, target render.Target) ast.Sequence {
	out := make(ast.Sequence, 0, len(seq))
	for _, item := range seq {
		child := walkChildren(item, fn, target)
		t, ok := child.(*ast.Typed)
		if !ok {
			out = append(out, child)
			continue
		}
		res := fn(t.Kind, t.Content, target)
		switch res.op {
		case opReplace, opReplaceMany:
			out = append(out, res.nodes...)
		case opKeep:
			out = append(out, child)
		default:
			out = append(out, child)
		}
	}
	return out
}
