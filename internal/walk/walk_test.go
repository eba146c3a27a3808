package walk

import (
	"testing"

	"git.home.luguber.info/inful/figref/internal/ast"
	"git.home.luguber.info/inful/figref/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keepAll(string, ast.Node, render.Target) Outcome { return Keep() }

func TestWalk_KeepIsIdentity(t *testing.T) {
	tree := ast.Sequence{
		ast.Para(ast.Str("a"), ast.Space(), ast.NewTyped("Emph", ast.Sequence{ast.Str("b")})),
		ast.Mapping{{Key: "k", Value: ast.Number("1")}},
	}
	assert.Equal(t, tree, Walk(tree, keepAll, render.HTML))
}

func TestWalk_BottomUpOrder(t *testing.T) {
	tree := ast.Sequence{
		ast.Para(ast.NewTyped("Emph", ast.Sequence{ast.Str("x")}), ast.Str("y")),
	}

	var visited []string
	Walk(tree, func(kind string, _ ast.Node, _ render.Target) Outcome {
		visited = append(visited, kind)
		return Keep()
	}, render.Other)

	assert.Equal(t, []string{"Str", "Emph", "Str", "Para"}, visited)
}

func TestWalk_ParentSeesRewrittenChildren(t *testing.T) {
	tree := ast.Sequence{ast.Para(ast.Str("old"))}

	var seen ast.Node
	Walk(tree, func(kind string, payload ast.Node, _ render.Target) Outcome {
		switch kind {
		case "Str":
			return Replace(ast.Str("new"))
		case "Para":
			seen = payload
		}
		return Keep()
	}, render.Other)

	assert.Equal(t, ast.Sequence{ast.Str("new")}, seen)
}

func TestWalk_Splice(t *testing.T) {
	tree := ast.Sequence{ast.Str("a"), ast.Str("dup"), ast.Str("drop"), ast.Str("b")}

	out := Walk(tree, func(kind string, payload ast.Node, _ render.Target) Outcome {
		text, _ := payload.(ast.Scalar).Text()
		switch text {
		case "dup":
			return ReplaceMany(ast.Str("d1"), ast.Str("d2"))
		case "drop":
			return ReplaceMany()
		case "b":
			return ReplaceMany(ast.Str("B"))
		}
		return Keep()
	}, render.Other)

	assert.Equal(t, ast.Sequence{ast.Str("a"), ast.Str("d1"), ast.Str("d2"), ast.Str("B")}, out)
}

func TestWalk_ReplaceManyOutsideSequence(t *testing.T) {
	tests := []struct {
		name  string
		nodes []ast.Node
		want  ast.Node
	}{
		{"single node replaces", []ast.Node{ast.Str("new")}, ast.Str("new")},
		{"zero nodes keeps", nil, ast.Str("old")},
		{"many nodes keeps", []ast.Node{ast.Str("1"), ast.Str("2")}, ast.Str("old")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := ast.Mapping{{Key: "v", Value: ast.Str("old")}}
			out := Walk(tree, func(string, ast.Node, render.Target) Outcome {
				return ReplaceMany(tt.nodes...)
			}, render.Other)

			m, ok := out.(ast.Mapping)
			require.True(t, ok)
			assert.Equal(t, tt.want, m[0].Value)
		})
	}
}

func TestWalk_RootTyped(t *testing.T) {
	out := Walk(ast.Str("x"), func(string, ast.Node, render.Target) Outcome {
		return Replace(ast.Space())
	}, render.Other)
	assert.Equal(t, ast.Space(), out)
}

func TestWalk_DoesNotMutateInput(t *testing.T) {
	tree := ast.Sequence{ast.Para(ast.Str("a"))}
	before, err := ast.Marshal(tree)
	require.NoError(t, err)

	Walk(tree, func(kind string, _ ast.Node, _ render.Target) Outcome {
		if kind == "Str" {
			return Replace(ast.Str("b"))
		}
		return Keep()
	}, render.HTML)

	after, err := ast.Marshal(tree)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestWalk_PassesTarget(t *testing.T) {
	var got render.Target
	Walk(ast.Sequence{ast.Space()}, func(_ string, _ ast.Node, target render.Target) Outcome {
		got = target
		return Keep()
	}, render.Latex)
	assert.Equal(t, render.Latex, got)
}
