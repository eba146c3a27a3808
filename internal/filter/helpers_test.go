package filter

import (
	"testing"

	"git.home.luguber.info/inful/figref/internal/ast"
	"git.home.luguber.info/inful/figref/internal/render"
	"github.com/stretchr/testify/require"
)

func emptyAttr() ast.Sequence {
	return ast.Sequence{ast.String(""), ast.Sequence{}, ast.Sequence{}}
}

func words(text ...string) ast.Sequence {
	out := ast.Sequence{}
	for i, w := range text {
		if i > 0 {
			out = append(out, ast.Space())
		}
		out = append(out, ast.Str(w))
	}
	return out
}

func image(file string, caption ...string) *ast.Typed {
	return ast.NewTyped("Image", ast.Sequence{
		emptyAttr(),
		words(caption...),
		ast.Sequence{ast.String(file), ast.String("")},
	})
}

func legacyImage(file string, caption ...string) *ast.Typed {
	return ast.NewTyped("Image", ast.Sequence{
		words(caption...),
		ast.Sequence{ast.String(file), ast.String("fig:")},
	})
}

func link(target string, text ...string) *ast.Typed {
	return ast.NewTyped("Link", ast.Sequence{
		emptyAttr(),
		words(text...),
		ast.Sequence{ast.String(target), ast.String("")},
	})
}

func legacyLink(target string, text ...string) *ast.Typed {
	return ast.NewTyped("Link", ast.Sequence{
		words(text...),
		ast.Sequence{ast.String(target), ast.String("")},
	})
}

func figure(label, file string, caption ...string) *ast.Typed {
	return ast.Para(image(file, caption...), ast.Str(label))
}

func htmlFigure(t *testing.T, id, file, caption string) *ast.Typed {
	t.Helper()
	markup, err := render.HTMLFigure(render.Figure{ID: id, Filename: file, Caption: caption})
	require.NoError(t, err)
	return ast.Para(ast.RawInline("html", markup))
}

func latexFigure(t *testing.T, id, file, caption string) *ast.Typed {
	t.Helper()
	markup, err := render.LatexFigure(render.Figure{ID: id, Filename: file, Caption: caption})
	require.NoError(t, err)
	return ast.Para(ast.RawInline("latex", markup))
}

func htmlRef(t *testing.T, target, text string) *ast.Typed {
	t.Helper()
	markup, err := render.HTMLLink(target, text)
	require.NoError(t, err)
	return ast.RawInline("html", markup)
}

func latexRef(t *testing.T, label string) *ast.Typed {
	t.Helper()
	markup, err := render.LatexRef(label)
	require.NoError(t, err)
	return ast.RawInline("latex", markup)
}

func modernDoc(blocks ...ast.Node) *ast.Document {
	return &ast.Document{
		Layout:     ast.LayoutModern,
		APIVersion: ast.Sequence{ast.Number("1"), ast.Number("23")},
		Meta:       ast.Mapping{},
		Blocks:     ast.Sequence(blocks),
	}
}

// assertSameTree compares trees by their JSON encoding.
func assertSameTree(t *testing.T, want, got ast.Node) {
	t.Helper()
	w, err := ast.Marshal(want)
	require.NoError(t, err)
	g, err := ast.Marshal(got)
	require.NoError(t, err)
	require.JSONEq(t, string(w), string(g))
}
