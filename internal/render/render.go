// Package render holds the raw-markup templates emitted for figures and
// figure references. Each function is a pure formatting step: it never looks
// at the document tree or the registry.
package render

import (
	"bytes"
	"fmt"
	"text/template"

	"golang.org/x/net/html"
)

const (
	htmlFigureTemplate = `
<figure id="{{ attr .ID }}">
<img src="{{ attr .Filename }}" alt="{{ attr .Caption }}" />
<figcaption>{{ text .Caption }}</figcaption>
</figure>`

	latexFigureTemplate = `
\begin{figure}[htbp]
\label{ {{- .ID -}} }
\centering
\includegraphics{ {{- .Filename -}} }
\caption{ {{- .Caption -}} }
\end{figure}`

	htmlLinkTemplate = `<a href="{{ attr .Target }}">{{ text .Text }}</a>`

	latexRefTemplate = `\autoref{ {{- .Label -}} }`
)

var funcs = template.FuncMap{
	"attr": html.EscapeString,
	"text": html.EscapeString,
}

var (
	htmlFigure  = mustParse("html_figure", htmlFigureTemplate)
	latexFigure = mustParse("latex_figure", latexFigureTemplate)
	htmlLink    = mustParse("html_link", htmlLinkTemplate)
	latexRef    = mustParse("latex_ref", latexRefTemplate)
)

func mustParse(name, body string) *template.Template {
	return template.Must(template.New(name).Funcs(funcs).Option("missingkey=error").Parse(body))
}

// Figure is the data a figure template needs.
type Figure struct {
	// ID is the label without its leading sigil.
	ID       string
	Filename string
	Caption  string
}

// HTMLFigure renders a <figure> block. The caption doubles as the image alt text.
func HTMLFigure(f Figure) (string, error) {
	return execute(htmlFigure, f)
}

// LatexFigure renders a figure environment. LaTeX numbers it at typeset time.
func LatexFigure(f Figure) (string, error) {
	return execute(latexFigure, f)
}

// HTMLLink renders an anchor pointing at target.
func HTMLLink(target, text string) (string, error) {
	return execute(htmlLink, struct{ Target, Text string }{target, text})
}

// LatexRef renders an \autoref to label.
func LatexRef(label string) (string, error) {
	return execute(latexRef, struct{ Label string }{label})
}

func execute(tpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", tpl.Name(), err)
	}
	return buf.String(), nil
}
