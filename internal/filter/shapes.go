package filter

import (
	"strings"

	"git.home.luguber.info/inful/figref/internal/ast"
)

// figureShape is what a figure paragraph yields once recognized.
type figureShape struct {
	Filename string
	Caption  string
	// Label is the annotation text without braces, e.g. "#fig:a".
	Label string
	// ID is Label without its leading sigil, e.g. "fig:a".
	ID string
}

// parseFigure recognizes a paragraph holding exactly an Image followed by a
// brace-delimited annotation Str. Anything else is ordinary content.
func parseFigure(payload ast.Node) (figureShape, bool) {
	inlines, ok := payload.(ast.Sequence)
	if !ok || len(inlines) != 2 {
		return figureShape{}, false
	}
	image, ok := inlines[0].(*ast.Typed)
	if !ok || image.Kind != "Image" {
		return figureShape{}, false
	}
	annotation, ok := inlines[1].(*ast.Typed)
	if !ok || annotation.Kind != "Str" {
		return figureShape{}, false
	}
	text, ok := ast.TextOf(annotation)
	if !ok {
		return figureShape{}, false
	}
	label, ok := parseAnnotation(text)
	if !ok {
		return figureShape{}, false
	}
	id, ok := stripSigil(label)
	if !ok {
		return figureShape{}, false
	}
	caption, filename, ok := parseTarget(image.Content)
	if !ok {
		return figureShape{}, false
	}
	return figureShape{
		Filename: filename,
		Caption:  ast.Stringify(caption),
		Label:    label,
		ID:       id,
	}, true
}

// parseAnnotation removes the outer braces of "{...}". The text must start
// with '{', end with '}' and hold a non-blank label in between.
func parseAnnotation(text string) (string, bool) {
	if len(text) < 2 || text[0] != '{' || text[len(text)-1] != '}' {
		return "", false
	}
	label := strings.TrimSpace(text[1 : len(text)-1])
	if label == "" || strings.ContainsAny(label, "{}") {
		return "", false
	}
	return label, true
}

// stripSigil removes one leading '#' from a label. Labels written without a
// sigil are accepted as they are. The remaining identifier must not be empty.
func stripSigil(label string) (string, bool) {
	id := strings.TrimPrefix(label, "#")
	if id == "" {
		return "", false
	}
	return id, true
}

// parseTarget destructures the payload shared by Image and Link:
// [attr, inlines, [url, title]] (pandoc >= 1.16) or [inlines, [url, title]].
func parseTarget(payload ast.Node) (inlines ast.Node, url string, ok bool) {
	parts, ok := payload.(ast.Sequence)
	if !ok {
		return nil, "", false
	}
	var target ast.Node
	switch len(parts) {
	case 3:
		inlines, target = parts[1], parts[2]
	case 2:
		inlines, target = parts[0], parts[1]
	default:
		return nil, "", false
	}
	if _, ok := inlines.(ast.Sequence); !ok {
		return nil, "", false
	}
	pair, ok := target.(ast.Sequence)
	if !ok || len(pair) != 2 {
		return nil, "", false
	}
	s, ok := pair[0].(ast.Scalar)
	if !ok {
		return nil, "", false
	}
	url, ok = s.Text()
	if !ok {
		return nil, "", false
	}
	return inlines, url, true
}

// referenceShape is what a figure reference link yields once recognized.
type referenceShape struct {
	// Target is the link target as written, e.g. "#fig:a".
	Target string
	// ID is Target without its leading '#'.
	ID string
}

// parseReference recognizes a Link payload whose target starts with prefix.
func parseReference(payload ast.Node, prefix string) (referenceShape, bool) {
	_, url, ok := parseTarget(payload)
	if !ok || !strings.HasPrefix(url, prefix) {
		return referenceShape{}, false
	}
	id, ok := stripSigil(url)
	if !ok {
		return referenceShape{}, false
	}
	return referenceShape{Target: url, ID: id}, true
}
