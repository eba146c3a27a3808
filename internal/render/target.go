package render

import "git.home.luguber.info/inful/figref/internal/foundation/normalize"

// Target is the output dialect a filter run produces markup for.
type Target int

const (
	// Other covers every format without figure support; passes leave the tree untouched.
	Other Target = iota
	HTML
	Latex
)

var targets = normalize.New(map[string]Target{
	"html":  HTML,
	"html5": HTML,
	"latex": Latex,
}, Other)

// ParseTarget maps the pandoc output format name to a Target.
// "html" and "html5" select HTML, "latex" selects Latex, anything else is Other.
func ParseTarget(format string) Target {
	return targets.Normalize(format)
}

// RawFormat is the pandoc raw-markup format name for t, empty for Other.
func (t Target) RawFormat() string {
	switch t {
	case HTML:
		return "html"
	case Latex:
		return "latex"
	case Other:
		return ""
	default:
		return ""
	}
}

func (t Target) String() string {
	switch t {
	case HTML:
		return "html"
	case Latex:
		return "latex"
	case Other:
		return "other"
	default:
		return "unknown"
	}
}
