package filter

import (
	"time"

	"git.home.luguber.info/inful/figref/internal/figures"
	"git.home.luguber.info/inful/figref/internal/render"
)

// runStats are the counters one pass accumulates during a traversal.
type runStats struct {
	figures    int
	duplicates int
	resolved   int
	dangling   int
	autoref    int
}

func (s *runStats) add(o runStats) {
	s.figures += o.figures
	s.duplicates += o.duplicates
	s.resolved += o.resolved
	s.dangling += o.dangling
	s.autoref += o.autoref
}

// PassReport describes one executed pass.
type PassReport struct {
	Name     string
	Stage    Stage
	Duration time.Duration
}

// Report summarizes a pipeline run.
type Report struct {
	RunID  string
	Target render.Target

	// Figures lists the registered labels in numbering order. It is empty for
	// targets that do not number figures themselves.
	Figures []figures.Entry

	// FiguresRewritten counts figure paragraphs replaced by raw markup.
	FiguresRewritten int
	// DuplicateLabels counts figures whose label was already registered.
	DuplicateLabels int

	Resolved int
	Dangling int
	Autoref  int

	Passes   []PassReport
	Duration time.Duration
}

// References returns the number of figure references rewritten or left dangling.
func (r *Report) References() int {
	return r.Resolved + r.Dangling + r.Autoref
}

func (r *Report) apply(s runStats) {
	r.FiguresRewritten = s.figures
	r.DuplicateLabels = s.duplicates
	r.Resolved = s.resolved
	r.Dangling = s.dangling
	r.Autoref = s.autoref
}
