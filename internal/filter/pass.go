package filter

import (
	"fmt"
	"slices"

	"git.home.luguber.info/inful/figref/internal/ast"
	"git.home.luguber.info/inful/figref/internal/render"
	"git.home.luguber.info/inful/figref/internal/walk"
)

// Stage is a phase of a filter run. Stages execute in the order defined by StageOrder.
type Stage string

const (
	// StageNumbering assigns numbers to figures and rewrites figure paragraphs.
	StageNumbering Stage = "numbering"

	// StageResolving rewrites references using the numbers assigned earlier.
	StageResolving Stage = "resolving"
)

// StageOrder defines the execution order of stages. Every numbering pass
// finishes before any resolving pass reads the registry.
var StageOrder = []Stage{
	StageNumbering,
	StageResolving,
}

// Pass is one full traversal of the document tree.
type Pass interface {
	// Name returns the unique identifier for this pass (lowercase snake_case).
	Name() string

	// Stage returns the stage the pass belongs to.
	Stage() Stage

	// Transform is applied to every typed element, bottom-up.
	Transform(kind string, payload ast.Node, target render.Target) walk.Outcome
}

// Pass names, as used in logs and metrics.
const (
	PassNumberFigures     = "number_figures"
	PassResolveReferences = "resolve_references"
)

func stageIndex(s Stage) int {
	return slices.Index(StageOrder, s)
}

// orderPasses returns passes sorted by stage, keeping the given order within a stage.
func orderPasses(passes []Pass) ([]Pass, error) {
	for _, p := range passes {
		if stageIndex(p.Stage()) < 0 {
			return nil, fmt.Errorf("pass %s has unknown stage %q", p.Name(), p.Stage())
		}
	}
	out := slices.Clone(passes)
	slices.SortStableFunc(out, func(a, b Pass) int {
		return stageIndex(a.Stage()) - stageIndex(b.Stage())
	})
	return out, nil
}
