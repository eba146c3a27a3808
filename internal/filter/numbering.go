package filter

import (
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/figref/internal/ast"
	"git.home.luguber.info/inful/figref/internal/figures"
	"git.home.luguber.info/inful/figref/internal/logfields"
	"git.home.luguber.info/inful/figref/internal/render"
	"git.home.luguber.info/inful/figref/internal/walk"
)

// FigureNumbering rewrites figure paragraphs into raw figure markup.
//
// For HTML each figure is registered and its caption is prefixed with the
// assigned number. For LaTeX the figure environment carries the label and
// numbering is left to the typesetter, so the registry is not touched.
type FigureNumbering struct {
	registry     *figures.Registry
	captionLabel string
	stats        *runStats
	logger       *slog.Logger
}

// NewFigureNumbering creates a numbering pass writing into registry.
func NewFigureNumbering(registry *figures.Registry, captionLabel string, logger *slog.Logger) *FigureNumbering {
	if logger == nil {
		logger = slog.Default()
	}
	return &FigureNumbering{
		registry:     registry,
		captionLabel: captionLabel,
		stats:        &runStats{},
		logger:       logger,
	}
}

func (p *FigureNumbering) Name() string { return PassNumberFigures }
func (p *FigureNumbering) Stage() Stage { return StageNumbering }

// Transform implements Pass.
func (p *FigureNumbering) Transform(kind string, payload ast.Node, target render.Target) walk.Outcome {
	if kind != "Para" || target == render.Other {
		return walk.Keep()
	}
	fig, ok := parseFigure(payload)
	if !ok {
		return walk.Keep()
	}

	var (
		markup string
		err    error
	)
	switch target {
	case render.HTML:
		markup, err = p.html(fig)
	case render.Latex:
		markup, err = render.LatexFigure(render.Figure{ID: fig.ID, Filename: fig.Filename, Caption: fig.Caption})
	case render.Other:
		return walk.Keep()
	default:
		return walk.Keep()
	}
	if err != nil {
		p.logger.Warn("Leaving figure unchanged",
			logfields.Label(fig.Label),
			logfields.Error(err))
		return walk.Keep()
	}

	p.stats.figures++
	return walk.Replace(ast.Para(ast.RawInline(target.RawFormat(), markup)))
}

func (p *FigureNumbering) html(fig figureShape) (string, error) {
	if p.registry.Contains(fig.ID) {
		p.stats.duplicates++
		p.logger.Debug("Figure label registered more than once", logfields.Label(fig.ID))
	}
	n := p.registry.Register(fig.ID)
	p.logger.Debug("Numbered figure", logfields.Label(fig.ID), logfields.Index(n))

	return render.HTMLFigure(render.Figure{
		ID:       fig.ID,
		Filename: fig.Filename,
		Caption:  fmt.Sprintf("%s %d: %s", p.captionLabel, n, fig.Caption),
	})
}

func (p *FigureNumbering) counts() runStats { return *p.stats }
