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

// LinkResolution rewrites links whose target starts with the reference
// prefix. It only reads the registry.
type LinkResolution struct {
	lookup       figures.Lookup
	prefix       string
	captionLabel string
	stats        *runStats
	logger       *slog.Logger
}

// NewLinkResolution creates a resolving pass reading numbers from lookup.
func NewLinkResolution(lookup figures.Lookup, prefix, captionLabel string, logger *slog.Logger) *LinkResolution {
	if logger == nil {
		logger = slog.Default()
	}
	return &LinkResolution{
		lookup:       lookup,
		prefix:       prefix,
		captionLabel: captionLabel,
		stats:        &runStats{},
		logger:       logger,
	}
}

func (p *LinkResolution) Name() string { return PassResolveReferences }
func (p *LinkResolution) Stage() Stage { return StageResolving }

// Transform implements Pass.
func (p *LinkResolution) Transform(kind string, payload ast.Node, target render.Target) walk.Outcome {
	if kind != "Link" || target == render.Other {
		return walk.Keep()
	}
	ref, ok := parseReference(payload, p.prefix)
	if !ok {
		return walk.Keep()
	}

	switch target {
	case render.HTML:
		return p.html(ref)
	case render.Latex:
		markup, err := render.LatexRef(ref.ID)
		if err != nil {
			p.logger.Warn("Leaving reference unchanged", logfields.Label(ref.ID), logfields.Error(err))
			return walk.Keep()
		}
		p.stats.autoref++
		return walk.Replace(ast.RawInline(target.RawFormat(), markup))
	case render.Other:
		return walk.Keep()
	default:
		return walk.Keep()
	}
}

func (p *LinkResolution) html(ref referenceShape) walk.Outcome {
	n, ok := p.lookup.Lookup(ref.ID)
	if !ok {
		p.stats.dangling++
		p.logger.Debug("Reference to unknown figure", logfields.Label(ref.ID))
		return walk.Keep()
	}
	markup, err := render.HTMLLink(ref.Target, fmt.Sprintf("%s %d", p.captionLabel, n))
	if err != nil {
		p.logger.Warn("Leaving reference unchanged", logfields.Label(ref.ID), logfields.Error(err))
		return walk.Keep()
	}
	p.stats.resolved++
	return walk.Replace(ast.RawInline(render.HTML.RawFormat(), markup))
}

func (p *LinkResolution) counts() runStats { return *p.stats }
