// Package filter numbers figures and resolves figure references in a pandoc
// document.
//
// A run executes two passes over the document blocks. The numbering pass
// turns every figure paragraph (an image followed by a "{#label}" annotation)
// into raw figure markup and, for HTML, assigns sequential numbers in
// document order. The resolving pass then rewrites links whose target starts
// with the reference prefix ("#fig" by default) into numbered anchors or
// LaTeX \autoref commands. Document metadata is passed through untouched.
package filter

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/figref/internal/ast"
	"git.home.luguber.info/inful/figref/internal/config"
	"git.home.luguber.info/inful/figref/internal/figures"
	"git.home.luguber.info/inful/figref/internal/foundation/errors"
	"git.home.luguber.info/inful/figref/internal/logfields"
	"git.home.luguber.info/inful/figref/internal/metrics"
	"git.home.luguber.info/inful/figref/internal/render"
	"git.home.luguber.info/inful/figref/internal/walk"
)

// Options controls how figures and references are recognized and labeled.
type Options struct {
	// ReferencePrefix marks a link target as a figure reference.
	ReferencePrefix string
	// CaptionLabel is the word put before figure numbers.
	CaptionLabel string
}

// OptionsFromConfig extracts pipeline options from cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		ReferencePrefix: cfg.ReferencePrefix,
		CaptionLabel:    cfg.CaptionLabel,
	}
}

// Pipeline runs the numbering and resolving passes over documents. A Pipeline
// holds no per-document state and may be reused; each Run gets its own registry.
type Pipeline struct {
	opts     Options
	logger   *slog.Logger
	recorder metrics.Recorder
}

// NewPipeline creates a pipeline. Empty options fall back to the configuration defaults.
func NewPipeline(opts Options) *Pipeline {
	if opts.ReferencePrefix == "" {
		opts.ReferencePrefix = config.DefaultReferencePrefix
	}
	if opts.CaptionLabel == "" {
		opts.CaptionLabel = config.DefaultCaptionLabel
	}
	return &Pipeline{
		opts:     opts,
		logger:   slog.Default(),
		recorder: metrics.NoopRecorder{},
	}
}

// WithLogger sets the logger used for run and pass messages.
func (p *Pipeline) WithLogger(logger *slog.Logger) *Pipeline {
	if logger != nil {
		p.logger = logger
	}
	return p
}

// WithRecorder sets the metrics recorder.
func (p *Pipeline) WithRecorder(r metrics.Recorder) *Pipeline {
	if r != nil {
		p.recorder = r
	}
	return p
}

type counter interface {
	counts() runStats
}

// Run filters doc for target and returns the rewritten document. The input
// document is not modified. Errors are only returned when ctx is done
// between passes or a pass breaks the block list invariant.
func (p *Pipeline) Run(ctx context.Context, doc *ast.Document, target render.Target) (*ast.Document, *Report, error) {
	start := time.Now()
	runID := uuid.NewString()
	logger := p.logger.With(logfields.RunID(runID), logfields.Target(target.String()))
	report := &Report{RunID: runID, Target: target}

	registry := figures.NewRegistry()
	passes, err := orderPasses([]Pass{
		NewFigureNumbering(registry, p.opts.CaptionLabel, logger),
		NewLinkResolution(registry, p.opts.ReferencePrefix, p.opts.CaptionLabel, logger),
	})
	if err != nil {
		p.recorder.IncRunOutcome(metrics.OutcomeFailed)
		return nil, report, errors.WrapError(err, errors.CategoryInternal, "invalid pass list").Build()
	}

	blocks := doc.Blocks
	var totals runStats
	for _, pass := range passes {
		if err := ctx.Err(); err != nil {
			p.recorder.IncRunOutcome(metrics.OutcomeFailed)
			return nil, report, errors.WrapError(err, errors.CategoryFilter, "filter run cancelled").
				WithContext("pass", pass.Name()).
				Build()
		}

		passStart := time.Now()
		out, ok := walk.Walk(blocks, pass.Transform, target).(ast.Sequence)
		if !ok {
			p.recorder.IncRunOutcome(metrics.OutcomeFailed)
			return nil, report, errors.InternalError("pass did not return a block list").
				WithContext("pass", pass.Name()).
				Build()
		}
		blocks = out
		d := time.Since(passStart)

		report.Passes = append(report.Passes, PassReport{Name: pass.Name(), Stage: pass.Stage(), Duration: d})
		p.recorder.ObservePassDuration(pass.Name(), d)
		if c, ok := pass.(counter); ok {
			totals.add(c.counts())
		}
		logger.Debug("Pass complete", logfields.Pass(pass.Name()), logfields.Duration(d))
	}

	report.apply(totals)
	report.Figures = registry.Entries()
	report.Duration = time.Since(start)

	p.recorder.IncFigures(target.String(), report.FiguresRewritten)
	p.recorder.IncReferences(target.String(), metrics.ReferenceResolved, report.Resolved)
	p.recorder.IncReferences(target.String(), metrics.ReferenceDangling, report.Dangling)
	p.recorder.IncReferences(target.String(), metrics.ReferenceAutoref, report.Autoref)
	p.recorder.ObserveRunDuration(report.Duration)
	p.recorder.IncRunOutcome(metrics.OutcomeSuccess)

	logger.Info("Filter run complete",
		logfields.Figures(report.FiguresRewritten),
		logfields.References(report.References()),
		logfields.Dangling(report.Dangling),
		logfields.Duration(report.Duration))

	return doc.WithBlocks(blocks), report, nil
}
