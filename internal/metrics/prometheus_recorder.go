package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg          *prom.Registry
	passDuration *prom.HistogramVec
	runDuration  prom.Histogram
	figures      *prom.CounterVec
	references   *prom.CounterVec
	runOutcome   *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers the filter metrics on reg
// (a fresh registry when reg is nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{reg: reg}
	pr.passDuration = prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: "figref",
		Name:      "pass_duration_seconds",
		Help:      "Duration of individual filter passes",
		Buckets:   prom.DefBuckets,
	}, []string{"pass"})
	pr.runDuration = prom.NewHistogram(prom.HistogramOpts{
		Namespace: "figref",
		Name:      "run_duration_seconds",
		Help:      "Total pipeline duration",
		Buckets:   prom.DefBuckets,
	})
	pr.figures = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "figref",
		Name:      "figures_total",
		Help:      "Figures rewritten, by render target",
	}, []string{"target"})
	pr.references = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "figref",
		Name:      "references_total",
		Help:      "Figure references seen, by render target and result",
	}, []string{"target", "result"})
	pr.runOutcome = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "figref",
		Name:      "run_outcomes_total",
		Help:      "Filter runs by final status",
	}, []string{"outcome"})
	reg.MustRegister(pr.passDuration, pr.runDuration, pr.figures, pr.references, pr.runOutcome)
	return pr
}

// Registry returns the registry the collectors are registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry {
	return p.reg
}

func (p *PrometheusRecorder) ObservePassDuration(pass string, d time.Duration) {
	if p == nil || p.passDuration == nil {
		return
	}
	p.passDuration.WithLabelValues(pass).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil || p.runDuration == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncFigures(target string, n int) {
	if p == nil || p.figures == nil || n <= 0 {
		return
	}
	p.figures.WithLabelValues(target).Add(float64(n))
}

func (p *PrometheusRecorder) IncReferences(target string, result ReferenceResult, n int) {
	if p == nil || p.references == nil || n <= 0 {
		return
	}
	p.references.WithLabelValues(target, string(result)).Add(float64(n))
}

func (p *PrometheusRecorder) IncRunOutcome(outcome RunOutcome) {
	if p == nil || p.runOutcome == nil {
		return
	}
	p.runOutcome.WithLabelValues(string(outcome)).Inc()
}

// WriteTextfile writes every collected metric to path in the text exposition format.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	return prom.WriteToTextfile(path, p.reg)
}
