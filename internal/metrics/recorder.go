package metrics

import "time"

// ReferenceResult enumerates how a figure reference was handled.
type ReferenceResult string

const (
	ReferenceResolved ReferenceResult = "resolved" // numbered from the registry
	ReferenceDangling ReferenceResult = "dangling" // label never registered, link kept
	ReferenceAutoref  ReferenceResult = "autoref"  // left for the typesetter to number
)

// RunOutcome enumerates final run states.
type RunOutcome string

const (
	OutcomeSuccess RunOutcome = "success"
	OutcomeFailed  RunOutcome = "failed"
)

// Recorder defines observability hooks for filter runs and passes.
type Recorder interface {
	ObservePassDuration(pass string, d time.Duration)
	ObserveRunDuration(d time.Duration)
	IncFigures(target string, n int)
	IncReferences(target string, result ReferenceResult, n int)
	IncRunOutcome(outcome RunOutcome)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObservePassDuration(string, time.Duration)  {}
func (NoopRecorder) ObserveRunDuration(time.Duration)           {}
func (NoopRecorder) IncFigures(string, int)                     {}
func (NoopRecorder) IncReferences(string, ReferenceResult, int) {}
func (NoopRecorder) IncRunOutcome(RunOutcome)                   {}
