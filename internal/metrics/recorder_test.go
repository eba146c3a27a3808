package metrics

import (
	"testing"
	"time"
)

var (
	_ Recorder = NoopRecorder{}
	_ Recorder = (*PrometheusRecorder)(nil)
)

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObservePassDuration("resolve_references", time.Millisecond)
	r.ObserveRunDuration(time.Millisecond)
	r.IncFigures("html", 1)
	r.IncReferences("html", ReferenceResolved, 1)
	r.IncRunOutcome(OutcomeSuccess)
}
