// Package metrics provides observability hooks for filter runs.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so call sites never check for nil:
//
//	p := filter.NewPipeline(filter.Options{}).WithRecorder(metrics.NoopRecorder{})
//
// PrometheusRecorder backs the Recorder with client_golang collectors. A
// filter is a short-lived process invoked by pandoc, so the collected values
// are written once per run in the text exposition format (WriteTextfile)
// for pickup by a node_exporter textfile collector, rather than served.
package metrics
