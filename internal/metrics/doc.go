// Package metrics provides observability hooks for site builds and the
// storefront server.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics cost nothing until a real implementation is
// injected:
//
//	recorder := metrics.NewPrometheusRecorder(registry)
//	runner := pipeline.NewRunner(cfg).WithRecorder(recorder)
//
// NoopRecorder keeps call sites free of nil checks; swapping in
// PrometheusRecorder activates collection without code changes.
package metrics
