// Package metrics provides observability hooks for extraction and rendering passes.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no nil checks are needed at call sites:
//
//	x := extract.New(spec, extract.WithRecorder(metrics.NewPrometheusRecorder(reg)))
//
// The Prometheus implementation registers on a caller-supplied registry and
// HTTPHandler exposes that registry for scraping.
package metrics
