// Package metrics provides observability hooks for the llms.txt pipeline.
//
// Components receive a Recorder and never check for nil: NoopRecorder is the
// default, PrometheusRecorder is swapped in when metrics are enabled in the
// configuration. The dev server exposes the registry through HTTPHandler.
//
//	reg := prometheus.NewRegistry()
//	rec := metrics.NewPrometheusRecorder(reg)
//	mux.Handle("/metrics", metrics.HTTPHandler(reg))
package metrics
