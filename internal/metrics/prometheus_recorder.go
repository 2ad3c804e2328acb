package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "llmstxt"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	stageDuration    *prom.HistogramVec
	assemblyDuration prom.Histogram
	assemblyOutcome  *prom.CounterVec
	rebuilds         *prom.CounterVec
	artifacts        *prom.GaugeVec
	served           *prom.CounterVec
}

// NewPrometheusRecorder constructs the metrics and registers them with reg.
// A nil reg gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of pipeline stages (load, assemble, write)",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		assemblyDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "assembly_duration_seconds",
			Help:      "Total duration of one assembly pass",
			Buckets:   prom.DefBuckets,
		}),
		assemblyOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "assembly_outcomes_total",
			Help:      "Assembly passes by outcome",
		}, []string{"outcome"}),
		rebuilds: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "rebuilds_total",
			Help:      "Assembly passes by trigger",
		}, []string{"reason"}),
		artifacts: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "artifacts",
			Help:      "Artifacts produced by the last assembly pass",
		}, []string{"kind"}),
		served: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "dev_requests_total",
			Help:      "Dev-server .md/.txt requests by result",
		}, []string{"result"}),
	}
	reg.MustRegister(pr.stageDuration, pr.assemblyDuration, pr.assemblyOutcome, pr.rebuilds, pr.artifacts, pr.served)
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil || p.stageDuration == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveAssemblyDuration(d time.Duration) {
	if p == nil || p.assemblyDuration == nil {
		return
	}
	p.assemblyDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncAssemblyOutcome(outcome OutcomeLabel) {
	if p == nil || p.assemblyOutcome == nil {
		return
	}
	p.assemblyOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) IncRebuild(reason string) {
	if p == nil || p.rebuilds == nil {
		return
	}
	p.rebuilds.WithLabelValues(reason).Inc()
}

func (p *PrometheusRecorder) SetArtifactCount(kind string, n int) {
	if p == nil || p.artifacts == nil {
		return
	}
	p.artifacts.WithLabelValues(kind).Set(float64(n))
}

func (p *PrometheusRecorder) IncServe(result ServeLabel) {
	if p == nil || p.served == nil {
		return
	}
	p.served.WithLabelValues(string(result)).Inc()
}

// HTTPHandler serves the metrics gathered by reg in OpenMetrics format,
// or the process-wide default registry when reg is nil.
func HTTPHandler(reg *prom.Registry) http.Handler {
	if reg == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
