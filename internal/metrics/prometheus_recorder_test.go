package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)

	pr.ObserveStageDuration("load", 150*time.Millisecond)
	pr.ObserveAssemblyDuration(500 * time.Millisecond)
	pr.IncAssemblyOutcome(OutcomeSuccess)
	pr.IncAssemblyOutcome(OutcomeSuccess)
	pr.IncRebuild("watch")
	pr.SetArtifactCount("page", 3)
	pr.IncServe(ServeHit)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.InDelta(t, 2, sampleValue(mfs, "llmstxt_assembly_outcomes_total", "outcome", "success"), 0)
	assert.InDelta(t, 1, sampleValue(mfs, "llmstxt_rebuilds_total", "reason", "watch"), 0)
	assert.InDelta(t, 3, sampleValue(mfs, "llmstxt_artifacts", "kind", "page"), 0)
}

// sampleValue finds the counter or gauge sample carrying label=value in a gathered family.
func sampleValue(mfs []*dto.MetricFamily, name, label, value string) float64 {
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() != label || lp.GetValue() != value {
					continue
				}
				if m.GetCounter() != nil {
					return m.GetCounter().GetValue()
				}
				return m.GetGauge().GetValue()
			}
		}
	}
	return -1
}

func TestPrometheusRecorder_NilSafe(t *testing.T) {
	var pr *PrometheusRecorder
	assert.NotPanics(t, func() {
		pr.IncServe(ServePassthrough)
		pr.ObserveAssemblyDuration(time.Second)
	})
}

func TestHTTPHandler_ServesRegistry(t *testing.T) {
	reg := prom.NewRegistry()
	NewPrometheusRecorder(reg).IncRebuild("startup")

	srv := httptest.NewServer(HTTPHandler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `llmstxt_rebuilds_total{reason="startup"} 1`)
}
