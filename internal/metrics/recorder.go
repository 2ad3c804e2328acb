package metrics

import "time"

// OutcomeLabel enumerates assembly outcomes for counters.
type OutcomeLabel string

const (
	OutcomeSuccess  OutcomeLabel = "success"
	OutcomeFailed   OutcomeLabel = "failed"
	OutcomeCanceled OutcomeLabel = "canceled"
)

// ServeLabel enumerates dev-server middleware results.
type ServeLabel string

const (
	ServeHit         ServeLabel = "served"
	ServeNotModified ServeLabel = "not_modified"
	ServePassthrough ServeLabel = "passthrough"
)

// Recorder defines observability hooks for the artifact pipeline. Implementations
// may forward to Prometheus; NoopRecorder is the default when metrics are off.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveAssemblyDuration(d time.Duration)
	IncAssemblyOutcome(outcome OutcomeLabel)
	IncRebuild(reason string) // reason: startup|watch|poll|request|build
	SetArtifactCount(kind string, n int)
	IncServe(result ServeLabel)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveAssemblyDuration(time.Duration)      {}
func (NoopRecorder) IncAssemblyOutcome(OutcomeLabel)            {}
func (NoopRecorder) IncRebuild(string)                          {}
func (NoopRecorder) SetArtifactCount(string, int)               {}
func (NoopRecorder) IncServe(ServeLabel)                        {}
