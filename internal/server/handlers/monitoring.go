package handlers

import (
	"log/slog"
	"net/http"
	"time"

	derrors "git.home.luguber.info/inful/llmstxt/internal/foundation/errors"
	"git.home.luguber.info/inful/llmstxt/internal/server/responses"
	"git.home.luguber.info/inful/llmstxt/internal/version"
)

// MonitoringHandlers contains the health endpoint.
type MonitoringHandlers struct {
	source       ArtifactSource
	startTime    time.Time
	errorAdapter *derrors.HTTPErrorAdapter
}

func NewMonitoringHandlers(source ArtifactSource, logger *slog.Logger) *MonitoringHandlers {
	return &MonitoringHandlers{
		source:       source,
		startTime:    time.Now(),
		errorAdapter: derrors.NewHTTPErrorAdapter(logger),
	}
}

// HandleHealthCheck reports healthy when the latest assembly succeeded.
func (h *MonitoringHandlers) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		err := derrors.ValidationError("invalid HTTP method").
			WithContext("method", r.Method).
			WithContext("allowed_method", "GET").
			Build()
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	health := &responses.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   version.Version,
		Uptime:    time.Since(h.startTime).Seconds(),
	}

	status := http.StatusOK
	artifacts, err := h.source.Artifacts(r.Context())
	if err != nil {
		health.Status = "unhealthy"
		health.Error = err.Error()
		status = http.StatusServiceUnavailable
	} else {
		health.Artifacts = len(artifacts)
	}
	writeJSONPretty(w, r, status, health)
}
