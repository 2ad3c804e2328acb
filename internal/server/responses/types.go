// Package responses defines JSON payloads returned by the dev server.
package responses

import "time"

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Uptime    float64   `json:"uptime"`
	Artifacts int       `json:"artifacts"`
	Error     string    `json:"error,omitempty"`
}
