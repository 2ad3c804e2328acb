package httpserver

import (
	"log/slog"
	"net/http"

	"git.home.luguber.info/inful/llmstxt/internal/metrics"
	"git.home.luguber.info/inful/llmstxt/internal/server/handlers"
)

// Options configures the dev server wiring.
type Options struct {
	// Addr is the listen address, e.g. ":5173" or "127.0.0.1:0".
	Addr string
	// StaticDir is served for requests no artifact answers. Empty means 404.
	StaticDir string

	Source   handlers.ArtifactSource
	Recorder metrics.Recorder
	Logger   *slog.Logger

	// Middleware answers artifact requests in front of the static handler.
	// Nil uses the artifact handlers over Source.
	Middleware func(http.Handler) http.Handler

	// Optional: Prometheus exposition.
	MetricsHandler http.Handler
	MetricsPath    string
}
