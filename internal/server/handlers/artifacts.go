package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"git.home.luguber.info/inful/llmstxt/internal/frontmatterops"
	"git.home.luguber.info/inful/llmstxt/internal/llms"
	"git.home.luguber.info/inful/llmstxt/internal/logfields"
	"git.home.luguber.info/inful/llmstxt/internal/metrics"
)

// ArtifactSource yields the current artifact list, computing it on first use.
type ArtifactSource interface {
	Artifacts(ctx context.Context) ([]llms.Artifact, error)
}

// ArtifactHandlers serves assembled artifacts in front of another handler.
type ArtifactHandlers struct {
	source   ArtifactSource
	recorder metrics.Recorder
	logger   *slog.Logger
}

// NewArtifactHandlers wires a source. A nil recorder or logger falls back to no-op metrics and slog.Default.
func NewArtifactHandlers(source ArtifactSource, recorder metrics.Recorder, logger *slog.Logger) *ArtifactHandlers {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ArtifactHandlers{source: source, recorder: recorder, logger: logger}
}

// CandidatePaths lists the request paths that resolve to an artifact, in match order.
func CandidatePaths(artifactPath string) []string {
	return []string{
		path.Join("/", artifactPath),
		path.Join("/", artifactPath, "index.md"),
		path.Join("/", artifactPath+".md"),
		path.Join("/", artifactPath+".html"),
		path.Join("/", artifactPath+".html", "index.md"),
	}
}

// Match returns the first artifact whose candidate paths contain requestPath.
func Match(artifacts []llms.Artifact, requestPath string) (llms.Artifact, bool) {
	for _, a := range artifacts {
		for _, c := range CandidatePaths(a.Path) {
			if c == requestPath {
				return a, true
			}
		}
	}
	return llms.Artifact{}, false
}

// Middleware answers .md and .txt requests that match an artifact and passes everything else to next.
// Lookup failures are logged and fall through.
func (h *ArtifactHandlers) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqPath := r.URL.Path
		if reqPath == "" || !(strings.HasSuffix(reqPath, ".txt") || strings.HasSuffix(reqPath, ".md")) {
			next.ServeHTTP(w, r)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			next.ServeHTTP(w, r)
			return
		}

		artifacts, err := h.source.Artifacts(r.Context())
		if err != nil {
			h.logger.Warn("Artifact lookup failed",
				logfields.Component(),
				logfields.Path(reqPath),
				logfields.Error(err))
			h.recorder.IncServe(metrics.ServePassthrough)
			next.ServeHTTP(w, r)
			return
		}

		a, ok := Match(artifacts, reqPath)
		if !ok {
			h.recorder.IncServe(metrics.ServePassthrough)
			next.ServeHTTP(w, r)
			return
		}

		etag := frontmatterops.ETag(a.Content)
		w.Header().Set("ETag", etag)
		w.Header().Set("Cache-Control", "no-cache")
		if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
			h.recorder.IncServe(metrics.ServeNotModified)
			w.WriteHeader(http.StatusNotModified)
			return
		}

		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		h.recorder.IncServe(metrics.ServeHit)
		if r.Method == http.MethodHead {
			return
		}
		if _, err := w.Write([]byte(a.Content)); err != nil {
			h.logger.Warn("Failed writing artifact", logfields.Artifact(a.Path), logfields.Error(err))
		}
	})
}
