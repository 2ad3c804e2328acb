package httpserver

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"git.home.luguber.info/inful/llmstxt/internal/llms"
	"git.home.luguber.info/inful/llmstxt/internal/metrics"
	"git.home.luguber.info/inful/llmstxt/internal/server/middleware"
)

type staticSource []llms.Artifact

func (s staticSource) Artifacts(context.Context) ([]llms.Artifact, error) { return s, nil }

func testSource() staticSource {
	return staticSource{
		{Path: "/llms.txt", URL: "/llms.txt", LLMURL: "/llms.txt", Content: "# Docs\n"},
		{Path: "/guide.md", URL: "/guide", LLMURL: "/guide.md", Content: "# Guide\n"},
	}
}

func TestHandler_Routes(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0o600))

	reg := prometheus.NewRegistry()
	rec := metrics.NewPrometheusRecorder(reg)
	rec.IncRebuild("startup")

	s := New(Options{
		StaticDir:      dir,
		Source:         testSource(),
		Recorder:       rec,
		MetricsHandler: metrics.HTTPHandler(reg),
	})
	h := s.Handler()

	tests := []struct {
		path     string
		status   int
		contains string
	}{
		{path: "/llms.txt", status: http.StatusOK, contains: "# Docs"},
		{path: "/guide.md", status: http.StatusOK, contains: "# Guide"},
		{path: "/app.js", status: http.StatusOK, contains: "console.log"},
		{path: "/missing.md", status: http.StatusNotFound},
		{path: "/__llmstxt/pages.json", status: http.StatusOK, contains: `"llmUrl":"/guide.md"`},
		{path: "/healthz", status: http.StatusOK, contains: `"artifacts":2`},
		{path: "/metrics", status: http.StatusOK, contains: `llmstxt_rebuilds_total{reason="startup"} 1`},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.status, w.Code)
			assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
			if tt.contains != "" {
				assert.Contains(t, w.Body.String(), tt.contains)
			}
		})
	}
}

func TestHandler_NoStaticDir(t *testing.T) {
	h := New(Options{Source: testSource()}).Handler()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/index.html", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_RunServesUntilCanceled(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	s := New(Options{Addr: "127.0.0.1:0", Source: testSource()})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool {
		return !strings.HasSuffix(s.Addr(), ":0")
	}, 2*time.Second, 10*time.Millisecond)

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := client.Get("http://" + s.Addr() + "/llms.txt")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, "# Docs\n", string(body))
	assert.Equal(t, "text/markdown; charset=utf-8", resp.Header.Get("Content-Type"))

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServer_StartTwiceFails(t *testing.T) {
	s := New(Options{Addr: "127.0.0.1:0", Source: testSource()})
	require.NoError(t, s.Start(context.Background()))
	t.Cleanup(func() { _ = s.Stop(context.Background()) })

	require.Error(t, s.Start(context.Background()))
}

func TestServer_StopWithoutStart(t *testing.T) {
	require.NoError(t, New(Options{Source: testSource()}).Stop(context.Background()))
}

func TestHandler_CustomMiddleware(t *testing.T) {
	h := New(Options{
		Source: testSource(),
		Middleware: func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path == "/custom.md" {
					_, _ = w.Write([]byte("custom"))
					return
				}
				next.ServeHTTP(w, r)
			})
		},
	}).Handler()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/custom.md", nil))
	assert.Equal(t, "custom", w.Body.String())

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/llms.txt", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
