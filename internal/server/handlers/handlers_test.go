package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/llmstxt/internal/frontmatterops"
	"git.home.luguber.info/inful/llmstxt/internal/llms"
	"git.home.luguber.info/inful/llmstxt/internal/metrics"
	"git.home.luguber.info/inful/llmstxt/internal/server/responses"
)

type fakeSource struct {
	artifacts []llms.Artifact
	err       error
	calls     int
}

func (f *fakeSource) Artifacts(context.Context) ([]llms.Artifact, error) {
	f.calls++
	return f.artifacts, f.err
}

type countingRecorder struct {
	metrics.NoopRecorder
	serves map[metrics.ServeLabel]int
}

func (c *countingRecorder) IncServe(l metrics.ServeLabel) {
	if c.serves == nil {
		c.serves = map[metrics.ServeLabel]int{}
	}
	c.serves[l]++
}

func sampleArtifacts() []llms.Artifact {
	return []llms.Artifact{
		{Path: "/llms.txt", URL: "https://docs.dev/llms.txt", LLMURL: "https://docs.dev/llms.txt", Content: "# Site\n"},
		{Path: "/guide.md", URL: "https://docs.dev/guide", LLMURL: "https://docs.dev/guide.md", Content: "---\nURL: \"https://docs.dev/guide\"\n---\n\n# Guide\n"},
		{Path: "/llms-full.txt", URL: "https://docs.dev/llms-full.txt", LLMURL: "https://docs.dev/llms-full.txt", Content: "full"},
	}
}

var nextHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusTeapot)
})

func TestCandidatePaths(t *testing.T) {
	assert.Equal(t, []string{
		"/guide.md",
		"/guide.md/index.md",
		"/guide.md.md",
		"/guide.md.html",
		"/guide.md.html/index.md",
	}, CandidatePaths("/guide.md"))
}

func TestMatch(t *testing.T) {
	arts := sampleArtifacts()

	a, ok := Match(arts, "/guide.md")
	require.True(t, ok)
	assert.Equal(t, "/guide.md", a.Path)

	a, ok = Match(arts, "/llms-full.txt")
	require.True(t, ok)
	assert.Equal(t, "full", a.Content)

	_, ok = Match(arts, "/missing.md")
	assert.False(t, ok)
}

func TestMiddleware_ServesMatchingArtifact(t *testing.T) {
	src := &fakeSource{artifacts: sampleArtifacts()}
	rec := &countingRecorder{}
	h := NewArtifactHandlers(src, rec, nil).Middleware(nextHandler)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guide.md", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/markdown; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, sampleArtifacts()[1].Content, w.Body.String())
	assert.Equal(t, frontmatterops.ETag(sampleArtifacts()[1].Content), w.Header().Get("ETag"))
	assert.Equal(t, 1, rec.serves[metrics.ServeHit])
}

func TestMiddleware_IgnoresQueryString(t *testing.T) {
	h := NewArtifactHandlers(&fakeSource{artifacts: sampleArtifacts()}, nil, nil).Middleware(nextHandler)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/llms.txt?v=2", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "# Site\n", w.Body.String())
}

func TestMiddleware_NotModified(t *testing.T) {
	rec := &countingRecorder{}
	h := NewArtifactHandlers(&fakeSource{artifacts: sampleArtifacts()}, rec, nil).Middleware(nextHandler)

	req := httptest.NewRequest(http.MethodGet, "/llms.txt", nil)
	req.Header.Set("If-None-Match", frontmatterops.ETag("# Site\n"))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotModified, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Equal(t, 1, rec.serves[metrics.ServeNotModified])
}

func TestMiddleware_HeadOmitsBody(t *testing.T) {
	h := NewArtifactHandlers(&fakeSource{artifacts: sampleArtifacts()}, nil, nil).Middleware(nextHandler)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodHead, "/llms.txt", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestMiddleware_PassesThrough(t *testing.T) {
	tests := []struct {
		name string
		path string
		src  *fakeSource
		load int
	}{
		{name: "non markdown path", path: "/assets/app.js", src: &fakeSource{artifacts: sampleArtifacts()}, load: 0},
		{name: "unknown markdown path", path: "/nope.md", src: &fakeSource{artifacts: sampleArtifacts()}, load: 1},
		{name: "source failure", path: "/guide.md", src: &fakeSource{err: errors.New("load failed")}, load: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewArtifactHandlers(tt.src, nil, nil).Middleware(nextHandler)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, http.StatusTeapot, w.Code)
			assert.Equal(t, tt.load, tt.src.calls)
		})
	}
}

func TestHandlePageData_All(t *testing.T) {
	h := NewPageDataHandlers(&fakeSource{artifacts: sampleArtifacts()}, nil)

	w := httptest.NewRecorder()
	h.HandlePageData(w, httptest.NewRequest(http.MethodGet, PageDataPath, nil))

	require.Equal(t, http.StatusOK, w.Code)
	var got llms.ClientConfig
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got.PageData, 3)
	assert.Equal(t, "https://docs.dev/guide.md", got.PageData[1].LLMURL)
}

func TestHandlePageData_Route(t *testing.T) {
	h := NewPageDataHandlers(&fakeSource{artifacts: sampleArtifacts()}, nil)

	w := httptest.NewRecorder()
	h.HandlePageData(w, httptest.NewRequest(http.MethodGet, PageDataPath+"?route=https://docs.dev/guide/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var got llms.ClientPageData
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "/guide.md", got.Path)
}

func TestHandlePageData_RouteNotFound(t *testing.T) {
	h := NewPageDataHandlers(&fakeSource{artifacts: sampleArtifacts()}, nil)

	w := httptest.NewRecorder()
	h.HandlePageData(w, httptest.NewRequest(http.MethodGet, PageDataPath+"?route=/nope", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandlePageData_RejectsPost(t *testing.T) {
	h := NewPageDataHandlers(&fakeSource{artifacts: sampleArtifacts()}, nil)

	w := httptest.NewRecorder()
	h.HandlePageData(w, httptest.NewRequest(http.MethodPost, PageDataPath, nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleHealthCheck(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		h := NewMonitoringHandlers(&fakeSource{artifacts: sampleArtifacts()}, nil)
		w := httptest.NewRecorder()
		h.HandleHealthCheck(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var got responses.HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "healthy", got.Status)
		assert.Equal(t, 3, got.Artifacts)
	})

	t.Run("unhealthy", func(t *testing.T) {
		h := NewMonitoringHandlers(&fakeSource{err: errors.New("broken")}, nil)
		w := httptest.NewRecorder()
		h.HandleHealthCheck(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		require.Equal(t, http.StatusServiceUnavailable, w.Code)
		var got responses.HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "unhealthy", got.Status)
		assert.Equal(t, "broken", got.Error)
	})
}
