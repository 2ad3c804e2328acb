package handlers

import (
	"log/slog"
	"net/http"

	derrors "git.home.luguber.info/inful/llmstxt/internal/foundation/errors"
	"git.home.luguber.info/inful/llmstxt/internal/llms"
)

// PageDataPath is where the client page data is served.
const PageDataPath = "/__llmstxt/pages.json"

// PageDataHandlers exposes the client page data records.
type PageDataHandlers struct {
	source       ArtifactSource
	errorAdapter *derrors.HTTPErrorAdapter
}

func NewPageDataHandlers(source ArtifactSource, logger *slog.Logger) *PageDataHandlers {
	return &PageDataHandlers{source: source, errorAdapter: derrors.NewHTTPErrorAdapter(logger)}
}

// HandlePageData returns every record, or the single record for ?route=.
func (h *PageDataHandlers) HandlePageData(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		err := derrors.ValidationError("invalid HTTP method").
			WithContext("method", r.Method).
			WithContext("allowed_method", "GET").
			Build()
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	artifacts, err := h.source.Artifacts(r.Context())
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	data := llms.ClientData(artifacts)

	route, hasRoute := r.URL.Query()["route"]
	if !hasRoute {
		writeJSONPretty(w, r, http.StatusOK, data)
		return
	}

	routePath := ""
	if len(route) > 0 {
		routePath = route[0]
	}
	d, ok := llms.LookupRoute(data.PageData, routePath)
	if !ok {
		h.errorAdapter.WriteErrorResponse(w, r, derrors.NotFoundError("no page data for route").
			WithContext("route", routePath).
			Build())
		return
	}
	writeJSONPretty(w, r, http.StatusOK, d)
}
