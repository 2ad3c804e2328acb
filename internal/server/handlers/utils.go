package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"git.home.luguber.info/inful/llmstxt/internal/logfields"
)

// writeJSONPretty marshals v before touching w, so an encode failure becomes a
// plain 500. The body is indented when ?pretty=1 or ?pretty=true is given.
func writeJSONPretty(w http.ResponseWriter, r *http.Request, status int, v any) {
	var (
		body []byte
		err  error
	)
	if p := r.URL.Query().Get("pretty"); p == "1" || p == "true" {
		body, err = json.MarshalIndent(v, "", "  ")
	} else {
		body, err = json.Marshal(v)
	}
	if err != nil {
		slog.Error("JSON encode failed", logfields.Path(r.URL.Path), logfields.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		slog.Debug("Writing JSON response failed", logfields.Path(r.URL.Path), logfields.Error(err))
	}
}
