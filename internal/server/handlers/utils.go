package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/matttelliott/bookmarker-ai/internal/logfields"
)

// writeJSON encodes v into a buffer first so a failed encode never leaves a
// partial response, then writes it with status. Encode errors are returned
// for the caller's error adapter.
func writeJSON(w http.ResponseWriter, status int, v any) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Error("failed writing JSON response body", logfields.Error(err))
		return err
	}
	return nil
}

// writeJSONPretty indents the body when ?pretty=1 or ?pretty=true is set.
func writeJSONPretty(w http.ResponseWriter, r *http.Request, status int, v any) error {
	if p := r.URL.Query().Get("pretty"); p != "1" && p != "true" {
		return writeJSON(w, status, v)
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		slog.Warn("pretty JSON marshal failed, falling back to compact", logfields.Error(err))
		return writeJSON(w, status, v)
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(append(b, '\n')); err != nil {
		slog.Error("failed writing pretty JSON", logfields.Error(err))
		return err
	}
	return nil
}
