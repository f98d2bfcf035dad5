package handlers

import (
	"log/slog"
	"net/http"

	"github.com/matttelliott/bookmarker-ai/internal/foundation/errors"
	"github.com/matttelliott/bookmarker-ai/internal/health"
	"github.com/matttelliott/bookmarker-ai/internal/server/responses"
	"github.com/matttelliott/bookmarker-ai/internal/version"
)

// HealthHandlers serves the liveness and version endpoints.
type HealthHandlers struct {
	health       *health.Service
	errorAdapter *errors.HTTPErrorAdapter
}

// NewHealthHandlers creates handlers backed by svc.
func NewHealthHandlers(svc *health.Service, logger *slog.Logger) *HealthHandlers {
	return &HealthHandlers{
		health:       svc,
		errorAdapter: errors.NewHTTPErrorAdapter(logger),
	}
}

// HandleHealth returns {"status":"ok","timestamp":...,"service":...}. Only GET is accepted.
func (h *HealthHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if !h.requireGet(w, r) {
		return
	}
	if err := writeJSONPretty(w, r, http.StatusOK, h.health.Check(r.Context())); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r,
			errors.WrapError(err, errors.CategoryInternal, "failed to write health response").Build())
	}
}

// HandleVersion reports build metadata.
func (h *HealthHandlers) HandleVersion(w http.ResponseWriter, r *http.Request) {
	if !h.requireGet(w, r) {
		return
	}
	resp := responses.VersionResponse{Service: h.health.Name(), Info: version.Get()}
	if err := writeJSONPretty(w, r, http.StatusOK, resp); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r,
			errors.WrapError(err, errors.CategoryInternal, "failed to write version response").Build())
	}
}

func (h *HealthHandlers) requireGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	w.Header().Set("Allow", "GET, HEAD")
	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	return false
}
