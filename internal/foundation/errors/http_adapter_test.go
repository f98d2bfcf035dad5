package errors

import (
	"encoding/json"
	stdErrors "errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPErrorAdapter_StatusCodeFor(t *testing.T) {
	adapter := NewHTTPErrorAdapter(slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, http.StatusOK},
		{"validation", ValidationError("invalid input").Build(), http.StatusBadRequest},
		{"already exists", NewError(CategoryAlreadyExists, "duplicate transition").Build(), http.StatusConflict},
		{"messaging", MessagingError("nats down").Build(), http.StatusBadGateway},
		{"not found", NotFoundError("bookmark").Build(), http.StatusNotFound},
		{"rate limit", RateLimitError("slow down").Build(), http.StatusTooManyRequests},
		{"upstream", UpstreamError("bad gateway").Build(), http.StatusBadGateway},
		{"runtime", NewError(CategoryRuntime, "shutting down").Build(), http.StatusServiceUnavailable},
		{"internal", InternalError("boom").Build(), http.StatusInternalServerError},
		{"unclassified", stdErrors.New("unknown"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, adapter.StatusCodeFor(tt.err))
		})
	}
}

func TestHTTPErrorAdapter_WriteErrorResponse(t *testing.T) {
	adapter := NewHTTPErrorAdapter(slog.Default())
	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	rec := httptest.NewRecorder()

	err := ValidationError("invalid HTTP method").
		WithContext("method", http.MethodPost).
		Build()
	adapter.WriteErrorResponse(rec, req, err)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body HTTPErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "invalid HTTP method", body.Error)
	assert.Equal(t, string(CategoryValidation), body.Code)
	assert.Equal(t, http.MethodPost, body.Details["method"])
	assert.False(t, body.Retryable)
}

func TestHTTPErrorAdapter_FormatUnclassified(t *testing.T) {
	adapter := NewHTTPErrorAdapter(nil)
	resp := adapter.FormatErrorResponse(stdErrors.New("plain failure"))
	assert.Equal(t, "plain failure", resp.Error)
	assert.Empty(t, resp.Code)
}
