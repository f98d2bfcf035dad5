package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matttelliott/bookmarker-ai/internal/health"
)

func newTestHandlers() *HealthHandlers {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := health.NewService("", health.WithClock(func() time.Time { return at }))
	return NewHealthHandlers(svc, nil)
}

func TestHandleHealth(t *testing.T) {
	h := newTestHandlers()
	rec := httptest.NewRecorder()

	h.HandleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok","timestamp":"2025-03-01T12:00:00.000Z","service":"bookmarker-api"}`, rec.Body.String())
}

func TestHandleHealthPretty(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestHandlers().HandleHealth(rec, httptest.NewRequest(http.MethodGet, "/health?pretty=1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "{\n  \"status\": \"ok\""))
}

func TestHandleHealthRejectsOtherMethods(t *testing.T) {
	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newTestHandlers().HandleHealth(rec, httptest.NewRequest(method, "/health", nil))

			require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
			assert.Equal(t, "GET, HEAD", rec.Header().Get("Allow"))
		})
	}

	rec := httptest.NewRecorder()
	newTestHandlers().HandleVersion(rec, httptest.NewRequest(http.MethodPost, "/version", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleVersion(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestHandlers().HandleVersion(rec, httptest.NewRequest(http.MethodGet, "/version", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "bookmarker-api", body["service"])
	assert.Contains(t, body, "version")
	assert.Contains(t, body, "go_version")
}
