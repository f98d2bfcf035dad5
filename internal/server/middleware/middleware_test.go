package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derrors "github.com/matttelliott/bookmarker-ai/internal/foundation/errors"
	"github.com/matttelliott/bookmarker-ai/internal/metrics"
	"github.com/matttelliott/bookmarker-ai/internal/observability"
)

type recordedRequest struct {
	method, route string
	status        int
}

type fakeRecorder struct {
	metrics.NoopRecorder
	mu          sync.Mutex
	requests    []recordedRequest
	rateLimited int
}

func (f *fakeRecorder) ObserveHTTPRequest(method, route string, status int, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, recordedRequest{method, route, status})
}

func (f *fakeRecorder) IncRateLimited(string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rateLimited++
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

func TestLoggingCapturesStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	h := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("User-Agent", "badge/1.0")
	h.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "HTTP request", entry["msg"])
	assert.Equal(t, "/health", entry["path"])
	assert.InDelta(t, http.StatusTeapot, entry["status"], 0)
	assert.Equal(t, "badge/1.0", entry["user_agent"])
}

func TestRecoverWritesInternalError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	h := Recover(logger, derrors.NewHTTPErrorAdapter(logger))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() { h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil)) })

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body derrors.HTTPErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "internal server error", body.Error)
	assert.Equal(t, "internal", body.Code)
}

func TestMetricsUsesRoutePattern(t *testing.T) {
	rec := &fakeRecorder{}
	mux := http.NewServeMux()
	mux.Handle("GET /health", okHandler())
	h := Metrics(rec)(mux)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	require.Len(t, rec.requests, 2)
	assert.Equal(t, recordedRequest{http.MethodGet, "GET /health", http.StatusOK}, rec.requests[0])
	assert.Equal(t, http.StatusNotFound, rec.requests[1].status)
}

func TestCORS(t *testing.T) {
	opts := CORSOptions{
		Enabled:          true,
		AllowedOrigins:   []string{"http://localhost:4200", "http://localhost:4201"},
		AllowCredentials: true,
	}

	t.Run("allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "http://localhost:4201")
		rec := httptest.NewRecorder()
		CORS(opts)(okHandler()).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "http://localhost:4201", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("foreign origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "https://evil.example")
		rec := httptest.NewRecorder()
		CORS(opts)(okHandler()).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/health", nil)
		req.Header.Set("Origin", "http://localhost:4200")
		req.Header.Set("Access-Control-Request-Method", "GET")
		req.Header.Set("Access-Control-Request-Headers", "content-type")
		rec := httptest.NewRecorder()
		CORS(opts)(okHandler()).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, defaultAllowMethods, rec.Header().Get("Access-Control-Allow-Methods"))
		assert.Equal(t, "content-type", rec.Header().Get("Access-Control-Allow-Headers"))
	})

	t.Run("disabled", func(t *testing.T) {
		disabled := opts
		disabled.Enabled = false
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "http://localhost:4200")
		rec := httptest.NewRecorder()
		CORS(disabled)(okHandler()).ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, rec.Header().Values("Vary"))
	})
}

func TestRateLimit(t *testing.T) {
	rec := &fakeRecorder{}
	h := RateLimit(RateLimitOptions{RPS: 0.001, Burst: 2}, derrors.NewHTTPErrorAdapter(nil), rec)(okHandler())

	codes := make([]int, 0, 3)
	var last *httptest.ResponseRecorder
	for range 3 {
		last = httptest.NewRecorder()
		h.ServeHTTP(last, httptest.NewRequest(http.MethodGet, "/health", nil))
		codes = append(codes, last.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	assert.Equal(t, 1, rec.rateLimited)
	assert.NotEmpty(t, last.Header().Get("Retry-After"))

	var body derrors.HTTPErrorResponse
	require.NoError(t, json.Unmarshal(last.Body.Bytes(), &body))
	assert.Equal(t, "rate_limit", body.Code)
	assert.True(t, body.Retryable)
}

func TestRateLimitDisabled(t *testing.T) {
	h := RateLimit(RateLimitOptions{}, derrors.NewHTTPErrorAdapter(nil), nil)(okHandler())
	for range 50 {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestChainOrder(t *testing.T) {
	rec := &fakeRecorder{}
	mux := http.NewServeMux()
	mux.Handle("GET /boom", http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("x") }))

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	h := Chain(Options{Logger: logger, Recorder: rec})(mux)
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	require.Len(t, rec.requests, 1)
	assert.Equal(t, http.StatusInternalServerError, rec.requests[0].status)
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = observability.RequestID(r.Context())
	}))

	resp := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	h.ServeHTTP(resp, req)
	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", resp.Header().Get(RequestIDHeader))

	resp = httptest.NewRecorder()
	h.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NotEmpty(t, seen)
	assert.NotEqual(t, "abc-123", seen)
	assert.Equal(t, seen, resp.Header().Get(RequestIDHeader))
}

func TestChainLogsRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	h := Chain(Options{Logger: logger})(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "trace-me")
	h.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "trace-me", entry["request_id"])
}
