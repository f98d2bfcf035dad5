// Package middleware provides HTTP middleware for the bookmarker API server.
package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	derrors "github.com/matttelliott/bookmarker-ai/internal/foundation/errors"
	"github.com/matttelliott/bookmarker-ai/internal/logfields"
	"github.com/matttelliott/bookmarker-ai/internal/metrics"
	"github.com/matttelliott/bookmarker-ai/internal/observability"
)

// RequestIDHeader carries the request correlation id in both directions.
const RequestIDHeader = "X-Request-ID"

const maxRequestIDLen = 128

// Middleware wraps a handler.
type Middleware func(http.Handler) http.Handler

// Options selects the middleware applied by Chain.
type Options struct {
	Logger    *slog.Logger
	Adapter   *derrors.HTTPErrorAdapter
	Recorder  metrics.Recorder
	CORS      CORSOptions
	RateLimit RateLimitOptions
}

// Chain returns the standard stack, outermost first: request id, logging,
// metrics, panic recovery, CORS, rate limiting.
func Chain(opts Options) Middleware {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Adapter == nil {
		opts.Adapter = derrors.NewHTTPErrorAdapter(opts.Logger)
	}
	recorder := metrics.OrNoop(opts.Recorder)

	stack := []Middleware{
		RequestID(),
		Logging(opts.Logger),
		Metrics(recorder),
		Recover(opts.Logger, opts.Adapter),
		CORS(opts.CORS),
		RateLimit(opts.RateLimit, opts.Adapter, recorder),
	}
	return func(next http.Handler) http.Handler {
		for i := len(stack) - 1; i >= 0; i-- {
			next = stack[i](next)
		}
		return next
	}
}

// RequestID propagates the caller's X-Request-ID or assigns a new one, echoes
// it on the response and stores it in the request context.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" || len(id) > maxRequestIDLen {
				id = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, id)
			next.ServeHTTP(w, r.WithContext(observability.WithRequestID(r.Context(), id)))
		})
	}
}

// Logging logs method, path, status, duration, user agent, and remote addr.
func Logging(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := wrap(w)
			next.ServeHTTP(wrapped, r)
			observability.Log(r.Context(), logger, slog.LevelInfo, "HTTP request",
				logfields.Method(r.Method),
				logfields.Path(r.URL.Path),
				logfields.Status(wrapped.statusCode),
				logfields.Duration(time.Since(start)),
				logfields.UserAgent(r.UserAgent()),
				logfields.RemoteAddr(r.RemoteAddr))
		})
	}
}

// Metrics records request counts and latency keyed by the matched route pattern.
func Metrics(recorder metrics.Recorder) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := wrap(w)
			next.ServeHTTP(wrapped, r)
			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}
			recorder.ObserveHTTPRequest(r.Method, route, wrapped.statusCode, time.Since(start))
		})
	}
}

// Recover turns handler panics into a 500 JSON response.
func Recover(logger *slog.Logger, adapter *derrors.HTTPErrorAdapter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				observability.Log(r.Context(), logger, slog.LevelError, "HTTP handler panic",
					logfields.Error(fmt.Errorf("%v", rec)),
					logfields.Path(r.URL.Path),
					logfields.Method(r.Method),
					logfields.RemoteAddr(r.RemoteAddr))

				panicErr := derrors.InternalError("internal server error").
					WithContext("path", r.URL.Path).
					WithContext("method", r.Method).
					Build()
				adapter.WriteErrorResponse(w, r, panicErr)
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// responseWriter captures status codes for logging and metrics.
type responseWriter struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func wrap(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.statusCode = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	return rw.ResponseWriter.Write(b)
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
