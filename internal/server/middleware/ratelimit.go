package middleware

import (
	"math"
	"net/http"
	"strconv"

	"golang.org/x/time/rate"

	derrors "github.com/matttelliott/bookmarker-ai/internal/foundation/errors"
	"github.com/matttelliott/bookmarker-ai/internal/metrics"
)

// RateLimitOptions configures a single token bucket shared by all clients.
// RPS <= 0 disables limiting.
type RateLimitOptions struct {
	RPS   float64
	Burst int
}

// RateLimit rejects requests with 429 once the bucket is empty.
func RateLimit(opts RateLimitOptions, adapter *derrors.HTTPErrorAdapter, recorder metrics.Recorder) Middleware {
	if opts.RPS <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	burst := opts.Burst
	if burst <= 0 {
		burst = int(math.Ceil(opts.RPS))
	}
	limiter := rate.NewLimiter(rate.Limit(opts.RPS), burst)
	retryAfter := strconv.Itoa(int(math.Ceil(1 / opts.RPS)))
	recorder = metrics.OrNoop(recorder)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter.Allow() {
				next.ServeHTTP(w, r)
				return
			}
			recorder.IncRateLimited(r.URL.Path)
			w.Header().Set("Retry-After", retryAfter)
			adapter.WriteErrorResponse(w, r, derrors.RateLimitError("rate limit exceeded").
				WithContext("limit_rps", opts.RPS).
				WithContext("burst", burst).
				Build())
		})
	}
}
