package middleware

import (
	"net/http"
	"slices"
	"strings"
)

const (
	defaultAllowMethods = "GET,HEAD,PUT,PATCH,POST,DELETE"
	preflightMaxAge     = "600"
)

// CORSOptions configures cross-origin access. A disabled or empty
// configuration adds no headers.
type CORSOptions struct {
	Enabled          bool
	AllowedOrigins   []string
	AllowCredentials bool
}

// CORS answers preflight requests with 204 and reflects allowed origins.
// Requests from other origins pass through without CORS headers.
func CORS(opts CORSOptions) Middleware {
	if !opts.Enabled || len(opts.AllowedOrigins) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			h := w.Header()
			h.Add("Vary", "Origin")

			allowed := origin != "" && slices.Contains(opts.AllowedOrigins, origin)
			if allowed {
				h.Set("Access-Control-Allow-Origin", origin)
				if opts.AllowCredentials {
					h.Set("Access-Control-Allow-Credentials", "true")
				}
			}

			if r.Method != http.MethodOptions || r.Header.Get("Access-Control-Request-Method") == "" {
				next.ServeHTTP(w, r)
				return
			}

			h.Add("Vary", "Access-Control-Request-Method")
			h.Add("Vary", "Access-Control-Request-Headers")
			if allowed {
				h.Set("Access-Control-Allow-Methods", defaultAllowMethods)
				if reqHeaders := r.Header.Get("Access-Control-Request-Headers"); reqHeaders != "" {
					h.Set("Access-Control-Allow-Headers", strings.TrimSpace(reqHeaders))
				}
				h.Set("Access-Control-Max-Age", preflightMaxAge)
			}
			w.WriteHeader(http.StatusNoContent)
		})
	}
}
