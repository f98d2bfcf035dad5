// Package httpserver wires the bookmarker API handlers behind the middleware
// chain and manages the listener lifecycle.
package httpserver

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/matttelliott/bookmarker-ai/internal/config"
	derrors "github.com/matttelliott/bookmarker-ai/internal/foundation/errors"
	"github.com/matttelliott/bookmarker-ai/internal/health"
	"github.com/matttelliott/bookmarker-ai/internal/logfields"
	"github.com/matttelliott/bookmarker-ai/internal/metrics"
	"github.com/matttelliott/bookmarker-ai/internal/server/handlers"
	smw "github.com/matttelliott/bookmarker-ai/internal/server/middleware"
)

const readHeaderTimeout = 5 * time.Second

// Options carries runtime dependencies. Zero values are replaced with defaults.
type Options struct {
	Logger   *slog.Logger
	Health   *health.Service
	Recorder metrics.Recorder
	// Registry is served on monitoring.metrics.path when metrics are enabled.
	Registry *prom.Registry
}

// Server is the bookmarker API server.
type Server struct {
	cfg    *config.Config
	logger *slog.Logger
	srv    *http.Server

	mu   sync.Mutex
	ln   net.Listener
	done chan error
}

// New builds the route table and middleware chain for cfg.
func New(cfg *config.Config, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Health == nil {
		opts.Health = health.NewService(cfg.Server.ServiceName)
	}

	healthHandlers := handlers.NewHealthHandlers(opts.Health, opts.Logger)
	mux := http.NewServeMux()
	mux.HandleFunc(cfg.Monitoring.Health.Path, healthHandlers.HandleHealth)
	mux.HandleFunc("/version", healthHandlers.HandleVersion)
	if cfg.Monitoring.Metrics.Enabled {
		mux.Handle("GET "+cfg.Monitoring.Metrics.Path, metrics.HTTPHandler(opts.Registry))
	}

	chain := smw.Chain(smw.Options{
		Logger:   opts.Logger,
		Adapter:  derrors.NewHTTPErrorAdapter(opts.Logger),
		Recorder: opts.Recorder,
		CORS: smw.CORSOptions{
			Enabled:          cfg.CORSEnabled(),
			AllowedOrigins:   cfg.Server.CORSOrigins,
			AllowCredentials: true,
		},
		RateLimit: smw.RateLimitOptions{
			RPS:   cfg.Server.RateLimit.RPS,
			Burst: cfg.Server.RateLimit.Burst,
		},
	})

	return &Server{
		cfg:    cfg,
		logger: opts.Logger,
		srv: &http.Server{
			Handler:           chain(mux),
			ReadHeaderTimeout: readHeaderTimeout,
		},
	}
}

// Start binds the listener before serving so an occupied port fails fast,
// then serves in the background until Stop.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln != nil {
		return derrors.NewError(derrors.CategoryRuntime, "server already started").Build()
	}

	addr := net.JoinHostPort(s.cfg.Server.Host, strconv.Itoa(s.cfg.Server.Port))
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return derrors.WrapError(err, derrors.CategoryRuntime, "http startup failed").
			WithContext("addr", addr).
			Fatal().
			Build()
	}
	s.ln = ln
	s.done = make(chan error, 1)

	go func() {
		err := s.srv.Serve(ln)
		if stderrors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		if err != nil {
			s.logger.Error("HTTP server stopped unexpectedly", logfields.Error(err))
		}
		s.done <- err
	}()

	s.logger.Info("HTTP server started",
		logfields.Addr(ln.Addr().String()),
		logfields.Service(s.cfg.Server.ServiceName),
		logfields.Environment(string(s.cfg.Environment)))
	return nil
}

// Addr returns the bound address, or "" before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}

// Done yields the Serve result once the server stops. Nil before Start.
func (s *Server) Done() <-chan error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// Stop gracefully shuts the server down, waiting for in-flight requests until ctx expires.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	started := s.ln != nil
	s.mu.Unlock()
	if !started {
		return nil
	}
	if err := s.srv.Shutdown(ctx); err != nil {
		return derrors.WrapError(err, derrors.CategoryRuntime, "http server shutdown").Build()
	}
	s.logger.Info("HTTP server stopped")
	return nil
}

// Handler exposes the fully wrapped handler for in-process tests.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}
