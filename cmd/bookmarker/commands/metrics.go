package commands

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/matttelliott/bookmarker-ai/internal/foundation/errors"
	"github.com/matttelliott/bookmarker-ai/internal/logfields"
	"github.com/matttelliott/bookmarker-ai/internal/metrics"
)

const metricsShutdownTimeout = 5 * time.Second

// metricsServer exposes a registry for commands that do not run the API server.
type metricsServer struct {
	srv *http.Server
	ln  net.Listener
}

// startMetrics binds addr before serving so an occupied port fails fast.
func startMetrics(ctx context.Context, addr, path string, reg *prom.Registry) (*metricsServer, error) {
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryRuntime, "metrics listener failed").
			WithContext("addr", addr).
			Fatal().
			Build()
	}

	mux := http.NewServeMux()
	mux.Handle("GET "+path, metrics.HTTPHandler(reg))
	ms := &metricsServer{
		srv: &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second},
		ln:  ln,
	}
	go func() {
		if err := ms.srv.Serve(ln); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server stopped unexpectedly", logfields.Error(err))
		}
	}()

	slog.Info("Serving metrics", logfields.Addr(ln.Addr().String()), slog.String("path", path))
	return ms, nil
}

// Addr returns the bound address.
func (m *metricsServer) Addr() string {
	return m.ln.Addr().String()
}

func (m *metricsServer) Stop(ctx context.Context) error {
	if err := m.srv.Shutdown(ctx); err != nil {
		return errors.WrapError(err, errors.CategoryRuntime, "metrics server shutdown").Build()
	}
	return nil
}
