package commands

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/matttelliott/bookmarker-ai/internal/config"
	"github.com/matttelliott/bookmarker-ai/internal/health"
	"github.com/matttelliott/bookmarker-ai/internal/logfields"
	"github.com/matttelliott/bookmarker-ai/internal/server/httpserver"
)

const configDebounce = time.Second

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Port        int  `help:"Override server.port (and PORT)"`
	WatchConfig bool `help:"Reload logging settings when the config file changes" default:"true" negatable:""`
}

func (s *ServeCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	if s.Port > 0 {
		cfg.Server.Port = s.Port
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	recorder, registry := newRecorder(cfg)
	srv := httpserver.New(cfg, httpserver.Options{
		Logger:   slog.Default(),
		Health:   health.NewService(cfg.Server.ServiceName),
		Recorder: recorder,
		Registry: registry,
	})
	if err := srv.Start(ctx); err != nil {
		return err
	}

	if root.Config != "" && s.WatchConfig {
		w, err := config.NewWatcher(root.Config, configDebounce, func(next *config.Config) {
			g.applyLogging(next, root.Verbose)
			slog.Info("Applied logging configuration",
				slog.String("level", string(next.Monitoring.Logging.Level)),
				slog.String("format", string(next.Monitoring.Logging.Format)))
		})
		if err != nil {
			slog.Warn("Config watcher unavailable", logfields.Error(err))
		} else if err := w.Start(ctx); err != nil {
			slog.Warn("Config watcher unavailable", logfields.Error(err))
		} else {
			defer func() { _ = w.Stop() }()
		}
	}

	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received, stopping server")
	case err := <-srv.Done():
		if err != nil {
			return err
		}
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownDuration())
	defer stopCancel()
	return srv.Stop(stopCtx)
}
