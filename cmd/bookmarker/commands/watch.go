package commands

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/matttelliott/bookmarker-ai/internal/config"
	"github.com/matttelliott/bookmarker-ai/internal/events"
	"github.com/matttelliott/bookmarker-ai/internal/foundation"
	"github.com/matttelliott/bookmarker-ai/internal/healthpoll"
	"github.com/matttelliott/bookmarker-ai/internal/logfields"
	"github.com/matttelliott/bookmarker-ai/internal/retry"
	"github.com/matttelliott/bookmarker-ai/internal/statuslog"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	URL      string        `help:"API base URL (overrides poller.api_url)"`
	Interval time.Duration `help:"Polling interval (overrides poller.interval)"`
	Once     bool          `help:"Poll once, print the badge and exit non-zero when disconnected"`

	MetricsAddr string `help:"Listen address for the metrics endpoint when monitoring.metrics.enabled is set" default:"127.0.0.1:9464"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	if w.Once {
		client := w.client(cfg)
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Poller.TimeoutDuration()+time.Second)
		defer cancel()
		status, err := foundation.ToTuple(client.Fetch(ctx))
		if err != nil {
			_, _ = fmt.Fprintln(g.Stdout, healthpoll.BadgeDisconnected)
			return err
		}
		_, _ = fmt.Fprintf(g.Stdout, "%s (%s at %s)\n", healthpoll.BadgeConnected, status.Service, status.Timestamp)
		return nil
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	session, err := w.start(ctx, g, cfg)
	if err != nil {
		return err
	}
	<-ctx.Done()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
	defer stopCancel()
	return session.stop(stopCtx)
}

// watchSession is a running poller with its sinks and optional metrics listener.
type watchSession struct {
	ind     *healthpoll.Indicator
	metrics *metricsServer
	closers []func() error
}

// start opens the configured sinks and begins polling. Metrics are served on
// MetricsAddr when monitoring.metrics.enabled is set.
func (w *WatchCmd) start(ctx context.Context, g *Global, cfg *config.Config) (*watchSession, error) {
	session := &watchSession{}
	fail := func(err error) (*watchSession, error) {
		_ = session.stop(ctx)
		return nil, err
	}
	client := w.client(cfg)

	sinks := []healthpoll.Sink{printSink(g)}
	if cfg.StatusLog.Path != "" {
		store, err := statuslog.Open(cfg.StatusLog.Path)
		if err != nil {
			return fail(err)
		}
		session.closers = append(session.closers, store.Close)
		sinks = append(sinks, store)
	}
	if cfg.Events.NATSURL != "" {
		pub, err := events.NewNATSPublisher(cfg.Events.NATSURL, cfg.Events.Subject)
		if err != nil {
			return fail(err)
		}
		session.closers = append(session.closers, pub.Close)
		sinks = append(sinks, healthpoll.RetryingSink(healthpoll.PublisherSink(pub), retry.FromConfig(cfg.Events.Retry)))
	}

	recorder, reg := newRecorder(cfg)
	if reg != nil {
		ms, err := startMetrics(ctx, w.MetricsAddr, cfg.Monitoring.Metrics.Path, reg)
		if err != nil {
			return fail(err)
		}
		session.metrics = ms
	}

	interval := cfg.Poller.IntervalDuration()
	if w.Interval > 0 {
		interval = w.Interval
	}
	session.ind = healthpoll.NewIndicator(client,
		healthpoll.WithInterval(interval),
		healthpoll.WithSinks(sinks...),
		healthpoll.WithRecorder(recorder),
		healthpoll.WithLogger(slog.Default()),
	)
	if err := session.ind.Start(ctx); err != nil {
		session.ind = nil
		return fail(err)
	}
	slog.Info("Watching API health",
		logfields.URL(client.URL()),
		slog.Duration("interval", interval))
	return session, nil
}

// stop halts polling, then shuts the metrics listener and closes the sinks.
func (s *watchSession) stop(ctx context.Context) error {
	var errs []error
	if s.ind != nil {
		errs = append(errs, s.ind.Stop())
	}
	if s.metrics != nil {
		errs = append(errs, s.metrics.Stop(ctx))
	}
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i]())
	}
	return stderrors.Join(errs...)
}

func (w *WatchCmd) client(cfg *config.Config) *healthpoll.Client {
	base := cfg.Poller.APIURL
	if w.URL != "" {
		base = w.URL
	}
	return healthpoll.NewClient(base,
		healthpoll.WithTimeout(cfg.Poller.TimeoutDuration()),
		healthpoll.WithHealthPath(cfg.Monitoring.Health.Path))
}

// printSink writes each transition as a badge line.
func printSink(g *Global) healthpoll.Sink {
	return healthpoll.SinkFunc(func(_ context.Context, t events.Transition) error {
		badge := healthpoll.BadgeDisconnected
		if t.Connected {
			badge = healthpoll.BadgeConnected
		}
		_, err := fmt.Fprintf(g.Stdout, "%s  %s\n", t.At.Format(time.RFC3339), badge)
		return err
	})
}
