// Package commands implements the bookmarker CLI subcommands.
package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/matttelliott/bookmarker-ai/internal/config"
	"github.com/matttelliott/bookmarker-ai/internal/metrics"
)

// Global is shared state bound into every command.
type Global struct {
	Level  *slog.LevelVar
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewGlobal returns process-wide defaults.
func NewGlobal() *Global {
	return &Global{Level: new(slog.LevelVar), Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path (defaults apply when empty)" env:"BOOKMARKER_CONFIG" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Serve    ServeCmd    `cmd:"" help:"Run the API server"`
	Watch    WatchCmd    `cmd:"" help:"Poll the API health endpoint and report the connection badge"`
	History  HistoryCmd  `cmd:"" help:"Show recorded connection transitions"`
	Validate ValidateCmd `cmd:"" help:"Validate a JSON document against an entity schema"`
	Init     InitCmd     `cmd:"" help:"Write an example configuration file"`
}

// AfterApply runs after flag parsing; set up logging once.
func (c *CLI) AfterApply(g *Global) error {
	if c.Verbose {
		g.Level.Set(slog.LevelDebug)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(g.Stderr, &slog.HandlerOptions{Level: g.Level})))
	return nil
}

// loadConfig loads the configured file and applies its logging section.
func (c *CLI) loadConfig(g *Global) (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	g.applyLogging(cfg, c.Verbose)
	return cfg, nil
}

// applyLogging switches level and format to the config values; --verbose
// keeps debug regardless. Level changes take effect on existing loggers.
func (g *Global) applyLogging(cfg *config.Config, verbose bool) {
	level := cfg.Monitoring.Logging.Level.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	g.Level.Set(level)

	opts := &slog.HandlerOptions{Level: g.Level}
	var handler slog.Handler = slog.NewTextHandler(g.Stderr, opts)
	if cfg.Monitoring.Logging.Format == config.LogFormatJSON {
		handler = slog.NewJSONHandler(g.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// newRecorder returns a Prometheus recorder and registry when metrics are
// enabled, otherwise a NoopRecorder and nil.
func newRecorder(cfg *config.Config) (metrics.Recorder, *prom.Registry) {
	if !cfg.Monitoring.Metrics.Enabled {
		return metrics.NoopRecorder{}, nil
	}
	reg := metrics.NewRegistry()
	return metrics.NewPrometheusRecorder(reg), reg
}
