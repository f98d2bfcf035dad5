package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	derrors "github.com/matttelliott/bookmarker-ai/internal/foundation/errors"
)

// Validate checks a normalized, defaulted configuration and reports every problem at once.
func Validate(cfg *Config) error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if cfg.Version != CurrentVersion {
		add("version: unsupported %q", cfg.Version)
	}
	if !environmentNormalizer.IsValid(cfg.Environment) {
		add("environment: %q is not one of %s", cfg.Environment, strings.Join(environmentNormalizer.ValidKeys(), ", "))
	}

	s := cfg.Server
	if s.Port < 1 || s.Port > 65535 {
		add("server.port: %d out of range 1-65535", s.Port)
	}
	if s.RateLimit.RPS < 0 || s.RateLimit.Burst < 0 {
		add("server.rate_limit: rps and burst must not be negative")
	}
	checkDuration(add, "server.shutdown_timeout", s.ShutdownTimeout)
	for _, origin := range s.CORSOrigins {
		if !isHTTPURL(origin) {
			add("server.cors_origins: %q is not an http(s) origin", origin)
		}
	}

	m := cfg.Monitoring
	if !strings.HasPrefix(m.Health.Path, "/") {
		add("monitoring.health.path: %q must start with /", m.Health.Path)
	}
	if m.Metrics.Enabled {
		if !strings.HasPrefix(m.Metrics.Path, "/") {
			add("monitoring.metrics.path: %q must start with /", m.Metrics.Path)
		}
		if m.Metrics.Path == m.Health.Path {
			add("monitoring.metrics.path: collides with health path %q", m.Health.Path)
		}
	}

	if !isHTTPURL(cfg.Poller.APIURL) {
		add("poller.api_url: %q is not an absolute http(s) URL", cfg.Poller.APIURL)
	}
	checkDuration(add, "poller.interval", cfg.Poller.Interval)
	checkDuration(add, "poller.timeout", cfg.Poller.Timeout)

	if cfg.Events.NATSURL != "" && strings.TrimSpace(cfg.Events.Subject) == "" {
		add("events.subject: required when events.nats_url is set")
	}
	checkDuration(add, "events.retry.initial_delay", cfg.Events.Retry.InitialDelay)
	checkDuration(add, "events.retry.max_delay", cfg.Events.Retry.MaxDelay)
	if cfg.Events.Retry.MaxRetries < 0 {
		add("events.retry.max_retries: cannot be negative")
	}

	if len(problems) == 0 {
		return nil
	}
	return derrors.ConfigError("configuration validation failed: " + strings.Join(problems, "; ")).
		WithContext("problems", problems).
		Build()
}

func checkDuration(add func(string, ...any), field, raw string) {
	d, err := time.ParseDuration(raw)
	if err != nil {
		add("%s: invalid duration %q", field, raw)
		return
	}
	if d <= 0 {
		add("%s: must be positive", field)
	}
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
