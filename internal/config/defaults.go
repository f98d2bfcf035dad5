package config

import (
	"math"

	"github.com/matttelliott/bookmarker-ai/internal/health"
)

const (
	DefaultPort            = 3000
	DefaultAPIURL          = "http://localhost:3000"
	DefaultPollInterval    = "30s"
	DefaultPollTimeout     = "5s"
	DefaultShutdownTimeout = "10s"
	DefaultHealthPath      = "/health"
	DefaultMetricsPath     = "/metrics"
	DefaultEventsSubject   = "bookmarker.health.transitions"
	DefaultRetryInitial    = "1s"
	DefaultRetryMax        = "30s"
	DefaultPublishRetries  = 2
)

// DefaultCORSOrigins are the local frontend dev servers.
var DefaultCORSOrigins = []string{"http://localhost:4200", "http://localhost:4201"}

func applyDefaults(cfg *Config) {
	if cfg.Environment == "" {
		cfg.Environment = EnvDevelopment
	}

	s := &cfg.Server
	if s.Port == 0 {
		s.Port = DefaultPort
	}
	if s.ServiceName == "" {
		s.ServiceName = health.DefaultServiceName
	}
	if s.CORSOrigins == nil {
		s.CORSOrigins = append([]string(nil), DefaultCORSOrigins...)
	}
	if s.RateLimit.RPS > 0 && s.RateLimit.Burst == 0 {
		s.RateLimit.Burst = int(math.Ceil(s.RateLimit.RPS))
	}
	if s.ShutdownTimeout == "" {
		s.ShutdownTimeout = DefaultShutdownTimeout
	}

	m := &cfg.Monitoring
	if m.Health.Path == "" {
		m.Health.Path = DefaultHealthPath
	}
	if m.Metrics.Path == "" {
		m.Metrics.Path = DefaultMetricsPath
	}
	if m.Logging.Level == "" {
		m.Logging.Level = LogLevelInfo
	}
	if m.Logging.Format == "" {
		m.Logging.Format = LogFormatText
	}

	p := &cfg.Poller
	if p.APIURL == "" {
		p.APIURL = DefaultAPIURL
	}
	if p.Interval == "" {
		p.Interval = DefaultPollInterval
	}
	if p.Timeout == "" {
		p.Timeout = DefaultPollTimeout
	}

	if cfg.Events.Subject == "" {
		cfg.Events.Subject = DefaultEventsSubject
	}
	r := &cfg.Events.Retry
	if r.Backoff == "" {
		r.Backoff = RetryBackoffLinear
	}
	if r.InitialDelay == "" {
		r.InitialDelay = DefaultRetryInitial
	}
	if r.MaxDelay == "" {
		r.MaxDelay = DefaultRetryMax
	}
}

// seed returns the pre-unmarshal config; fields whose zero value is meaningful
// get their defaults here so an explicit zero in the file survives.
func seed() *Config {
	cfg := &Config{Version: CurrentVersion}
	cfg.Events.Retry.MaxRetries = DefaultPublishRetries
	return cfg
}
