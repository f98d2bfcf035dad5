// Package config loads and validates the bookmarker configuration file.
package config

import "time"

// CurrentVersion is the only configuration file version Load accepts.
const CurrentVersion = "1.0"

// Config is the bookmarker configuration file.
type Config struct {
	Version     string           `yaml:"version"`
	Environment Environment      `yaml:"environment"`
	Server      ServerConfig     `yaml:"server"`
	Monitoring  MonitoringConfig `yaml:"monitoring"`
	Poller      PollerConfig     `yaml:"poller"`
	Events      EventsConfig     `yaml:"events"`
	StatusLog   StatusLogConfig  `yaml:"statuslog"`
}

// ServerConfig configures the API server.
type ServerConfig struct {
	Host            string          `yaml:"host"`
	Port            int             `yaml:"port"`
	ServiceName     string          `yaml:"service_name"`
	CORSOrigins     []string        `yaml:"cors_origins"`
	RateLimit       RateLimitConfig `yaml:"rate_limit"`
	ShutdownTimeout string          `yaml:"shutdown_timeout"`
}

// RateLimitConfig configures the global token bucket. RPS <= 0 disables it.
type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// MonitoringConfig represents monitoring and observability configuration
type MonitoringConfig struct {
	Metrics MonitoringMetrics `yaml:"metrics"`
	Health  MonitoringHealth  `yaml:"health"`
	Logging MonitoringLogging `yaml:"logging"`
}

// MonitoringMetrics represents metrics configuration
type MonitoringMetrics struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// MonitoringHealth represents health check configuration
type MonitoringHealth struct {
	Path string `yaml:"path"`
}

// MonitoringLogging represents logging configuration
type MonitoringLogging struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// PollerConfig configures the health poller used by watch.
type PollerConfig struct {
	APIURL   string `yaml:"api_url"`
	Interval string `yaml:"interval"`
	Timeout  string `yaml:"timeout"`
}

// EventsConfig configures connection transition publishing. An empty NATSURL disables it.
type EventsConfig struct {
	NATSURL string      `yaml:"nats_url"`
	Subject string      `yaml:"subject"`
	Retry   RetryConfig `yaml:"retry"`
}

// StatusLogConfig configures the SQLite transition history. An empty Path disables it.
type StatusLogConfig struct {
	Path string `yaml:"path"`
}

// IntervalDuration returns the parsed poll interval. Call after Load.
func (p PollerConfig) IntervalDuration() time.Duration { return mustDuration(p.Interval) }

// TimeoutDuration returns the parsed per-request timeout. Call after Load.
func (p PollerConfig) TimeoutDuration() time.Duration { return mustDuration(p.Timeout) }

// ShutdownDuration returns the parsed graceful shutdown timeout. Call after Load.
func (s ServerConfig) ShutdownDuration() time.Duration { return mustDuration(s.ShutdownTimeout) }

// CORSEnabled reports whether cross-origin requests are allowed.
func (c *Config) CORSEnabled() bool {
	return c.Environment != EnvProduction && len(c.Server.CORSOrigins) > 0
}

// mustDuration parses a duration already checked by validation; zero on failure.
func mustDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0
	}
	return d
}
