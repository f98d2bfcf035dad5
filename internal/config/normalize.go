package config

import (
	"fmt"
	"strings"
)

// normalize canonicalizes enumerations in place and returns warnings for
// values that fell back to a default. Unknown environments are left for
// Validate to reject.
func normalize(cfg *Config) []string {
	var warnings []string

	if raw := string(cfg.Environment); raw != "" {
		if res := environmentNormalizer.Parse(raw); res.IsSuccess() {
			cfg.Environment = res.DangerouslyUnwrap()
		}
	}

	logging := &cfg.Monitoring.Logging
	if raw := string(logging.Level); raw != "" {
		if logLevelNormalizer.Parse(raw).IsFailure() {
			warnings = append(warnings, fmt.Sprintf("unknown log level %q, using %s", raw, LogLevelInfo))
		}
		logging.Level = NormalizeLogLevel(raw)
	}
	if raw := string(logging.Format); raw != "" {
		if logFormatNormalizer.Parse(raw).IsFailure() {
			warnings = append(warnings, fmt.Sprintf("unknown log format %q, using %s", raw, LogFormatText))
		}
		logging.Format = NormalizeLogFormat(raw)
	}

	retry := &cfg.Events.Retry
	if raw := string(retry.Backoff); raw != "" {
		if retryBackoffNormalizer.Parse(raw).IsFailure() {
			warnings = append(warnings, fmt.Sprintf("unknown retry backoff %q, using %s", raw, RetryBackoffLinear))
		}
		retry.Backoff = NormalizeRetryBackoff(raw)
	}

	cfg.Poller.APIURL = strings.TrimRight(strings.TrimSpace(cfg.Poller.APIURL), "/")
	for i, origin := range cfg.Server.CORSOrigins {
		cfg.Server.CORSOrigins[i] = strings.TrimRight(strings.TrimSpace(origin), "/")
	}
	return warnings
}
