package config

import (
	"time"

	"github.com/matttelliott/bookmarker-ai/internal/foundation/normalization"
)

// RetryBackoffMode enumerates supported backoff strategies.
type RetryBackoffMode string

const (
	RetryBackoffFixed       RetryBackoffMode = "fixed"
	RetryBackoffLinear      RetryBackoffMode = "linear"
	RetryBackoffExponential RetryBackoffMode = "exponential"
)

var retryBackoffNormalizer = normalization.NewNormalizer("retry backoff", map[string]RetryBackoffMode{
	"fixed":       RetryBackoffFixed,
	"linear":      RetryBackoffLinear,
	"exponential": RetryBackoffExponential,
}, RetryBackoffLinear)

func NormalizeRetryBackoff(raw string) RetryBackoffMode {
	return retryBackoffNormalizer.Normalize(raw)
}

// RetryConfig configures redelivery of transitions that failed to publish.
type RetryConfig struct {
	Backoff      RetryBackoffMode `yaml:"backoff"`
	InitialDelay string           `yaml:"initial_delay"`
	MaxDelay     string           `yaml:"max_delay"`
	MaxRetries   int              `yaml:"max_retries"`
}

// InitialDuration returns the parsed first retry delay. Call after Load.
func (r RetryConfig) InitialDuration() time.Duration { return mustDuration(r.InitialDelay) }

// MaxDuration returns the parsed delay cap. Call after Load.
func (r RetryConfig) MaxDuration() time.Duration { return mustDuration(r.MaxDelay) }
