package errors

import (
	"log/slog"
	"net/http"
)

// ErrorCategory classifies an error for HTTP status and CLI exit code mapping.
type ErrorCategory string

const (
	// Caller input.
	CategoryConfig        ErrorCategory = "config"
	CategoryValidation    ErrorCategory = "validation"
	CategoryNotFound      ErrorCategory = "not_found"
	CategoryAlreadyExists ErrorCategory = "already_exists"
	CategoryRateLimit     ErrorCategory = "rate_limit"

	// Remote systems: the polled API and the NATS bus.
	CategoryNetwork   ErrorCategory = "network"
	CategoryUpstream  ErrorCategory = "upstream"
	CategoryMessaging ErrorCategory = "messaging"

	// Local persistence.
	CategoryStorage    ErrorCategory = "storage"
	CategoryFileSystem ErrorCategory = "filesystem"

	CategoryRuntime  ErrorCategory = "runtime"
	CategoryInternal ErrorCategory = "internal"
)

type categoryInfo struct {
	status int
	exit   int
}

var categories = map[ErrorCategory]categoryInfo{
	CategoryConfig:        {http.StatusBadRequest, 7},
	CategoryValidation:    {http.StatusBadRequest, 2},
	CategoryNotFound:      {http.StatusNotFound, 3},
	CategoryAlreadyExists: {http.StatusConflict, 4},
	CategoryRateLimit:     {http.StatusTooManyRequests, 8},
	CategoryNetwork:       {http.StatusBadGateway, 8},
	CategoryUpstream:      {http.StatusBadGateway, 8},
	CategoryMessaging:     {http.StatusBadGateway, 8},
	CategoryStorage:       {http.StatusInternalServerError, 11},
	CategoryFileSystem:    {http.StatusInternalServerError, 11},
	CategoryRuntime:       {http.StatusServiceUnavailable, 12},
	CategoryInternal:      {http.StatusInternalServerError, 10},
}

// HTTPStatus is the response status for the category; unknown categories map to 500.
func (c ErrorCategory) HTTPStatus() int {
	if info, ok := categories[c]; ok {
		return info.status
	}
	return http.StatusInternalServerError
}

// ExitCode is the process exit code for the category; unknown categories map to 1.
func (c ErrorCategory) ExitCode() int {
	if info, ok := categories[c]; ok {
		return info.exit
	}
	return 1
}

// ErrorSeverity indicates the impact level of an error.
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops the command
	SeverityError   ErrorSeverity = "error"   // Fails the current operation
	SeverityWarning ErrorSeverity = "warning" // Caller may continue
)

// Level maps the severity onto slog.
func (s ErrorSeverity) Level() slog.Level {
	if s == SeverityWarning {
		return slog.LevelWarn
	}
	return slog.LevelError
}

// RetryStrategy indicates how an error should be handled in retry scenarios.
type RetryStrategy string

const (
	RetryNever      RetryStrategy = "never"      // Permanent failure
	RetryBackoff    RetryStrategy = "backoff"    // Retry with backoff (see internal/retry)
	RetryRateLimit  RetryStrategy = "rate_limit" // Retry after the Retry-After window
	RetryUserAction RetryStrategy = "user"       // Requires user intervention
)

// ErrorContext provides structured context for errors.
type ErrorContext map[string]any

// Get retrieves a context value.
func (c ErrorContext) Get(key string) (any, bool) {
	value, exists := c[key]
	return value, exists
}

// GetString retrieves a string context value.
func (c ErrorContext) GetString(key string) (string, bool) {
	str, ok := c[key].(string)
	return str, ok
}
