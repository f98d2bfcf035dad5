package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifiedError(t *testing.T) {
	t.Run("fields and context", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "bookmarker.yaml").
			Build()

		assert.Equal(t, CategoryConfig, err.Category())
		assert.Equal(t, SeverityFatal, err.Severity())
		assert.Equal(t, "invalid configuration", err.Message())
		assert.Equal(t, "[config:fatal] invalid configuration", err.Error())

		file, ok := err.Context().GetString("file")
		require.True(t, ok)
		assert.Equal(t, "bookmarker.yaml", file)
	})

	t.Run("detection through wrapping", func(t *testing.T) {
		err := ConfigError("bad port").Build()
		wrapped := fmt.Errorf("loading: %w", err)

		got, ok := AsClassified(wrapped)
		require.True(t, ok)
		assert.Same(t, err, got)
		assert.True(t, HasCategory(wrapped, CategoryConfig))
		assert.False(t, err.CanRetry())
		assert.True(t, err.IsFatal())
		assert.Equal(t, CategoryInternal, GetCategory(errors.New("plain")))
	})

	t.Run("WithContext copies", func(t *testing.T) {
		base := NewError(CategoryStorage, "write failed").Build()
		derived := base.WithContext("table", "transitions")

		_, ok := base.Context().Get("table")
		assert.False(t, ok)
		v, _ := derived.Context().GetString("table")
		assert.Equal(t, "transitions", v)
	})
}

func TestErrorBuilder(t *testing.T) {
	originalErr := errors.New("connection refused")
	err := WrapError(originalErr, CategoryNetwork, "health check failed").
		Warning().
		Retryable().
		WithContext("host", "localhost").
		WithContext("port", 3000).
		Build()

	assert.Equal(t, CategoryNetwork, err.Category())
	assert.Equal(t, SeverityWarning, err.Severity())
	assert.Equal(t, RetryBackoff, err.RetryStrategy())
	assert.ErrorIs(t, err, originalErr)
	assert.Equal(t, "[network:warning] health check failed: connection refused", err.Error())
	port, _ := err.Context().Get("port")
	assert.Equal(t, 3000, port)
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *ClassifiedError
		category ErrorCategory
		retry    bool
	}{
		{"config", ConfigError("x").Build(), CategoryConfig, false},
		{"validation", ValidationError("x").Build(), CategoryValidation, false},
		{"not found", NotFoundError("bookmark").Build(), CategoryNotFound, false},
		{"rate limit", RateLimitError("x").Build(), CategoryRateLimit, true},
		{"network", NetworkError("x").Build(), CategoryNetwork, true},
		{"upstream", UpstreamError("x").Build(), CategoryUpstream, true},
		{"messaging", MessagingError("x").Build(), CategoryMessaging, true},
		{"storage", StorageError("x").Build(), CategoryStorage, false},
		{"internal", InternalError("x").Build(), CategoryInternal, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.category, tt.err.Category())
			assert.Equal(t, tt.retry, tt.err.CanRetry())
		})
	}
}

func TestCategoryMappings(t *testing.T) {
	assert.Equal(t, 500, ErrorCategory("unknown").HTTPStatus())
	assert.Equal(t, 1, ErrorCategory("unknown").ExitCode())
	assert.Equal(t, slog.LevelWarn, SeverityWarning.Level())
	assert.Equal(t, slog.LevelError, SeverityFatal.Level())
}
