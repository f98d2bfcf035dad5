package errors

import (
	"bytes"
	stdErrors "errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, 0},
		{"validation", ValidationError("bad input").Build(), 2},
		{"not found", NotFoundError("file").Build(), 3},
		{"already exists", NewError(CategoryAlreadyExists, "config exists").Build(), 4},
		{"config", ConfigError("bad config").Build(), 7},
		{"filesystem", NewError(CategoryFileSystem, "read failed").Build(), 11},
		{"runtime", NewError(CategoryRuntime, "bind failed").Build(), 12},
		{"upstream", UpstreamError("api down").Build(), 8},
		{"storage", StorageError("disk").Build(), 11},
		{"internal", InternalError("boom").Build(), 10},
		{"unclassified", stdErrors.New("plain"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, adapter.ExitCodeFor(tt.err))
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	quiet := NewCLIErrorAdapter(false, slog.Default())
	verbose := NewCLIErrorAdapter(true, slog.Default())

	err := ValidationError("username too short").Build()
	assert.Equal(t, "Error: username too short", quiet.FormatError(err))
	assert.Equal(t, err.Error(), verbose.FormatError(err))

	internal := InternalError("nil map").Build()
	assert.Contains(t, quiet.FormatError(internal), "use -v for details")
	assert.Equal(t, "Error: plain", quiet.FormatError(stdErrors.New("plain")))
	assert.Empty(t, quiet.FormatError(nil))
}

func TestCLIErrorAdapter_HandleError(t *testing.T) {
	var out bytes.Buffer
	var code int
	adapter := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	adapter.out = &out
	adapter.exit = func(c int) { code = c }

	adapter.HandleError(ValidationError("invalid bookmark").Build())

	assert.Equal(t, 2, code)
	assert.Contains(t, out.String(), "invalid bookmark")
}
