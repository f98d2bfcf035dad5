package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	derrors "github.com/matttelliott/bookmarker-ai/internal/foundation/errors"
)

// Load reads the configuration at path, expands ${VAR} references, applies
// PORT and APP_ENV overrides, then normalizes, defaults and validates it.
// An empty path yields the defaults plus environment overrides.
func Load(path string) (*Config, error) {
	if err := loadEnvFiles(envFiles...); err != nil {
		slog.Warn("Could not load environment file", slog.String("error", err.Error()))
	}

	cfg := seed()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, derrors.ConfigError("configuration file not found").
					WithCause(err).
					WithContext("path", path).
					Build()
			}
			return nil, derrors.WrapError(err, derrors.CategoryFileSystem, "failed to read config file").
				WithContext("path", path).
				Build()
		}
		if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
			return nil, derrors.ConfigError("failed to parse config file").
				WithCause(err).
				WithContext("path", path).
				Build()
		}
	}

	if cfg.Version != CurrentVersion {
		return nil, configErr("unsupported configuration version (expected "+CurrentVersion+")", "version", cfg.Version)
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	for _, w := range normalize(cfg) {
		slog.Warn("config normalization", slog.String("warning", w))
	}
	applyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns a validated configuration built from defaults only.
func Default() *Config {
	cfg := seed()
	applyDefaults(cfg)
	return cfg
}

func configErr(message, field string, value any) error {
	return derrors.ConfigError(message).
		WithContext("field", field).
		WithContext("value", value).
		Build()
}
