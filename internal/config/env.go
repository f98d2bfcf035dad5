package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// envFiles are loaded in order; earlier files and the process environment win.
var envFiles = []string{".env", ".env.local"}

// loadEnvFiles loads .env style files next to the working directory.
// Existing process environment variables are never overwritten.
func loadEnvFiles(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
		slog.Debug("Loaded environment file", slog.String("path", p))
	}
	return nil
}

// applyEnvOverrides applies PORT and APP_ENV on top of the file values.
func applyEnvOverrides(cfg *Config) error {
	if raw, ok := os.LookupEnv("PORT"); ok && raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			return configErr("PORT must be an integer", "PORT", raw)
		}
		cfg.Server.Port = port
	}
	if raw, ok := os.LookupEnv("APP_ENV"); ok && raw != "" {
		cfg.Environment = Environment(raw)
	}
	return nil
}
