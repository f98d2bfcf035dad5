package config

import (
	"errors"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	derrors "github.com/matttelliott/bookmarker-ai/internal/foundation/errors"
)

const exampleHeader = `# bookmarker configuration
# ${VAR} references are expanded from the environment (.env and .env.local are loaded first).
# PORT and APP_ENV override server.port and environment.
`

// Init writes an example configuration file.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return derrors.NewError(derrors.CategoryAlreadyExists, "configuration file already exists (use --force to overwrite)").
			WithContext("path", path).
			UserAction().
			Build()
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return derrors.WrapError(err, derrors.CategoryFileSystem, "failed to stat config file").
			WithContext("path", path).
			Build()
	}

	example := Default()
	example.Server.RateLimit = RateLimitConfig{RPS: 20, Burst: 40}
	example.Events.NATSURL = "${NATS_URL}"
	example.StatusLog.Path = "bookmarker-status.db"

	data, err := yaml.Marshal(example)
	if err != nil {
		return derrors.InternalError("failed to marshal example config").WithCause(err).Build()
	}
	if err := os.WriteFile(path, append([]byte(exampleHeader), data...), 0o600); err != nil {
		return derrors.WrapError(err, derrors.CategoryFileSystem, "failed to write config file").
			WithContext("path", path).
			Build()
	}
	return nil
}
