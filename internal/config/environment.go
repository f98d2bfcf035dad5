package config

import "github.com/matttelliott/bookmarker-ai/internal/foundation/normalization"

// Environment is the deployment environment, mirrored from APP_ENV.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

var environmentNormalizer = normalization.NewNormalizer("environment", map[string]Environment{
	"development": EnvDevelopment,
	"dev":         EnvDevelopment,
	"production":  EnvProduction,
	"prod":        EnvProduction,
}, EnvDevelopment)

func NormalizeEnvironment(raw string) Environment {
	return environmentNormalizer.Normalize(raw)
}
