package observability

import (
	"strings"

	appconfig "github.com/smallbiznis/backoffice/internal/config"
)

// Config carries the observability knobs derived from app config and env.
type Config struct {
	ServiceName string
	Environment string
	Version     string
	LogLevel    string
	LogFormat   string
}

func LoadConfig(cfg appconfig.Config) Config {
	return Config{
		ServiceName: cfg.AppName,
		Environment: cfg.Environment,
		Version:     cfg.AppVersion,
		LogLevel:    envOr("LOG_LEVEL", "info"),
		LogFormat:   envOr("LOG_FORMAT", "json"),
	}
}

func (c Config) Debug() bool {
	return strings.EqualFold(c.Environment, "development")
}
