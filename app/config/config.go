//nolint:mnd //no magic number
package config

import (
	"fmt"
	"log/slog"

	"github.com/xdoubleu/essentia/v2/pkg/config"
)

const (
	DevEnv  = config.DevEnv
	ProdEnv = config.ProdEnv
	TestEnv = config.TestEnv
)

// Config holds the runtime settings of the service.
type Config struct {
	Env            string
	Port           int
	DBName         string
	LogLevel       slog.Level
	AllowedOrigins []string
	Throttle       bool
	RateLimit      float64
	RateBurst      int
	SentryDsn      string
	SampleRate     float64
	Release        string
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first when present. Values that can't be
// parsed cause a panic.
func Load(logger *slog.Logger) Config {
	var cfg Config

	parser := config.New(logger)

	cfg.Env = parser.EnvStr("ENV", config.DevEnv)
	cfg.Port = parser.EnvInt("PORT", 8080)
	cfg.DBName = parser.EnvStr("DB_NAME", "TodoList")
	cfg.LogLevel = envLevel(parser, "LOG_LEVEL", slog.LevelInfo)
	cfg.AllowedOrigins = parser.EnvStrArray("ALLOWED_ORIGINS", []string{"*"})
	cfg.Throttle = parser.EnvBool("THROTTLE", false)
	cfg.RateLimit = parser.EnvFloat("RATE_LIMIT", 10)
	cfg.RateBurst = parser.EnvInt("RATE_BURST", 20)
	cfg.SentryDsn = parser.EnvStr("SENTRY_DSN", "")
	cfg.SampleRate = parser.EnvFloat("SAMPLE_RATE", 1.0)
	cfg.Release = parser.EnvStr("RELEASE", "dev")

	return cfg
}

// IsDevelopment reports whether development-only routes should be served.
func (cfg Config) IsDevelopment() bool {
	return cfg.Env == DevEnv
}

func envLevel(parser config.Parser, key string, defaultValue slog.Level) slog.Level {
	value := parser.EnvStr(key, defaultValue.String())

	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		panic(fmt.Sprintf("can't convert env var '%s' with value '%s' to slog.Level", key, value))
	}
	return level
}
