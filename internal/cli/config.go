package cli

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/mcoot/activities-client/internal/factory"
	redisstorage "github.com/mcoot/activities-client/internal/storage/redis"
)

// Config holds CLI configuration. Environment variables set the defaults;
// flags override them.
type Config struct {
	ServerURL       string        `env:"ACTIVITIES_SERVER" envDefault:"http://localhost:8000"`
	Store           string        `env:"ACTIVITIES_STORE" envDefault:"file"`
	StorePath       string        `env:"ACTIVITIES_STORE_PATH"`
	RedisURL        string        `env:"ACTIVITIES_REDIS_URL" envDefault:"redis://localhost:6379"`
	RequestTimeout  time.Duration `env:"ACTIVITIES_REQUEST_TIMEOUT" envDefault:"30s"`
	NotificationTTL time.Duration `env:"ACTIVITIES_NOTIFICATION_TTL" envDefault:"5s"`
	Output          string        `env:"ACTIVITIES_OUTPUT" envDefault:"text"`
	LogLevel        string        `env:"ACTIVITIES_LOG_LEVEL" envDefault:"warn"`
	Verbose         bool
}

// LoadConfig reads the configuration from the environment
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate checks values flags and the environment may have got wrong
func (c *Config) Validate() error {
	switch c.Output {
	case "text", "json":
	default:
		return fmt.Errorf("invalid output format %q: must be text or json", c.Output)
	}
	if _, err := c.level(); err != nil {
		return err
	}
	return nil
}

// FactoryConfig converts the CLI configuration for the client factory
func (c *Config) FactoryConfig(logger *slog.Logger) factory.Config {
	fc := factory.Config{
		ServerURL:       c.ServerURL,
		StoreType:       c.Store,
		StorePath:       c.StorePath,
		RequestTimeout:  c.RequestTimeout,
		NotificationTTL: c.NotificationTTL,
		Logger:          logger,
	}
	if c.Store == factory.StoreTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = c.RedisURL
		fc.RedisConfig = &redisCfg
	}
	return fc
}

// level is the log level, with --verbose forcing debug
func (c *Config) level() (slog.Level, error) {
	if c.Verbose {
		return slog.LevelDebug, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return level, nil
}
