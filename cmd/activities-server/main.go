package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/mcoot/activities-client/internal/api"
	"github.com/mcoot/activities-client/internal/factory"
	"github.com/mcoot/activities-client/internal/services/auth"
)

// config is the development service's environment
type config struct {
	Host      string        `env:"HOST"`
	Port      int           `env:"PORT" envDefault:"8000"`
	JWTSecret string        `env:"JWT_SECRET" envDefault:"dev-secret"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	Staff     string        `env:"STAFF" envDefault:"teacher:teacher"`
	LogLevel  string        `env:"LOG_LEVEL" envDefault:"info"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads and checks the environment
func loadConfig() (*config, slog.Level, error) {
	var cfg config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "ACTIVITIES_SERVER_"}); err != nil {
		return nil, 0, fmt.Errorf("parse environment: %w", err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, 0, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	if cfg.TokenTTL <= 0 {
		return nil, 0, fmt.Errorf("token TTL must be positive, got %s", cfg.TokenTTL)
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		return nil, 0, fmt.Errorf("invalid port %d", cfg.Port)
	}
	return &cfg, level, nil
}

func run() error {
	cfg, level, err := loadConfig()
	if err != nil {
		return err
	}

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	staff, err := auth.ParseStaff(cfg.Staff)
	if err != nil {
		return err
	}

	app, err := factory.NewServer(factory.ServerConfig{
		AuthConfig: auth.Config{Secret: cfg.JWTSecret, TokenTTL: cfg.TokenTTL},
		Staff:      staff,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("create service: %w", err)
	}

	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = cfg.Host
	serverConfig.Port = cfg.Port
	server := api.NewServer(app.Handler, serverConfig, logger)

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go cleanRevoked(ctx, app.Auth, cfg.TokenTTL)

	if err := server.Run(ctx, nil); err != nil {
		return err
	}

	logger.Info("server stopped")
	return nil
}

// cleanRevoked drops revoked tokens that have expired anyway
func cleanRevoked(ctx context.Context, authService *auth.Service, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			authService.CleanRevoked()
		}
	}
}
