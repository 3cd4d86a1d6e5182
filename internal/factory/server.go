package factory

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/mcoot/activities-client/internal/api"
	"github.com/mcoot/activities-client/internal/dependencies/clock"
	"github.com/mcoot/activities-client/internal/model"
	"github.com/mcoot/activities-client/internal/services/auth"
	"github.com/mcoot/activities-client/internal/services/catalog"
)

// ServerApp is the development activities service
type ServerApp struct {
	Clock   clock.Clock
	Auth    *auth.Service
	Catalog *catalog.Service
	Handler http.Handler
}

// ServerConfig holds configuration for the development service
type ServerConfig struct {
	// AuthConfig holds token settings (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Staff are the accounts allowed to log in
	Staff []auth.Staff
	// Activities seeds the directory (optional)
	// If nil, catalog.DefaultActivities() is used
	Activities []model.Activity
	// Clock overrides the real clock (optional)
	Clock clock.Clock
	// Logger is the server logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
}

// NewServer creates the development service with all dependencies wired
func NewServer(cfg ServerConfig) (*ServerApp, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	authService := auth.New(clk, cfg.AuthConfig)
	for _, staff := range cfg.Staff {
		if err := authService.AddStaff(staff.Username, staff.Password); err != nil {
			return nil, err
		}
	}

	activities := cfg.Activities
	if activities == nil {
		activities = catalog.DefaultActivities()
	}
	catalogService := catalog.New(activities, logger)

	router := api.NewRouter(api.RouterConfig{
		Logger:      logger,
		AuthService: authService,
		Catalog:     catalogService,
	})

	return &ServerApp{
		Clock:   clk,
		Auth:    authService,
		Catalog: catalogService,
		Handler: router,
	}, nil
}
