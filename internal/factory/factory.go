package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/mcoot/activities-client/internal/apiclient"
	"github.com/mcoot/activities-client/internal/dependencies/clock"
	"github.com/mcoot/activities-client/internal/services/dispatch"
	"github.com/mcoot/activities-client/internal/services/notifier"
	"github.com/mcoot/activities-client/internal/services/page"
	"github.com/mcoot/activities-client/internal/services/roster"
	"github.com/mcoot/activities-client/internal/services/session"
	"github.com/mcoot/activities-client/internal/storage"
	"github.com/mcoot/activities-client/internal/storage/file"
	"github.com/mcoot/activities-client/internal/storage/memory"
	redisstorage "github.com/mcoot/activities-client/internal/storage/redis"
	"github.com/mcoot/activities-client/internal/storage/sqlite"
)

// Store type constants
const (
	StoreTypeMemory = "memory"
	StoreTypeFile   = "file"
	StoreTypeSQLite = "sqlite"
	StoreTypeRedis  = "redis"
)

// App contains all wired client components
type App struct {
	Store storage.CredentialStore
	Clock clock.Clock

	Client     *apiclient.Client
	Notifier   *notifier.Service
	Sessions   *session.Service
	Roster     *roster.Service
	Dispatcher *dispatch.Service
	Page       *page.Controller
}

// Config holds configuration for the client factory
type Config struct {
	// ServerURL is the activities service root, e.g. http://localhost:8000
	ServerURL string
	// StoreType selects the credential store ("memory", "file", "sqlite" or "redis")
	// If empty, defaults to "memory"
	StoreType string
	// StorePath is the file or database path for the file and sqlite stores
	// If empty, the file store uses file.DefaultPath()
	StorePath string
	// RedisConfig holds Redis connection settings (required if StoreType is "redis")
	RedisConfig *redisstorage.Config
	// RequestTimeout bounds each request (optional)
	RequestTimeout time.Duration
	// NotificationTTL is how long notifications stay visible (optional)
	NotificationTTL time.Duration
	// HTTPClient replaces the default transport (optional)
	HTTPClient *http.Client
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
}

// New creates a client with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	if cfg.ServerURL == "" {
		return nil, errors.New("ServerURL is required")
	}

	store, err := NewStore(cfg)
	if err != nil {
		return nil, err
	}

	opts := []apiclient.Option{apiclient.WithLogger(logger)}
	if cfg.HTTPClient != nil {
		opts = append(opts, apiclient.WithHTTPClient(cfg.HTTPClient))
	}
	if cfg.RequestTimeout > 0 {
		opts = append(opts, apiclient.WithTimeout(cfg.RequestTimeout))
	}
	client := apiclient.New(cfg.ServerURL, opts...)

	return newWithDependencies(store, client, clock.New(), cfg.NotificationTTL, logger), nil
}

// NewStore opens the credential store selected by cfg
func NewStore(cfg Config) (storage.CredentialStore, error) {
	storeType := cfg.StoreType
	if storeType == "" {
		storeType = StoreTypeMemory
	}

	switch storeType {
	case StoreTypeMemory:
		return memory.New(), nil
	case StoreTypeFile:
		path := cfg.StorePath
		if path == "" {
			path = file.DefaultPath()
		}
		return file.New(path), nil
	case StoreTypeSQLite:
		if cfg.StorePath == "" {
			return nil, errors.New("StorePath required when StoreType is sqlite")
		}
		return sqlite.Open(cfg.StorePath)
	case StoreTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StoreType is redis")
		}
		return redisstorage.New(*cfg.RedisConfig)
	default:
		return nil, fmt.Errorf("invalid StoreType %q: must be one of memory, file, sqlite, redis", storeType)
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.CredentialStore, client *apiclient.Client, clk clock.Clock, ttl time.Duration, logger *slog.Logger) *App {
	notifierService := notifier.New(clk, ttl, logger)
	sessionService := session.New(store, client, notifierService, logger)
	rosterService := roster.New(client, sessionService, logger)
	dispatcher := dispatch.New(client, sessionService, rosterService, notifierService, logger)
	controller := page.NewController(sessionService, rosterService, dispatcher, notifierService, logger)

	return &App{
		Store:      store,
		Clock:      clk,
		Client:     client,
		Notifier:   notifierService,
		Sessions:   sessionService,
		Roster:     rosterService,
		Dispatcher: dispatcher,
		Page:       controller,
	}
}

// Close releases the credential store
func (a *App) Close() error {
	return a.Store.Close()
}
