package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/activities-client/internal/api/handler"
	"github.com/mcoot/activities-client/internal/api/middleware"
	"github.com/mcoot/activities-client/internal/services/auth"
	"github.com/mcoot/activities-client/internal/services/catalog"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger      *slog.Logger
	AuthService *auth.Service
	Catalog     *catalog.Service
}

// NewRouter creates the activities API router
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	// Activity names arrive path-escaped and may contain '/'
	r.UseEncodedPath()

	authHandler := handler.NewAuthHandler(cfg.AuthService, cfg.Logger)
	activityHandler := handler.NewActivityHandler(cfg.Catalog)

	authMiddleware := middleware.Auth(cfg.AuthService)
	optionalAuthMiddleware := middleware.OptionalAuth(cfg.AuthService)

	r.Use(middleware.Logging(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Logger))

	r.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	r.Handle("/auth/logout", authMiddleware(http.HandlerFunc(authHandler.Logout))).Methods(http.MethodPost)

	r.HandleFunc("/activities", activityHandler.List).Methods(http.MethodGet)
	r.Handle("/activities/{name}/signup", optionalAuthMiddleware(http.HandlerFunc(activityHandler.Signup))).Methods(http.MethodPost)
	r.Handle("/activities/{name}/unregister", authMiddleware(http.HandlerFunc(activityHandler.Unregister))).Methods(http.MethodDelete)

	r.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
