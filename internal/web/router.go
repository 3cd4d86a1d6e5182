package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/activities-client/internal/services/page"
	"github.com/mcoot/activities-client/internal/web/handler"
	"github.com/mcoot/activities-client/internal/web/middleware"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger *slog.Logger
	Page   *page.Controller
}

// NewRouter creates the portal router
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Apply global middleware to all routes
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Logger))

	homeHandler := handler.NewHomeHandler(cfg.Page, cfg.Logger)
	actionHandler := handler.NewActionHandler(cfg.Page, cfg.Logger)

	r.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)
	r.HandleFunc("/login", actionHandler.Login).Methods(http.MethodPost)
	r.HandleFunc("/logout", actionHandler.Logout).Methods(http.MethodPost)
	r.HandleFunc("/signup", actionHandler.Signup).Methods(http.MethodPost)
	r.HandleFunc("/unregister", actionHandler.Unregister).Methods(http.MethodPost)
	r.HandleFunc("/healthz", handler.Health).Methods(http.MethodGet)

	return r
}
