package handler

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/activities-client/internal/services/page"
	"github.com/mcoot/activities-client/internal/web/templates/layout"
	"github.com/mcoot/activities-client/internal/web/templates/pages"
)

const pageTitle = "Mergington High School Activities"

// HomeHandler renders the portal page
type HomeHandler struct {
	page   *page.Controller
	logger *slog.Logger
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(controller *page.Controller, logger *slog.Logger) *HomeHandler {
	return &HomeHandler{page: controller, logger: logger}
}

// Home renders the current page state. Every load re-fetches the roster,
// like reloading the browser page would.
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	state := h.page.Refresh(r.Context())
	render(w, r, h.logger, state)
}

func render(w http.ResponseWriter, r *http.Request, logger *slog.Logger, state page.State) {
	data := pages.HomeData{
		PageData: layout.PageData{
			Title:        pageTitle,
			Session:      state.Session,
			LoginError:   state.LoginError,
			Notification: state.Notification,
		},
		Roster: state.Roster,
		Form:   state.Form,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.Home(data).Render(r.Context(), w); err != nil {
		logger.Error("render page", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// Health handles GET /healthz
func Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}
