package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/mcoot/activities-client/internal/services/page"
)

// ActionHandler binds form posts to page intents. Each post redirects back
// to the page, which shows the outcome.
type ActionHandler struct {
	page   *page.Controller
	logger *slog.Logger
}

// NewActionHandler creates a new ActionHandler
func NewActionHandler(controller *page.Controller, logger *slog.Logger) *ActionHandler {
	return &ActionHandler{page: controller, logger: logger}
}

// Login handles POST /login
func (h *ActionHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}

	// The error text is part of the page state
	_ = h.page.SubmitLogin(r.Context(), r.FormValue("username"), r.FormValue("password"))
	backToPage(w, r)
}

// Logout handles POST /logout
func (h *ActionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.page.ClickLogout(r.Context())
	backToPage(w, r)
}

// Signup handles POST /signup
func (h *ActionHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}

	outcome := h.page.SubmitSignup(r.Context(), r.FormValue("activity"), strings.TrimSpace(r.FormValue("email")))
	h.logger.Debug("signup settled", slog.String("outcome", string(outcome.Kind)))
	backToPage(w, r)
}

// Unregister handles POST /unregister
func (h *ActionHandler) Unregister(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}

	outcome := h.page.ClickUnregister(r.Context(), r.FormValue("activity"), r.FormValue("email"))
	h.logger.Debug("unregister settled", slog.String("outcome", string(outcome.Kind)))
	backToPage(w, r)
}

func parseForm(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return false
	}
	return true
}

func backToPage(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
