package handler

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"github.com/mcoot/activities-client/internal/api/response"
	"github.com/mcoot/activities-client/internal/services/catalog"
)

// ActivityHandler handles the activity directory and enrolment
type ActivityHandler struct {
	catalog *catalog.Service
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(catalog *catalog.Service) *ActivityHandler {
	return &ActivityHandler{
		catalog: catalog,
	}
}

// List handles GET /activities
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.Directory(h.catalog.List(r.Context())))
}

// Signup handles POST /activities/{name}/signup?email=
func (h *ActivityHandler) Signup(w http.ResponseWriter, r *http.Request) {
	name, err := activityName(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	email := r.URL.Query().Get("email")

	if err := h.catalog.Signup(r.Context(), name, email); err != nil {
		WriteError(w, err)
		return
	}

	response.Message(w, fmt.Sprintf("Signed up %s for %s", email, name))
}

// Unregister handles DELETE /activities/{name}/unregister?email=
func (h *ActivityHandler) Unregister(w http.ResponseWriter, r *http.Request) {
	name, err := activityName(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	email := r.URL.Query().Get("email")

	if err := h.catalog.Unregister(r.Context(), name, email); err != nil {
		WriteError(w, err)
		return
	}

	response.Message(w, fmt.Sprintf("Unregistered %s from %s", email, name))
}

// activityName decodes the name path segment. The router matches on the
// escaped path so names may contain slashes.
func activityName(r *http.Request) (string, error) {
	name, err := url.PathUnescape(mux.Vars(r)["name"])
	if err != nil {
		return "", NewInvalidRequestError("Invalid activity name")
	}
	return name, nil
}
