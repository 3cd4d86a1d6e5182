package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/activities-client/internal/model"
)

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// httpError combines an HTTP status code with the detail text
type httpError struct {
	status int
	detail string
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.detail
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Detail: he.detail})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrActivityNotFound):
		return &httpError{http.StatusNotFound, "Activity not found"}
	case errors.Is(err, model.ErrAlreadySignedUp):
		return &httpError{http.StatusBadRequest, "Student is already signed up"}
	case errors.Is(err, model.ErrActivityFull):
		return &httpError{http.StatusBadRequest, "Activity is full"}
	case errors.Is(err, model.ErrNotSignedUp):
		return &httpError{http.StatusBadRequest, "Student is not signed up for this activity"}
	case errors.Is(err, model.ErrEmailRequired):
		return &httpError{http.StatusBadRequest, "Email is required"}

	case errors.Is(err, model.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, "Invalid username or password"}
	case errors.Is(err, model.ErrNotAuthenticated):
		return &httpError{http.StatusUnauthorized, "Not authenticated"}
	case errors.Is(err, model.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, "Invalid or expired token"}

	default:
		return &httpError{http.StatusInternalServerError, "Internal server error"}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(detail string) error {
	return &httpError{http.StatusBadRequest, detail}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, "Internal server error"}
}
