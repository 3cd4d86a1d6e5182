package handler

import (
	"net/http"

	"github.com/mcoot/activities-client/internal/api/apierr"
)

// Re-export from apierr for convenience
type ErrorResponse = apierr.ErrorResponse

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(detail string) error {
	return apierr.NewInvalidRequestError(detail)
}
