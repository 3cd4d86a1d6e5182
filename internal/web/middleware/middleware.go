package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/activities-client/internal/middleware"
)

const errorPage = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Mergington High School Activities</title></head>
<body>
<h1>Something went wrong</h1>
<p>The activities page could not be shown. Please try again.</p>
<p><a href="/">Back to activities</a></p>
</body>
</html>`

// Logging creates request logging middleware for the portal
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger)
}

// Recovery creates panic recovery middleware for the portal.
// A panicking handler yields an HTML error page.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, portalPanicHandler)
}

func portalPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(errorPage))
}
