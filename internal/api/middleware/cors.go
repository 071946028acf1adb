package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"
)

// devOrigins are accepted alongside the configured frontend URL when it
// points at a local dashboard build.
var devOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"http://127.0.0.1:3000",
	"http://127.0.0.1:5173",
}

// CORS builds the cross-origin policy for the given origins.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	opts := cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	return cors.Handler(opts)
}

// DefaultCORS allows the dashboard frontend, plus the usual local dev
// ports when the frontend itself is local.
func DefaultCORS(frontendURL string) func(http.Handler) http.Handler {
	origins := []string{frontendURL}
	if strings.Contains(frontendURL, "localhost") || strings.Contains(frontendURL, "127.0.0.1") {
		origins = append(origins, devOrigins...)
	}
	return CORS(origins)
}
