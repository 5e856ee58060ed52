package middleware

import (
	"net/http"
	"strings"

	"github.com/rs/cors"
)

// CORS lets the console's front end call it with the session cookie. A
// credentialed response cannot carry a wildcard origin, so "*" echoes the
// caller's origin instead.
func CORS(origins []string) func(http.Handler) http.Handler {
	options := cors.Options{
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID", "X-Requested-With"},
		ExposedHeaders:   []string{"Content-Length", "Retry-After", "X-Request-ID"},
		MaxAge:           3600,
		AllowCredentials: true,
	}

	allowAll := len(origins) == 0
	cleaned := make([]string, 0, len(origins))
	for _, origin := range origins {
		origin = strings.TrimRight(strings.TrimSpace(origin), "/")
		if origin == "*" {
			allowAll = true
		}
		if origin != "" {
			cleaned = append(cleaned, origin)
		}
	}

	if allowAll {
		options.AllowOriginFunc = func(string) bool { return true }
	} else {
		options.AllowedOrigins = cleaned
	}

	return cors.New(options).Handler
}
