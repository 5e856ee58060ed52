package middleware

import (
	"context"
	"net/http"
	"time"
)

// LiveTimeout caps how long a live tracking socket may stay open. Unlike
// Timeout it does not wrap the writer, so the websocket upgrade can hijack
// the connection. The socket code owns its own read and write deadlines.
func LiveTimeout(maxDuration time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if maxDuration <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), maxDuration)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
