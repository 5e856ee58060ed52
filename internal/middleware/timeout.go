package middleware

import (
	"net/http"
	"time"
)

// Timeout bounds page-data requests. It buffers the response, so live
// routes that hijack the connection must not sit behind it.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	message := `{"success":false,"error":{"code":"REQUEST_TIMEOUT","message":"The backend took too long to answer"}}`

	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, timeout, message)
	}
}
