package middleware

import (
	"bufio"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"

	"logigraph-console/internal/metrics"
	"logigraph-console/internal/model"
	"logigraph-console/internal/session"
)

// Sessions mounts a session provider on every request. The provider reads
// and writes the session cookie through the request, and a navigation it
// triggers (a backend rejecting the credential) replaces whatever response
// the handler was about to send.
type Sessions struct {
	store   *session.CookieStore
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewSessions(store *session.CookieStore, m *metrics.Metrics, logger *slog.Logger) *Sessions {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sessions{store: store, metrics: m, logger: logger}
}

func (s *Sessions) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		latch := &navigationLatch{}
		nw := &navigationWriter{ResponseWriter: w, r: r, latch: latch}

		provider := session.NewProvider(
			s.store.Bind(nw, r),
			session.WithLogger(s.logger),
			session.WithObserver(s.metrics),
		)
		provider.Init()

		ctx := session.WithProvider(r.Context(), provider)
		ctx = session.WithNavigator(ctx, latch)

		next.ServeHTTP(nw, r.WithContext(ctx))

		if !nw.wroteHeader {
			if target, ok := latch.Target(); ok {
				nw.divert(target)
			}
		}
	})
}

// navigationLatch records the first forced navigation of a request.
type navigationLatch struct {
	mu     sync.Mutex
	target string
}

func (l *navigationLatch) Navigate(path string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.target == "" {
		l.target = path
	}
}

func (l *navigationLatch) Target() (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.target, l.target != ""
}

// navigationWriter swaps the handler's response for the latched navigation.
type navigationWriter struct {
	http.ResponseWriter
	r           *http.Request
	latch       *navigationLatch
	mu          sync.Mutex
	wroteHeader bool
	diverted    bool
}

func (w *navigationWriter) WriteHeader(statusCode int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.writeHeaderLocked(statusCode)
}

func (w *navigationWriter) writeHeaderLocked(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true

	if target, ok := w.latch.Target(); ok {
		w.diverted = true
		writeNavigation(w.ResponseWriter, w.r, target)
		return
	}
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *navigationWriter) Write(b []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.writeHeaderLocked(http.StatusOK)
	if w.diverted {
		return len(b), nil
	}
	return w.ResponseWriter.Write(b)
}

func (w *navigationWriter) divert(target string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true
	w.diverted = true
	writeNavigation(w.ResponseWriter, w.r, target)
}

func (w *navigationWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}

	w.mu.Lock()
	w.wroteHeader = true
	w.mu.Unlock()
	return hijacker.Hijack()
}

func (w *navigationWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (w *navigationWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// WantsJSON reports whether the caller is a script rather than a browser
// navigation.
func WantsJSON(r *http.Request) bool {
	if strings.EqualFold(r.Header.Get("X-Requested-With"), "XMLHttpRequest") {
		return true
	}
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")
}

// writeNavigation sends the caller to target: a redirect for browsers, a
// 401 or 403 envelope naming the target for scripts.
func writeNavigation(w http.ResponseWriter, r *http.Request, target string) {
	header := w.Header()
	header.Del("Content-Length")
	header.Set("Cache-Control", "no-store")

	if !WantsJSON(r) {
		header.Del("Content-Type")
		status := http.StatusFound
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			status = http.StatusSeeOther
		}
		http.Redirect(w, r, target, status)
		return
	}

	status := http.StatusUnauthorized
	apiErr := &model.APIError{Code: "UNAUTHORIZED", Message: "Please sign in to continue"}
	if target == session.UnauthorizedPath {
		status = http.StatusForbidden
		apiErr = &model.APIError{Code: "FORBIDDEN", Message: "You do not have access to this page"}
	}

	header.Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = jsonEncode(w, model.APIResponse{Success: false, Error: apiErr, Redirect: target})
}
