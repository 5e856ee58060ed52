package middleware

import (
	"log/slog"
	"net/http"

	"logigraph-console/internal/metrics"
	"logigraph-console/internal/model"
	"logigraph-console/internal/session"
)

// RequireRoles guards a route group. With no roles the routes are public.
// Requests arriving without a mounted session are treated as anonymous.
func RequireRoles(m *metrics.Metrics, roles ...session.Role) func(http.Handler) http.Handler {
	required := append([]session.Role(nil), roles...)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var snapshot session.Session
			if provider, ok := session.FromContext(r.Context()); ok {
				snapshot = provider.Snapshot()
			}

			decision := session.Decide(required, snapshot)
			m.GuardDecision(decision.String())

			switch decision {
			case session.Render:
				next.ServeHTTP(w, r)
			case session.ShowLoading:
				w.Header().Set("Retry-After", "1")
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusServiceUnavailable)
				_ = jsonEncode(w, model.APIResponse{
					Success: false,
					Error:   &model.APIError{Code: "SESSION_LOADING", Message: "Session is still loading"},
				})
			default:
				slog.DebugContext(r.Context(), "route guarded", "path", r.URL.Path, "decision", decision.String(), "role", string(snapshot.Role))
				writeNavigation(w, r, decision.Target())
			}
		})
	}
}
