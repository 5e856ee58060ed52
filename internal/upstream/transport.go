package upstream

import (
	"log/slog"
	"net/http"

	"logigraph-console/internal/logger"
	"logigraph-console/internal/metrics"
	"logigraph-console/internal/session"
)

const requestIDHeader = "X-Request-ID"

// Transport decorates a base RoundTripper for one backend target.
//
// With authorize set it is the session interceptor: the request-scoped
// credential is attached as a bearer token, and a 401 answer invalidates the
// session and triggers the login navigation. Only the caller that wins the
// invalidation for the generation it read navigates, so a burst of 401s
// yields one clear and one redirect.
//
// A 401 on an anonymous session is returned as is: there is nothing to clear,
// and a public page calling a protected endpoint is not sent to the login
// screen. The caller still sees ErrUnauthorized.
type Transport struct {
	target    string
	base      http.RoundTripper
	metrics   *metrics.Metrics
	authorize bool
}

func NewAuthTransport(target string, base http.RoundTripper, m *metrics.Metrics) *Transport {
	return newTransport(target, base, m, true)
}

// NewPlainTransport never attaches credentials and never touches the session.
func NewPlainTransport(target string, base http.RoundTripper, m *metrics.Metrics) *Transport {
	return newTransport(target, base, m, false)
}

func newTransport(target string, base http.RoundTripper, m *metrics.Metrics, authorize bool) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{target: target, base: base, metrics: m, authorize: authorize}
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if id := logger.RequestID(req.Context()); id != "" && req.Header.Get(requestIDHeader) == "" {
		req = req.Clone(req.Context())
		req.Header.Set(requestIDHeader, id)
	}

	if !t.authorize {
		return t.roundTrip(req)
	}

	provider, hasSession := session.FromContext(req.Context())

	var ticket session.Ticket
	if hasSession {
		ticket = provider.Ticket()
	}

	if ticket.Credential != "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+ticket.Credential)
	}

	resp, err := t.roundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && hasSession && provider.Invalidate(ticket.Generation) {
		t.metrics.SessionInvalidated(t.target)
		slog.InfoContext(req.Context(), "backend rejected session", "target", t.target, "path", req.URL.Path)
		if navigator, ok := session.NavigatorFromContext(req.Context()); ok {
			navigator.Navigate(session.LoginPath)
		}
	}

	return resp, nil
}

func (t *Transport) roundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		t.metrics.UpstreamResponse(t.target, 0)
		return nil, err
	}
	t.metrics.UpstreamResponse(t.target, resp.StatusCode)
	return resp, nil
}
