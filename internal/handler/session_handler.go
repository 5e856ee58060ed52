package handler

import (
	"context"
	"net/http"
	"time"

	"logigraph-console/internal/model"
	"logigraph-console/internal/service"
	"logigraph-console/internal/session"
)

type SessionHandler struct {
	auth *service.AuthService
}

func NewSessionHandler(auth *service.AuthService) *SessionHandler {
	return &SessionHandler{auth: auth}
}

func sessionView(provider *session.Provider) model.SessionView {
	snapshot := provider.Snapshot()
	if !snapshot.Authenticated {
		return model.SessionView{}
	}
	return model.SessionView{
		Authenticated: true,
		Username:      snapshot.User.Username,
		Role:          string(snapshot.Role),
		Home:          session.HomePath(snapshot.Role),
	}
}

// Landing is the public front page. It tells a signed-in visitor where
// their dashboard is.
func (h *SessionHandler) Landing(w http.ResponseWriter, r *http.Request) {
	provider, err := providerFrom(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"product": "LogiGraph",
		"session": sessionView(provider),
		"login":   session.LoginPath,
	}, nil)
}

func (h *SessionHandler) Session(w http.ResponseWriter, r *http.Request) {
	provider, err := providerFrom(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, sessionView(provider), nil)
}

// LoginPage is where guarded pages send anonymous visitors.
func (h *SessionHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	provider, err := providerFrom(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"session":  sessionView(provider),
		"register": "/register",
	}, nil)
}

func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	provider, err := providerFrom(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var payload model.LoginRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	signIn, err := h.auth.Login(r.Context(), payload.Username, payload.Password)
	if err != nil {
		// A failed sign-in leaves the current session as it was.
		provider.SetError(err)
		writeError(w, r, err)
		return
	}

	if err := provider.Login(signIn.Credential, signIn.User); err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.SessionView{
		Authenticated: true,
		Username:      signIn.User.Username,
		Role:          signIn.User.Role,
		Home:          signIn.Home,
	}, nil)
}

func (h *SessionHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload model.RegisterRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.auth.Register(r.Context(), payload); err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, map[string]any{
		"registered": true,
		"username":   payload.Username,
		"login":      session.LoginPath,
	}, nil)
}

func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	provider, err := providerFrom(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	// The provider logs a failed clear; the session is anonymous either way.
	_ = provider.Logout()
	writeSuccess(w, http.StatusOK, map[string]any{"logged_out": true, "redirect": session.LoginPath}, nil)
}

func (h *SessionHandler) Unauthorized(w http.ResponseWriter, r *http.Request) {
	provider, err := providerFrom(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	view := sessionView(provider)
	home := session.LandingPath
	if view.Authenticated {
		home = view.Home
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"message": "You do not have permission to view this page",
		"home":    home,
		"session": view,
	}, nil)
}

// Pinger checks that a backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	issuer  Pinger
	timeout time.Duration
}

func NewHealthHandler(issuer Pinger, timeout time.Duration) *HealthHandler {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &HealthHandler{issuer: issuer, timeout: timeout}
}

// Health reports the console as up; ?deep=1 also pings the issuer.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("deep") == "" || h.issuer == nil {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.issuer.Ping(ctx); err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]string{"status": "ok", "issuer": "ok"}, nil)
}
