package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"logigraph-console/internal/model"
	"logigraph-console/internal/session"
	"logigraph-console/internal/upstream"
	"logigraph-console/pkg/apierror"
)

func issuedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("issuer-secret"))
	require.NoError(t, err)
	return token
}

// rejection builds the error a real backend client returns for status.
func rejection(t *testing.T, status int, body string) error {
	t.Helper()

	server := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
	backends := upstreamAgainst(t, server)
	_, err := backends.Auth.Login(context.Background(), model.LoginRequest{Username: "u", Password: "p"})
	require.Error(t, err)
	return err
}

func TestAuthServiceLogin(t *testing.T) {
	t.Parallel()

	exp := time.Now().Add(time.Hour).Unix()

	t.Run("role from roles claim picks home", func(t *testing.T) {
		token := issuedToken(t, jwt.MapClaims{"sub": "manager1", "roles": []string{"MANAGER", "ADMIN"}, "exp": exp})
		svc := NewAuthService(&fakeIssuer{login: func(req model.LoginRequest) (model.LoginResponse, error) {
			require.Equal(t, "manager1", req.Username)
			return model.LoginResponse{Token: token}, nil
		}})

		signIn, err := svc.Login(context.Background(), "  manager1 ", "secret")
		require.NoError(t, err)
		require.Equal(t, token, signIn.Credential)
		require.Equal(t, "manager1", signIn.User.Username)
		require.Equal(t, "MANAGER", signIn.User.Role)
		require.Equal(t, "/manager/dashboard", signIn.Home)
	})

	t.Run("missing role falls back to customer", func(t *testing.T) {
		token := issuedToken(t, jwt.MapClaims{"sub": "alice", "exp": exp})
		svc := NewAuthService(&fakeIssuer{login: func(model.LoginRequest) (model.LoginResponse, error) {
			return model.LoginResponse{Token: token}, nil
		}})

		signIn, err := svc.Login(context.Background(), "alice", "secret")
		require.NoError(t, err)
		require.Equal(t, "CUSTOMER", signIn.User.Role)
		require.Equal(t, "/customer/dashboard", signIn.Home)
	})

	for _, claimed := range []string{"admin", "SUPERVISOR"} {
		t.Run("unrecognised role "+claimed+" is kept and refused", func(t *testing.T) {
			token := issuedToken(t, jwt.MapClaims{"sub": "carol", "role": claimed, "exp": exp})
			svc := NewAuthService(&fakeIssuer{login: func(model.LoginRequest) (model.LoginResponse, error) {
				return model.LoginResponse{Token: token}, nil
			}})

			signIn, err := svc.Login(context.Background(), "carol", "secret")
			require.NoError(t, err)
			require.Equal(t, claimed, signIn.User.Role)
			require.Equal(t, session.LandingPath, signIn.Home)

			current := session.Session{User: &signIn.User, Role: session.Role(signIn.User.Role), Authenticated: true}
			for _, required := range [][]session.Role{{session.RoleCustomer}, {session.RoleAdmin}, session.AnyRole} {
				require.Equal(t, session.RedirectUnauthorized, session.Decide(required, current))
			}
		})
	}

	t.Run("issuer message is shown", func(t *testing.T) {
		err := rejection(t, http.StatusUnauthorized, `{"message":"Account locked"}`)
		svc := NewAuthService(&fakeIssuer{login: func(model.LoginRequest) (model.LoginResponse, error) {
			return model.LoginResponse{}, err
		}})

		_, loginErr := svc.Login(context.Background(), "alice", "wrong")
		require.ErrorIs(t, loginErr, model.ErrInvalidCredentials)

		var apiErr *apierror.APIError
		require.True(t, errors.As(loginErr, &apiErr))
		require.Equal(t, "Account locked", apiErr.Message)
		require.Equal(t, http.StatusUnauthorized, apiErr.HTTPStatus)
	})

	t.Run("default message without issuer message", func(t *testing.T) {
		err := rejection(t, http.StatusUnauthorized, ``)
		svc := NewAuthService(&fakeIssuer{login: func(model.LoginRequest) (model.LoginResponse, error) {
			return model.LoginResponse{}, err
		}})

		_, loginErr := svc.Login(context.Background(), "alice", "wrong")
		var apiErr *apierror.APIError
		require.True(t, errors.As(loginErr, &apiErr))
		require.Equal(t, "Invalid username or password", apiErr.Message)
		require.NotErrorIs(t, loginErr, model.ErrUnauthorized, "a failed sign-in is not an expired session")
	})

	t.Run("unavailable issuer passes through", func(t *testing.T) {
		down := apierror.Wrap(model.ErrUpstream, "UPSTREAM_UNAVAILABLE", "core service is unavailable", "", http.StatusBadGateway)
		svc := NewAuthService(&fakeIssuer{login: func(model.LoginRequest) (model.LoginResponse, error) {
			return model.LoginResponse{}, down
		}})

		_, err := svc.Login(context.Background(), "alice", "secret")
		require.ErrorIs(t, err, model.ErrUpstream)
	})

	t.Run("unreadable credential", func(t *testing.T) {
		svc := NewAuthService(&fakeIssuer{login: func(model.LoginRequest) (model.LoginResponse, error) {
			return model.LoginResponse{Token: "opaque"}, nil
		}})

		_, err := svc.Login(context.Background(), "alice", "secret")
		require.ErrorIs(t, err, model.ErrMalformedToken)
	})

	t.Run("blank input is rejected before calling the issuer", func(t *testing.T) {
		svc := NewAuthService(&fakeIssuer{login: func(model.LoginRequest) (model.LoginResponse, error) {
			t.Fatal("issuer called")
			return model.LoginResponse{}, nil
		}})

		_, err := svc.Login(context.Background(), "   ", "secret")
		require.ErrorIs(t, err, model.ErrInvalidInput)
	})
}

func TestAuthServiceRegister(t *testing.T) {
	t.Parallel()

	var registered []string
	svc := NewAuthService(&fakeIssuer{register: func(username string, password string) error {
		registered = append(registered, username)
		if username == "taken" {
			return apierror.Wrap(fmt.Errorf("%w", model.ErrConflict), "CONFLICT", "Username already exists", "", http.StatusConflict)
		}
		return nil
	}})

	tests := []struct {
		name    string
		req     model.RegisterRequest
		message string
	}{
		{name: "mismatch", req: model.RegisterRequest{Username: "bob", Password: "secret1", ConfirmPassword: "secret2"}, message: "Passwords do not match"},
		{name: "short", req: model.RegisterRequest{Username: "bob", Password: "abc", ConfirmPassword: "abc"}, message: "Password must be at least 6 characters"},
		{name: "no username", req: model.RegisterRequest{Password: "secret1", ConfirmPassword: "secret1"}, message: "Username is required"},
	}
	for _, tt := range tests {
		err := svc.Register(context.Background(), tt.req)
		var apiErr *apierror.APIError
		require.True(t, errors.As(err, &apiErr), tt.name)
		require.Equal(t, tt.message, apiErr.Message, tt.name)
	}
	require.Empty(t, registered)

	require.NoError(t, svc.Register(context.Background(), model.RegisterRequest{Username: "bob", Password: "secret1", ConfirmPassword: "secret1"}))

	err := svc.Register(context.Background(), model.RegisterRequest{Username: "taken", Password: "secret1", ConfirmPassword: "secret1"})
	var apiErr *apierror.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusConflict, apiErr.HTTPStatus)
	require.Equal(t, "Registration failed", apiErr.Message, "only backend answers carry a user-facing message")
	require.Equal(t, []string{"bob", "taken"}, registered)
}

func upstreamAgainst(t *testing.T, handler http.Handler) *upstream.Backends {
	t.Helper()

	server := newServer(t, handler)
	return upstream.NewBackends(upstream.Options{CoreURL: server, TrackingURL: server, Timeout: 5 * time.Second})
}
