package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"logigraph-console/internal/model"
	"logigraph-console/internal/session"
	"logigraph-console/internal/upstream"
	"logigraph-console/pkg/apierror"
)

const minPasswordLength = 6

type Issuer interface {
	Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error)
	Register(ctx context.Context, username string, password string) error
}

// SignIn is a credential accepted by the issuer together with the user
// record derived from it.
type SignIn struct {
	Credential string
	User       session.UserRecord
	Home       string
}

type AuthService struct {
	issuer Issuer
}

func NewAuthService(issuer Issuer) *AuthService {
	return &AuthService{issuer: issuer}
}

func (s *AuthService) Login(ctx context.Context, username string, password string) (SignIn, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return SignIn{}, apierror.Wrap(model.ErrInvalidInput, "BAD_REQUEST", "username and password are required", "", http.StatusBadRequest)
	}

	resp, err := s.issuer.Login(ctx, model.LoginRequest{Username: username, Password: password})
	if err != nil {
		if errors.Is(err, model.ErrUpstream) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return SignIn{}, err
		}
		return SignIn{}, apierror.Wrap(model.ErrInvalidCredentials, "INVALID_CREDENTIALS", upstream.Message(err, "Invalid username or password"), "", http.StatusUnauthorized)
	}

	claims, ok := session.Decode(resp.Token)
	if !ok {
		return SignIn{}, apierror.Wrap(model.ErrMalformedToken, "MALFORMED_TOKEN", "sign-in returned an unreadable credential", "", http.StatusBadGateway)
	}

	// Only a missing role defaults to customer. An unrecognised one is kept
	// verbatim so the guard refuses every role-gated page.
	roleName, ok := claims.RoleName()
	if !ok {
		roleName = string(session.RoleCustomer)
	}
	role := session.Role(roleName)

	subject := claims.Subject
	if subject == "" {
		subject = username
	}

	slog.Debug("credential issued", "username", subject, "role", role)

	return SignIn{
		Credential: resp.Token,
		User:       session.UserRecord{Username: subject, Role: string(role)},
		Home:       session.HomePath(role),
	}, nil
}

func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) error {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return apierror.Wrap(model.ErrInvalidInput, "BAD_REQUEST", "Username is required", "", http.StatusBadRequest)
	}
	if req.Password != req.ConfirmPassword {
		return apierror.Wrap(model.ErrInvalidInput, "BAD_REQUEST", "Passwords do not match", "", http.StatusBadRequest)
	}
	if len(req.Password) < minPasswordLength {
		return apierror.Wrap(model.ErrInvalidInput, "BAD_REQUEST", "Password must be at least 6 characters", "", http.StatusBadRequest)
	}

	if err := s.issuer.Register(ctx, username, req.Password); err != nil {
		if errors.Is(err, model.ErrUpstream) {
			return err
		}
		var apiErr *apierror.APIError
		status := http.StatusBadRequest
		if errors.As(err, &apiErr) && apiErr.HTTPStatus == http.StatusConflict {
			status = http.StatusConflict
		}
		return apierror.Wrap(err, "REGISTRATION_FAILED", upstream.Message(err, "Registration failed"), "", status)
	}

	return nil
}
