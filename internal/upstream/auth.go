package upstream

import (
	"context"
	"net/http"

	"logigraph-console/internal/model"
)

// AuthClient reaches the credential issuer. It is built on a plain transport:
// a rejected sign-in must not clear or redirect the current session.
type AuthClient struct {
	client *Client
}

func NewAuthClient(client *Client) *AuthClient {
	return &AuthClient{client: client}
}

func (a *AuthClient) Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error) {
	var resp model.LoginResponse
	err := a.client.send(ctx, http.MethodPost, "/auth/login", req, &resp)
	return resp, err
}

// Register answers 201 with no body on success.
func (a *AuthClient) Register(ctx context.Context, username string, password string) error {
	return a.client.send(ctx, http.MethodPost, "/auth/register", model.LoginRequest{Username: username, Password: password}, nil)
}

func (a *AuthClient) Ping(ctx context.Context) error {
	return a.client.get(ctx, "/auth/ping", nil, nil)
}
