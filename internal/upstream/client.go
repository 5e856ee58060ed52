package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"logigraph-console/internal/model"
	"logigraph-console/pkg/apierror"
)

const maxResponseBytes = 4 << 20

const unfulfillableMessage = "No warehouse can fulfill"

// Client talks JSON to one backend base URL.
type Client struct {
	name       string
	baseURL    string
	httpClient *http.Client
}

func NewClient(name string, baseURL string, transport http.RoundTripper, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		name:    name,
		baseURL: normalizeBaseURL(baseURL),
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
	}
}

func (c *Client) Name() string {
	return c.name
}

func normalizeBaseURL(raw string) string {
	return strings.TrimRight(strings.TrimSpace(raw), "/")
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) send(ctx context.Context, method string, path string, body any, out any) error {
	return c.do(ctx, method, path, nil, body, out)
}

func (c *Client) do(ctx context.Context, method string, path string, query url.Values, body any, out any) error {
	req, err := c.newJSONRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return apierror.Wrap(model.ErrUpstream, "UPSTREAM_UNAVAILABLE", fmt.Sprintf("%s service is unavailable", c.name), err.Error(), http.StatusBadGateway)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return apierror.Wrap(model.ErrUpstream, "UPSTREAM_UNAVAILABLE", fmt.Sprintf("%s service response was interrupted", c.name), err.Error(), http.StatusBadGateway)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return c.statusError(resp.StatusCode, raw)
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return apierror.Wrap(model.ErrUpstream, "UPSTREAM_BAD_RESPONSE", fmt.Sprintf("%s service returned an unreadable response", c.name), err.Error(), http.StatusBadGateway)
	}

	return nil
}

func (c *Client) newJSONRequest(ctx context.Context, method string, path string, query url.Values, body any) (*http.Request, error) {
	target := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s request: %w", c.name, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", c.name, err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// StatusError is a non-2xx backend answer. Message is whatever the backend
// said, possibly empty.
type StatusError struct {
	Target  string
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s answered %d", e.Target, e.Status)
	}
	return fmt.Sprintf("%s answered %d: %s", e.Target, e.Status, e.Message)
}

// statusError classifies a non-2xx answer. The backend's own message, when it
// sends one, becomes the user-facing message.
func (c *Client) statusError(status int, raw []byte) error {
	cause := &StatusError{Target: c.name, Status: status, Message: upstreamMessage(raw)}
	classify := func(sentinel error, code string, fallback string, httpStatus int) error {
		return apierror.Wrap(fmt.Errorf("%w: %w", sentinel, cause), code, orDefault(cause.Message, fallback), "", httpStatus)
	}

	if strings.Contains(cause.Message, unfulfillableMessage) {
		return classify(model.ErrUnfulfilled, "UNFULFILLABLE", "", http.StatusConflict)
	}

	switch {
	case status == http.StatusUnauthorized:
		return classify(model.ErrUnauthorized, "UNAUTHORIZED", "Session expired, please sign in again", http.StatusUnauthorized)
	case status == http.StatusForbidden:
		return classify(model.ErrForbidden, "FORBIDDEN", "Access denied", http.StatusForbidden)
	case status == http.StatusNotFound:
		return classify(model.ErrNotFound, "NOT_FOUND", "Resource not found", http.StatusNotFound)
	case status == http.StatusConflict:
		return classify(model.ErrConflict, "CONFLICT", "Conflicting change", http.StatusConflict)
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return classify(model.ErrInvalidInput, "BAD_REQUEST", "Invalid request", http.StatusBadRequest)
	}

	return classify(model.ErrUpstream, "UPSTREAM_ERROR", fmt.Sprintf("%s service request failed", c.name), http.StatusBadGateway)
}

func upstreamMessage(raw []byte) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return ""
	}

	var body struct {
		Message string `json:"message"`
		Error   any    `json:"error"`
	}
	if err := json.Unmarshal(trimmed, &body); err != nil {
		var text string
		switch {
		case json.Unmarshal(trimmed, &text) == nil:
			return text
		case trimmed[0] == '{' || trimmed[0] == '[' || trimmed[0] == '<':
			return ""
		}
		return string(trimmed)
	}

	if body.Message != "" {
		return body.Message
	}
	if text, ok := body.Error.(string); ok {
		return text
	}
	return ""
}

func orDefault(value string, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

// IsUnauthorized reports whether err came from a backend 401.
func IsUnauthorized(err error) bool {
	return errors.Is(err, model.ErrUnauthorized)
}

// Message returns what the backend said in its error answer, or fallback
// when err is not a backend answer or carried no message.
func Message(err error, fallback string) string {
	var cause *StatusError
	if errors.As(err, &cause) && cause.Message != "" {
		return cause.Message
	}
	return fallback
}
