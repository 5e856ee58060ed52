package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"logigraph-console/internal/model"
	"logigraph-console/internal/session"
	"logigraph-console/pkg/apierror"
)

const maxBodyBytes = 1 << 20

func writeSuccess(w http.ResponseWriter, status int, data any, meta *model.Meta) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	body := &model.APIError{
		Code:    "INTERNAL_ERROR",
		Message: "Unexpected server error",
	}

	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		status = apiErr.HTTPStatus
		body.Code = apiErr.Code
		body.Message = apiErr.Message
		body.Details = apiErr.Details
	} else if errors.Is(err, model.ErrUnauthorized) {
		status = http.StatusUnauthorized
		body.Code = "UNAUTHORIZED"
		body.Message = "Session expired, please sign in again"
	} else if errors.Is(err, model.ErrForbidden) {
		status = http.StatusForbidden
		body.Code = "FORBIDDEN"
		body.Message = "Access denied"
	} else if errors.Is(err, model.ErrNotFound) {
		status = http.StatusNotFound
		body.Code = "NOT_FOUND"
		body.Message = "Resource not found"
	} else if errors.Is(err, model.ErrInvalidInput) {
		status = http.StatusBadRequest
		body.Code = "BAD_REQUEST"
		body.Message = "Invalid input"
	} else if errors.Is(err, context.DeadlineExceeded) {
		status = http.StatusGatewayTimeout
		body.Code = "UPSTREAM_TIMEOUT"
		body.Message = "The backend took too long to answer"
	} else if errors.Is(err, context.Canceled) {
		// The caller went away; nobody reads this answer.
		status = http.StatusServiceUnavailable
		body.Code = "CANCELLED"
		body.Message = "Request cancelled"
	} else {
		slog.ErrorContext(r.Context(), "unhandled error in writeError", "error", err.Error())
	}

	if status == 0 {
		status = http.StatusInternalServerError
	}

	response := model.APIResponse{Success: false, Error: body}
	// An expired session always tells the caller where to sign in again.
	if errors.Is(err, model.ErrUnauthorized) {
		response.Redirect = session.LoginPath
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(response)
}

func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()

	decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err := decoder.Decode(target); err != nil {
		return apierror.Wrap(model.ErrInvalidInput, "BAD_REQUEST", "invalid JSON body", err.Error(), http.StatusBadRequest)
	}
	return nil
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apierror.Wrap(model.ErrInvalidInput, "BAD_REQUEST", name+" must be a positive number", raw, http.StatusBadRequest)
	}
	return id, nil
}

// queryInt reads an optional integer query parameter.
func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apierror.Wrap(model.ErrInvalidInput, "BAD_REQUEST", name+" must be a number", raw, http.StatusBadRequest)
	}
	return value, nil
}

func queryID(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apierror.Wrap(model.ErrInvalidInput, "BAD_REQUEST", name+" must be a positive number", raw, http.StatusBadRequest)
	}
	return id, nil
}

func pageMeta(page model.OrderPage) *model.Meta {
	return &model.Meta{
		Page:       page.Number,
		Size:       page.Size,
		Total:      page.TotalElements,
		TotalPages: page.TotalPages,
	}
}

func providerFrom(r *http.Request) (*session.Provider, error) {
	provider, ok := session.FromContext(r.Context())
	if !ok {
		return nil, apierror.New("INTERNAL_ERROR", "session is not mounted", "", http.StatusInternalServerError)
	}
	return provider, nil
}
