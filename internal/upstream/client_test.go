package upstream

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logigraph-console/internal/model"
	"logigraph-console/pkg/apierror"
)

func TestStatusErrorClassification(t *testing.T) {
	t.Parallel()

	c := NewClient("core", "http://backend/api/", nil, 0)
	require.Equal(t, "http://backend/api", c.baseURL)

	tests := []struct {
		name     string
		status   int
		body     string
		sentinel error
		code     string
		httpCode int
		message  string
	}{
		{name: "unauthorized", status: 401, body: ``, sentinel: model.ErrUnauthorized, code: "UNAUTHORIZED", httpCode: 401, message: "Session expired, please sign in again"},
		{name: "forbidden with message", status: 403, body: `{"message":"Managers only"}`, sentinel: model.ErrForbidden, code: "FORBIDDEN", httpCode: 403, message: "Managers only"},
		{name: "not found", status: 404, body: `{"error":"Order 9 not found"}`, sentinel: model.ErrNotFound, code: "NOT_FOUND", httpCode: 404, message: "Order 9 not found"},
		{name: "validation", status: 400, body: `{"message":"quantity must be positive"}`, sentinel: model.ErrInvalidInput, code: "BAD_REQUEST", httpCode: 400, message: "quantity must be positive"},
		{name: "unfulfillable on server error", status: 500, body: `{"message":"No warehouse can fulfill all requested items"}`, sentinel: model.ErrUnfulfilled, code: "UNFULFILLABLE", httpCode: 409, message: "No warehouse can fulfill all requested items"},
		{name: "unfulfillable as plain text", status: 400, body: `No warehouse can fulfill all requested items`, sentinel: model.ErrUnfulfilled, code: "UNFULFILLABLE", httpCode: 409, message: "No warehouse can fulfill all requested items"},
		{name: "conflict", status: 409, body: `"duplicate sku"`, sentinel: model.ErrConflict, code: "CONFLICT", httpCode: 409, message: "duplicate sku"},
		{name: "server error", status: 503, body: `<html>down</html>`, sentinel: model.ErrUpstream, code: "UPSTREAM_ERROR", httpCode: 502, message: "core service request failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.statusError(tt.status, []byte(tt.body))
			require.ErrorIs(t, err, tt.sentinel)

			var apiErr *apierror.APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.code, apiErr.Code)
			assert.Equal(t, tt.httpCode, apiErr.HTTPStatus)
			assert.Equal(t, tt.message, apiErr.Message)
		})
	}
}

func TestClientSendsJSONAndQuery(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/manager/orders/status/IN_TRANSIT":
			assert.Equal(t, "2", r.URL.Query().Get("page"))
			assert.Equal(t, "20", r.URL.Query().Get("size"))
			_, _ = w.Write([]byte(`{"content":[{"id":4,"status":"IN_TRANSIT"}],"totalElements":41,"totalPages":3,"number":2,"size":20}`))
		case "/api/customer/orders":
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			body, _ := io.ReadAll(r.Body)
			assert.JSONEq(t, `{"items":{"3":2},"destLat":1.5,"destLng":2.5}`, string(body))
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":77,"status":"PENDING"}`))
		case "/api/manager/inventory/adjust":
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	backends := newTestBackends(server.URL+"/api", server.URL+"/api")
	ctx := context.Background()

	page, err := backends.Orders.List(ctx, model.OrderFilter{PageQuery: model.PageQuery{Page: 2, Size: 20}, Status: model.OrderInTransit, CustomerID: 5})
	require.NoError(t, err)
	assert.EqualValues(t, 41, page.TotalElements)
	require.Len(t, page.Content, 1)

	order, err := backends.Orders.Place(ctx, model.PlaceOrderRequest{Items: map[int64]int{3: 2}, DestLat: 1.5, DestLng: 2.5})
	require.NoError(t, err)
	assert.EqualValues(t, 77, order.ID)

	require.NoError(t, backends.Inventory.Adjust(ctx, model.StockAdjustment{WarehouseID: 1, ProductID: 2, Delta: -3}))

	_, err = backends.Vehicles.List(ctx, model.VehicleAvailable)
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestClientUnreachableBackend(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	c := NewClient("tracking", url, NewPlainTransport("tracking", nil, nil), time.Second)
	err := c.get(context.Background(), "/tracking/order/1", nil, nil)
	require.ErrorIs(t, err, model.ErrUpstream)

	var apiErr *apierror.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.HTTPStatus)
	assert.Equal(t, "UPSTREAM_UNAVAILABLE", apiErr.Code)
}

func TestClientHonoursCancelledContext(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient("core", server.URL, nil, time.Second)
	err := c.get(ctx, "/catalog/products", nil, nil)
	require.ErrorIs(t, err, context.Canceled)
}
