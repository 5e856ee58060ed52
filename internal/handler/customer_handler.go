package handler

import (
	"net/http"

	"logigraph-console/internal/model"
	"logigraph-console/internal/service"
)

type CustomerHandler struct {
	dashboard *service.DashboardService
	orders    *service.OrderService
	catalog   *service.CatalogService
}

func NewCustomerHandler(dashboard *service.DashboardService, orders *service.OrderService, catalog *service.CatalogService) *CustomerHandler {
	return &CustomerHandler{dashboard: dashboard, orders: orders, catalog: catalog}
}

func (h *CustomerHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboard.Customer(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, result, nil)
}

func (h *CustomerHandler) OrderForm(w http.ResponseWriter, r *http.Request) {
	form, err := h.orders.Form(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, form, nil)
}

func (h *CustomerHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var payload model.PlaceOrderRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	order, err := h.orders.Place(r.Context(), payload)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusCreated, order, nil)
}

// CheckOrder answers which warehouses could ship the basket on their own,
// before the customer commits to it.
func (h *CustomerHandler) CheckOrder(w http.ResponseWriter, r *http.Request) {
	var payload model.PlaceOrderRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	warehouses, err := h.orders.Fulfilment(r.Context(), payload.Items)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{
		"fulfillable": len(warehouses) > 0,
		"warehouses":  warehouses,
	}, nil)
}

func (h *CustomerHandler) MyOrders(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", 0)
	if err != nil {
		writeError(w, r, err)
		return
	}
	size, err := queryInt(r, "size", 0)
	if err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.orders.Mine(r.Context(), model.PageQuery{Page: page, Size: size})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, result.Content, pageMeta(result))
}

func (h *CustomerHandler) Profile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.catalog.Profile(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, profile, nil)
}

func (h *CustomerHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var payload model.Customer
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	profile, err := h.catalog.UpdateProfile(r.Context(), payload)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, profile, nil)
}
