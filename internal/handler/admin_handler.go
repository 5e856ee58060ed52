package handler

import (
	"net/http"

	"logigraph-console/internal/model"
	"logigraph-console/internal/service"
)

// AdminHandler serves the ADMIN screens: the dashboard and master data.
type AdminHandler struct {
	dashboard *service.DashboardService
	catalog   *service.CatalogService
}

func NewAdminHandler(dashboard *service.DashboardService, catalog *service.CatalogService) *AdminHandler {
	return &AdminHandler{dashboard: dashboard, catalog: catalog}
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboard.Admin(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, result, nil)
}

func (h *AdminHandler) Products(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.Products(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, products, nil)
}

func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var payload model.Product
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	product, err := h.catalog.CreateProduct(r.Context(), payload)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusCreated, product, nil)
}

func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var payload model.Product
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	product, err := h.catalog.UpdateProduct(r.Context(), id, payload)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, product, nil)
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.catalog.DeleteProduct(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"deleted": id}, nil)
}

func (h *AdminHandler) Customers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.catalog.Customers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, customers, nil)
}

func (h *AdminHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var payload model.Customer
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	customer, err := h.catalog.CreateCustomer(r.Context(), payload)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusCreated, customer, nil)
}

func (h *AdminHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var payload model.Customer
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	customer, err := h.catalog.UpdateCustomer(r.Context(), id, payload)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, customer, nil)
}

func (h *AdminHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.catalog.DeleteCustomer(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"deleted": id}, nil)
}

func (h *AdminHandler) Warehouses(w http.ResponseWriter, r *http.Request) {
	warehouses, err := h.catalog.Warehouses(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, warehouses, nil)
}

func (h *AdminHandler) CreateWarehouse(w http.ResponseWriter, r *http.Request) {
	var payload model.Warehouse
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	warehouse, err := h.catalog.CreateWarehouse(r.Context(), payload)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusCreated, warehouse, nil)
}

func (h *AdminHandler) UpdateWarehouse(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var payload model.Warehouse
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	warehouse, err := h.catalog.UpdateWarehouse(r.Context(), id, payload)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, warehouse, nil)
}
