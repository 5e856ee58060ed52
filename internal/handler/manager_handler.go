package handler

import (
	"net/http"
	"strings"

	"logigraph-console/internal/model"
	"logigraph-console/internal/service"
)

// ManagerHandler serves the MANAGER screens: orders, stock, fleet and the
// route map.
type ManagerHandler struct {
	dashboard *service.DashboardService
	orders    *service.OrderService
	fleet     *service.FleetService
	routing   *service.RoutingService
	catalog   *service.CatalogService
}

func NewManagerHandler(dashboard *service.DashboardService, orders *service.OrderService, fleet *service.FleetService, routing *service.RoutingService, catalog *service.CatalogService) *ManagerHandler {
	return &ManagerHandler{
		dashboard: dashboard,
		orders:    orders,
		fleet:     fleet,
		routing:   routing,
		catalog:   catalog,
	}
}

func (h *ManagerHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboard.Manager(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, result, nil)
}

func (h *ManagerHandler) Orders(w http.ResponseWriter, r *http.Request) {
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
	customerID, err := queryID(r, "customerId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.orders.List(r.Context(), model.OrderFilter{
		PageQuery:  model.PageQuery{Page: page, Size: size},
		Status:     model.OrderStatus(strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("status")))),
		CustomerID: customerID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, result.Content, pageMeta(result))
}

func (h *ManagerHandler) Order(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "orderId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	detail, err := h.orders.Detail(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, detail, nil)
}

func (h *ManagerHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "orderId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var payload model.UpdateOrderStatusRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}
	payload.Status = model.OrderStatus(strings.ToUpper(strings.TrimSpace(string(payload.Status))))

	order, err := h.orders.UpdateStatus(r.Context(), id, payload)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, order, nil)
}

func (h *ManagerHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "orderId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var payload model.CancelOrderRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &payload); err != nil {
			writeError(w, r, err)
			return
		}
	}

	order, err := h.orders.Cancel(r.Context(), id, payload)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, order, nil)
}

// Inventory lists the warehouses; with ?warehouseId it also carries that
// warehouse's stock.
func (h *ManagerHandler) Inventory(w http.ResponseWriter, r *http.Request) {
	warehouseID, err := queryID(r, "warehouseId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	warehouses, err := h.catalog.Warehouses(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	result := map[string]any{"warehouses": warehouses}
	if warehouseID > 0 {
		items, err := h.fleet.Inventory(r.Context(), warehouseID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		result["warehouseId"] = warehouseID
		result["items"] = items
	}
	writeSuccess(w, http.StatusOK, result, nil)
}

func (h *ManagerHandler) AddStock(w http.ResponseWriter, r *http.Request) {
	var payload model.StockAddition
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.fleet.AddStock(r.Context(), payload); err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, payload, nil)
}

func (h *ManagerHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	var payload model.StockAdjustment
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.fleet.AdjustStock(r.Context(), payload); err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, payload, nil)
}

func (h *ManagerHandler) Vehicles(w http.ResponseWriter, r *http.Request) {
	status := model.VehicleStatus(strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("status"))))

	vehicles, err := h.fleet.Vehicles(r.Context(), status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, vehicles, nil)
}

func (h *ManagerHandler) RegisterVehicle(w http.ResponseWriter, r *http.Request) {
	var payload model.Vehicle
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	vehicle, err := h.fleet.RegisterVehicle(r.Context(), payload)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusCreated, vehicle, nil)
}

func (h *ManagerHandler) UpdateVehicleStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var payload model.VehicleStatusUpdate
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}
	payload.Status = model.VehicleStatus(strings.ToUpper(strings.TrimSpace(string(payload.Status))))

	vehicle, err := h.fleet.UpdateVehicleStatus(r.Context(), id, payload)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, vehicle, nil)
}

func (h *ManagerHandler) MoveVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var payload model.VehicleWarehouseUpdate
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	vehicle, err := h.fleet.MoveVehicle(r.Context(), id, payload)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, vehicle, nil)
}

func (h *ManagerHandler) Routing(w http.ResponseWriter, r *http.Request) {
	graph, err := h.routing.Graph(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, graph, nil)
}
