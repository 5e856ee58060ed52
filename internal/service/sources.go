package service

import (
	"context"
	"errors"
	"log/slog"

	"logigraph-console/internal/model"
)

// The interfaces below are the backend operations each service composes.
// upstream's resource clients satisfy them.

type ProductSource interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	GetProduct(ctx context.Context, id int64) (model.Product, error)
	CreateProduct(ctx context.Context, product model.Product) (model.Product, error)
	UpdateProduct(ctx context.Context, id int64, product model.Product) (model.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

type CustomerSource interface {
	List(ctx context.Context) ([]model.Customer, error)
	Create(ctx context.Context, customer model.Customer) (model.Customer, error)
	Update(ctx context.Context, id int64, customer model.Customer) (model.Customer, error)
	Delete(ctx context.Context, id int64) error
	Profile(ctx context.Context) (model.Customer, error)
	UpdateProfile(ctx context.Context, customer model.Customer) (model.Customer, error)
}

type WarehouseSource interface {
	List(ctx context.Context) ([]model.Warehouse, error)
	Create(ctx context.Context, warehouse model.Warehouse) (model.Warehouse, error)
	Update(ctx context.Context, id int64, warehouse model.Warehouse) (model.Warehouse, error)
}

type OrderSource interface {
	Place(ctx context.Context, req model.PlaceOrderRequest) (model.Order, error)
	Mine(ctx context.Context, page model.PageQuery) (model.OrderPage, error)
	MineByID(ctx context.Context, id int64) (model.Order, error)
	List(ctx context.Context, filter model.OrderFilter) (model.OrderPage, error)
	Get(ctx context.Context, id int64) (model.Order, error)
	Items(ctx context.Context, id int64) ([]model.OrderItem, error)
	History(ctx context.Context, id int64) ([]model.OrderHistoryEntry, error)
	UpdateStatus(ctx context.Context, id int64, req model.UpdateOrderStatusRequest) (model.Order, error)
	Cancel(ctx context.Context, id int64, req model.CancelOrderRequest) (model.Order, error)
}

type VehicleSource interface {
	List(ctx context.Context, status model.VehicleStatus) ([]model.Vehicle, error)
	Create(ctx context.Context, vehicle model.Vehicle) (model.Vehicle, error)
	UpdateStatus(ctx context.Context, id int64, req model.VehicleStatusUpdate) (model.Vehicle, error)
	UpdateWarehouse(ctx context.Context, id int64, req model.VehicleWarehouseUpdate) (model.Vehicle, error)
}

type InventorySource interface {
	ByWarehouse(ctx context.Context, warehouseID int64) ([]model.InventoryItem, error)
	Add(ctx context.Context, req model.StockAddition) error
	Adjust(ctx context.Context, req model.StockAdjustment) error
}

type DashboardSource interface {
	RecentOrders(ctx context.Context) ([]model.Order, error)
	OrdersByStatus(ctx context.Context) (map[string]int64, error)
	FleetStatus(ctx context.Context) (map[string]int64, error)
	LowStock(ctx context.Context, threshold int) ([]model.LowStockAlert, error)
}

type RouteSource interface {
	OptimalPath(ctx context.Context) (model.OptimalRoute, error)
}

type TrackingSource interface {
	Start(ctx context.Context, req model.StartTrackingRequest) (model.TrackingInfo, error)
	ForOrder(ctx context.Context, orderID int64) (model.TrackingInfo, error)
}

// tolerate lets a page panel degrade to empty when its backend call fails.
// Authorization failures and cancellation still abort the page: the session
// is already gone and the caller has to see it.
func tolerate(panel string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, model.ErrUnauthorized) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	slog.Warn("panel degraded", "panel", panel, "error", err)
	return nil
}
