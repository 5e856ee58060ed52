package upstream

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"logigraph-console/internal/model"
)

type VehicleClient struct {
	client *Client
}

func NewVehicleClient(client *Client) *VehicleClient {
	return &VehicleClient{client: client}
}

func (v *VehicleClient) List(ctx context.Context, status model.VehicleStatus) ([]model.Vehicle, error) {
	var query url.Values
	if status != "" {
		query = url.Values{"status": []string{string(status)}}
	}

	var vehicles []model.Vehicle
	err := v.client.get(ctx, "/manager/vehicles", query, &vehicles)
	return vehicles, err
}

func (v *VehicleClient) Create(ctx context.Context, vehicle model.Vehicle) (model.Vehicle, error) {
	var created model.Vehicle
	err := v.client.send(ctx, http.MethodPost, "/manager/vehicles", vehicle, &created)
	return created, err
}

func (v *VehicleClient) UpdateStatus(ctx context.Context, id int64, req model.VehicleStatusUpdate) (model.Vehicle, error) {
	var updated model.Vehicle
	err := v.client.send(ctx, http.MethodPut, "/manager/vehicles/"+strconv.FormatInt(id, 10)+"/status", req, &updated)
	return updated, err
}

func (v *VehicleClient) UpdateWarehouse(ctx context.Context, id int64, req model.VehicleWarehouseUpdate) (model.Vehicle, error) {
	var updated model.Vehicle
	err := v.client.send(ctx, http.MethodPut, "/manager/vehicles/"+strconv.FormatInt(id, 10)+"/warehouse", req, &updated)
	return updated, err
}

type InventoryClient struct {
	client *Client
}

func NewInventoryClient(client *Client) *InventoryClient {
	return &InventoryClient{client: client}
}

func (i *InventoryClient) ByWarehouse(ctx context.Context, warehouseID int64) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	err := i.client.get(ctx, "/manager/inventory/warehouse/"+strconv.FormatInt(warehouseID, 10), nil, &items)
	return items, err
}

func (i *InventoryClient) Add(ctx context.Context, req model.StockAddition) error {
	return i.client.send(ctx, http.MethodPost, "/manager/inventory/add", req, nil)
}

func (i *InventoryClient) Adjust(ctx context.Context, req model.StockAdjustment) error {
	return i.client.send(ctx, http.MethodPost, "/manager/inventory/adjust", req, nil)
}

type DashboardClient struct {
	client *Client
}

func NewDashboardClient(client *Client) *DashboardClient {
	return &DashboardClient{client: client}
}

func (d *DashboardClient) RecentOrders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	err := d.client.get(ctx, "/manager/dashboard/orders/recent", nil, &orders)
	return orders, err
}

func (d *DashboardClient) OrdersByStatus(ctx context.Context) (map[string]int64, error) {
	counts := map[string]int64{}
	err := d.client.get(ctx, "/manager/dashboard/orders/status", nil, &counts)
	return counts, err
}

func (d *DashboardClient) FleetStatus(ctx context.Context) (map[string]int64, error) {
	counts := map[string]int64{}
	err := d.client.get(ctx, "/manager/dashboard/fleet/status", nil, &counts)
	return counts, err
}

func (d *DashboardClient) LowStock(ctx context.Context, threshold int) ([]model.LowStockAlert, error) {
	query := url.Values{"threshold": []string{strconv.Itoa(threshold)}}

	var alerts []model.LowStockAlert
	err := d.client.get(ctx, "/manager/dashboard/inventory/low-stock", query, &alerts)
	return alerts, err
}

type RoutingClient struct {
	client *Client
}

func NewRoutingClient(client *Client) *RoutingClient {
	return &RoutingClient{client: client}
}

func (r *RoutingClient) OptimalPath(ctx context.Context) (model.OptimalRoute, error) {
	var route model.OptimalRoute
	err := r.client.get(ctx, "/routing/optimal-path", nil, &route)
	return route, err
}
