package service

import (
	"context"
	"net/http"
	"strings"

	"logigraph-console/internal/model"
	"logigraph-console/pkg/apierror"
)

// FleetService covers the manager's vehicles and warehouse stock.
type FleetService struct {
	vehicles  VehicleSource
	inventory InventorySource
}

func NewFleetService(vehicles VehicleSource, inventory InventorySource) *FleetService {
	return &FleetService{vehicles: vehicles, inventory: inventory}
}

func (s *FleetService) Vehicles(ctx context.Context, status model.VehicleStatus) ([]model.Vehicle, error) {
	if status != "" && !status.Valid() {
		return nil, apierror.Wrap(model.ErrInvalidInput, "BAD_REQUEST", "unknown vehicle status", string(status), http.StatusBadRequest)
	}
	return s.vehicles.List(ctx, status)
}

func (s *FleetService) RegisterVehicle(ctx context.Context, vehicle model.Vehicle) (model.Vehicle, error) {
	if strings.TrimSpace(vehicle.VehicleNumber) == "" {
		return model.Vehicle{}, invalid("vehicle number is required")
	}
	if vehicle.Capacity < 0 {
		return model.Vehicle{}, invalid("capacity cannot be negative")
	}
	if vehicle.Status == "" {
		vehicle.Status = model.VehicleAvailable
	}
	if !vehicle.Status.Valid() {
		return model.Vehicle{}, invalid("unknown vehicle status")
	}
	return s.vehicles.Create(ctx, vehicle)
}

func (s *FleetService) UpdateVehicleStatus(ctx context.Context, id int64, req model.VehicleStatusUpdate) (model.Vehicle, error) {
	if !req.Status.Valid() {
		return model.Vehicle{}, invalid("unknown vehicle status")
	}
	return s.vehicles.UpdateStatus(ctx, id, req)
}

func (s *FleetService) MoveVehicle(ctx context.Context, id int64, req model.VehicleWarehouseUpdate) (model.Vehicle, error) {
	if req.WarehouseID <= 0 {
		return model.Vehicle{}, invalid("warehouseId is required")
	}
	return s.vehicles.UpdateWarehouse(ctx, id, req)
}

func (s *FleetService) Inventory(ctx context.Context, warehouseID int64) ([]model.InventoryItem, error) {
	if warehouseID <= 0 {
		return nil, invalid("warehouseId is required")
	}
	items, err := s.inventory.ByWarehouse(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.InventoryItem{}
	}
	return items, nil
}

func (s *FleetService) AddStock(ctx context.Context, req model.StockAddition) error {
	if req.WarehouseID <= 0 || req.ProductID <= 0 {
		return invalid("warehouseId and productId are required")
	}
	if req.Quantity <= 0 {
		return invalid("quantity must be positive")
	}
	return s.inventory.Add(ctx, req)
}

func (s *FleetService) AdjustStock(ctx context.Context, req model.StockAdjustment) error {
	if req.WarehouseID <= 0 || req.ProductID <= 0 {
		return invalid("warehouseId and productId are required")
	}
	if req.Delta == 0 {
		return invalid("delta cannot be zero")
	}
	return s.inventory.Adjust(ctx, req)
}
