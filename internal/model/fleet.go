package model

type VehicleStatus string

const (
	VehicleAvailable   VehicleStatus = "AVAILABLE"
	VehicleInTransit   VehicleStatus = "IN_TRANSIT"
	VehicleMaintenance VehicleStatus = "MAINTENANCE"
)

func (s VehicleStatus) Valid() bool {
	switch s {
	case VehicleAvailable, VehicleInTransit, VehicleMaintenance:
		return true
	}
	return false
}

type Vehicle struct {
	ID            int64         `json:"id,omitempty"`
	VehicleNumber string        `json:"vehicleNumber"`
	Type          string        `json:"type,omitempty"`
	Capacity      int           `json:"capacity,omitempty"`
	Status        VehicleStatus `json:"status,omitempty"`
	WarehouseID   *int64        `json:"warehouseId,omitempty"`
}

type VehicleStatusUpdate struct {
	Status VehicleStatus `json:"status"`
}

type VehicleWarehouseUpdate struct {
	WarehouseID int64 `json:"warehouseId"`
}

type InventoryItem struct {
	ID          int64  `json:"id,omitempty"`
	WarehouseID int64  `json:"warehouseId,omitempty"`
	ProductID   int64  `json:"productId"`
	ProductName string `json:"productName,omitempty"`
	Quantity    int    `json:"quantity"`
}

type StockAddition struct {
	WarehouseID int64 `json:"warehouseId"`
	ProductID   int64 `json:"productId"`
	Quantity    int   `json:"quantity"`
}

// StockAdjustment moves stock by Delta, which may be negative.
type StockAdjustment struct {
	WarehouseID int64 `json:"warehouseId"`
	ProductID   int64 `json:"productId"`
	Delta       int   `json:"delta"`
}

type LowStockAlert struct {
	ProductID     int64  `json:"productId"`
	ProductName   string `json:"productName,omitempty"`
	WarehouseID   int64  `json:"warehouseId"`
	WarehouseName string `json:"warehouseName,omitempty"`
	Quantity      int    `json:"quantity"`
}
