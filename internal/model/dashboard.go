package model

type ManagerDashboard struct {
	RecentOrders   []Order          `json:"recentOrders"`
	OrdersByStatus map[string]int64 `json:"ordersByStatus"`
	FleetStatus    map[string]int64 `json:"fleetStatus"`
	LowStock       []LowStockAlert  `json:"lowStock"`
	LowStockLimit  int              `json:"lowStockThreshold"`
}

type AdminDashboard struct {
	ProductCount   int     `json:"productCount"`
	CustomerCount  int     `json:"customerCount"`
	WarehouseCount int     `json:"warehouseCount"`
	RecentOrders   []Order `json:"recentOrders"`
}

type CustomerDashboard struct {
	Profile        *Customer        `json:"profile,omitempty"`
	RecentOrders   []Order          `json:"recentOrders"`
	OrdersByStatus map[string]int64 `json:"ordersByStatus"`
}

// CreateOrderForm is everything the create-order screen needs up front.
type CreateOrderForm struct {
	Products    []Product                 `json:"products"`
	Warehouses  []Warehouse               `json:"warehouses"`
	Inventories map[int64][]InventoryItem `json:"inventoriesByWarehouse"`
}
