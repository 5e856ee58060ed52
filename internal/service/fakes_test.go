package service

import (
	"context"
	"sync"

	"logigraph-console/internal/model"
)

type fakeIssuer struct {
	login    func(req model.LoginRequest) (model.LoginResponse, error)
	register func(username string, password string) error
}

func (f *fakeIssuer) Login(_ context.Context, req model.LoginRequest) (model.LoginResponse, error) {
	return f.login(req)
}

func (f *fakeIssuer) Register(_ context.Context, username string, password string) error {
	return f.register(username, password)
}

type fakeProducts struct {
	products []model.Product
	err      error
}

func (f *fakeProducts) ListProducts(context.Context) ([]model.Product, error) {
	return f.products, f.err
}

func (f *fakeProducts) GetProduct(_ context.Context, id int64) (model.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Product{}, model.ErrNotFound
}

func (f *fakeProducts) CreateProduct(_ context.Context, product model.Product) (model.Product, error) {
	product.ID = int64(len(f.products) + 1)
	f.products = append(f.products, product)
	return product, nil
}

func (f *fakeProducts) UpdateProduct(_ context.Context, id int64, product model.Product) (model.Product, error) {
	product.ID = id
	return product, nil
}

func (f *fakeProducts) DeleteProduct(context.Context, int64) error {
	return nil
}

type fakeCustomers struct {
	customers  []model.Customer
	profile    *model.Customer
	err        error
	profileErr error
}

func (f *fakeCustomers) List(context.Context) ([]model.Customer, error) {
	return f.customers, f.err
}

func (f *fakeCustomers) Create(_ context.Context, c model.Customer) (model.Customer, error) {
	return c, nil
}

func (f *fakeCustomers) Update(_ context.Context, id int64, c model.Customer) (model.Customer, error) {
	c.ID = id
	return c, nil
}

func (f *fakeCustomers) Delete(context.Context, int64) error {
	return nil
}

func (f *fakeCustomers) Profile(context.Context) (model.Customer, error) {
	if f.profileErr != nil {
		return model.Customer{}, f.profileErr
	}
	if f.profile == nil {
		return model.Customer{}, model.ErrNotFound
	}
	return *f.profile, nil
}

func (f *fakeCustomers) UpdateProfile(_ context.Context, c model.Customer) (model.Customer, error) {
	return c, nil
}

type fakeWarehouses struct {
	warehouses []model.Warehouse
	err        error
}

func (f *fakeWarehouses) List(context.Context) ([]model.Warehouse, error) {
	return f.warehouses, f.err
}

func (f *fakeWarehouses) Create(_ context.Context, w model.Warehouse) (model.Warehouse, error) {
	return w, nil
}

func (f *fakeWarehouses) Update(_ context.Context, id int64, w model.Warehouse) (model.Warehouse, error) {
	w.ID = id
	return w, nil
}

type fakeOrders struct {
	placed  *model.PlaceOrderRequest
	placeFn func(req model.PlaceOrderRequest) (model.Order, error)
	mine    model.OrderPage
	byID    map[int64]model.Order
	items   []model.OrderItem
	history []model.OrderHistoryEntry
	listed  *model.OrderFilter
	err     error
}

func (f *fakeOrders) Place(_ context.Context, req model.PlaceOrderRequest) (model.Order, error) {
	f.placed = &req
	if f.placeFn != nil {
		return f.placeFn(req)
	}
	return model.Order{ID: 1, Status: model.OrderPending}, nil
}

func (f *fakeOrders) Mine(context.Context, model.PageQuery) (model.OrderPage, error) {
	return f.mine, f.err
}

func (f *fakeOrders) MineByID(_ context.Context, id int64) (model.Order, error) {
	return f.lookup(id)
}

func (f *fakeOrders) List(_ context.Context, filter model.OrderFilter) (model.OrderPage, error) {
	f.listed = &filter
	return f.mine, f.err
}

func (f *fakeOrders) Get(_ context.Context, id int64) (model.Order, error) {
	return f.lookup(id)
}

func (f *fakeOrders) lookup(id int64) (model.Order, error) {
	if f.err != nil {
		return model.Order{}, f.err
	}
	order, ok := f.byID[id]
	if !ok {
		return model.Order{}, model.ErrNotFound
	}
	return order, nil
}

func (f *fakeOrders) Items(context.Context, int64) ([]model.OrderItem, error) {
	return f.items, nil
}

func (f *fakeOrders) History(context.Context, int64) ([]model.OrderHistoryEntry, error) {
	return f.history, nil
}

func (f *fakeOrders) UpdateStatus(_ context.Context, id int64, req model.UpdateOrderStatusRequest) (model.Order, error) {
	return model.Order{ID: id, Status: req.Status}, nil
}

func (f *fakeOrders) Cancel(_ context.Context, id int64, _ model.CancelOrderRequest) (model.Order, error) {
	return model.Order{ID: id, Status: model.OrderCancelled}, nil
}

type fakeDashboard struct {
	recent    []model.Order
	byStatus  map[string]int64
	fleet     map[string]int64
	lowStock  []model.LowStockAlert
	threshold int
	fleetErr  error
	recentErr error
}

func (f *fakeDashboard) RecentOrders(context.Context) ([]model.Order, error) {
	return f.recent, f.recentErr
}

func (f *fakeDashboard) OrdersByStatus(context.Context) (map[string]int64, error) {
	return f.byStatus, nil
}

func (f *fakeDashboard) FleetStatus(context.Context) (map[string]int64, error) {
	return f.fleet, f.fleetErr
}

func (f *fakeDashboard) LowStock(_ context.Context, threshold int) ([]model.LowStockAlert, error) {
	f.threshold = threshold
	return f.lowStock, nil
}

type fakeTracking struct {
	mu      sync.Mutex
	replies []trackingReply
	calls   int
	started *model.StartTrackingRequest
}

type trackingReply struct {
	info model.TrackingInfo
	err  error
}

func (f *fakeTracking) Start(_ context.Context, req model.StartTrackingRequest) (model.TrackingInfo, error) {
	f.started = &req
	return model.TrackingInfo{OrderID: req.OrderID}, nil
}

// ForOrder answers with the scripted replies in order, repeating the last.
func (f *fakeTracking) ForOrder(context.Context, int64) (model.TrackingInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.replies) == 0 {
		return model.TrackingInfo{}, model.ErrNotFound
	}
	reply := f.replies[min(f.calls, len(f.replies)-1)]
	f.calls++
	return reply.info, reply.err
}

func (f *fakeTracking) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeRoutes struct {
	route model.OptimalRoute
	err   error
}

func (f *fakeRoutes) OptimalPath(context.Context) (model.OptimalRoute, error) {
	return f.route, f.err
}

type fakeVehicles struct {
	created *model.Vehicle
	status  model.VehicleStatus
}

func (f *fakeVehicles) List(_ context.Context, status model.VehicleStatus) ([]model.Vehicle, error) {
	f.status = status
	return []model.Vehicle{}, nil
}

func (f *fakeVehicles) Create(_ context.Context, vehicle model.Vehicle) (model.Vehicle, error) {
	f.created = &vehicle
	return vehicle, nil
}

func (f *fakeVehicles) UpdateStatus(_ context.Context, id int64, req model.VehicleStatusUpdate) (model.Vehicle, error) {
	return model.Vehicle{ID: id, Status: req.Status}, nil
}

func (f *fakeVehicles) UpdateWarehouse(_ context.Context, id int64, req model.VehicleWarehouseUpdate) (model.Vehicle, error) {
	return model.Vehicle{ID: id, WarehouseID: &req.WarehouseID}, nil
}
