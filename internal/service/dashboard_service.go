package service

import (
	"context"
	"errors"
	"sort"

	"golang.org/x/sync/errgroup"

	"logigraph-console/internal/model"
)

const (
	defaultLowStockThreshold = 10
	recentOrderLimit         = 5
	customerOrderWindow      = 100
)

type DashboardService struct {
	dashboard  DashboardSource
	products   ProductSource
	customers  CustomerSource
	warehouses WarehouseSource
	orders     OrderSource
	threshold  int
}

func NewDashboardService(dashboard DashboardSource, products ProductSource, customers CustomerSource, warehouses WarehouseSource, orders OrderSource, lowStockThreshold int) *DashboardService {
	if lowStockThreshold <= 0 {
		lowStockThreshold = defaultLowStockThreshold
	}

	return &DashboardService{
		dashboard:  dashboard,
		products:   products,
		customers:  customers,
		warehouses: warehouses,
		orders:     orders,
		threshold:  lowStockThreshold,
	}
}

func (s *DashboardService) Manager(ctx context.Context) (model.ManagerDashboard, error) {
	result := model.ManagerDashboard{
		RecentOrders:   []model.Order{},
		OrdersByStatus: map[string]int64{},
		FleetStatus:    map[string]int64{},
		LowStock:       []model.LowStockAlert{},
		LowStockLimit:  s.threshold,
	}

	// Each panel writes only its own field.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		orders, err := s.dashboard.RecentOrders(gctx)
		if err == nil && orders != nil {
			result.RecentOrders = orders
		}
		return tolerate("recent_orders", err)
	})
	g.Go(func() error {
		counts, err := s.dashboard.OrdersByStatus(gctx)
		if err == nil && counts != nil {
			result.OrdersByStatus = counts
		}
		return tolerate("orders_by_status", err)
	})
	g.Go(func() error {
		counts, err := s.dashboard.FleetStatus(gctx)
		if err == nil && counts != nil {
			result.FleetStatus = counts
		}
		return tolerate("fleet_status", err)
	})
	g.Go(func() error {
		alerts, err := s.dashboard.LowStock(gctx, s.threshold)
		if err == nil && alerts != nil {
			result.LowStock = alerts
		}
		return tolerate("low_stock", err)
	})

	if err := g.Wait(); err != nil {
		return model.ManagerDashboard{}, err
	}
	return result, nil
}

func (s *DashboardService) Admin(ctx context.Context) (model.AdminDashboard, error) {
	result := model.AdminDashboard{RecentOrders: []model.Order{}}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		products, err := s.products.ListProducts(gctx)
		result.ProductCount = len(products)
		return tolerate("products", err)
	})
	g.Go(func() error {
		customers, err := s.customers.List(gctx)
		result.CustomerCount = len(customers)
		return tolerate("customers", err)
	})
	g.Go(func() error {
		warehouses, err := s.warehouses.List(gctx)
		result.WarehouseCount = len(warehouses)
		return tolerate("warehouses", err)
	})
	g.Go(func() error {
		orders, err := s.dashboard.RecentOrders(gctx)
		if err == nil && orders != nil {
			result.RecentOrders = orders
		}
		return tolerate("recent_orders", err)
	})

	if err := g.Wait(); err != nil {
		return model.AdminDashboard{}, err
	}
	return result, nil
}

// Customer summarizes the signed-in customer's own orders. A missing profile
// is normal for a fresh account and leaves Profile nil.
func (s *DashboardService) Customer(ctx context.Context) (model.CustomerDashboard, error) {
	result := model.CustomerDashboard{
		RecentOrders:   []model.Order{},
		OrdersByStatus: map[string]int64{},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		profile, err := s.customers.Profile(gctx)
		if err == nil {
			result.Profile = &profile
			return nil
		}
		if errors.Is(err, model.ErrNotFound) {
			return nil
		}
		return tolerate("profile", err)
	})

	var orders []model.Order
	g.Go(func() error {
		page, err := s.orders.Mine(gctx, model.PageQuery{Page: 0, Size: customerOrderWindow})
		orders = page.Content
		return tolerate("my_orders", err)
	})

	if err := g.Wait(); err != nil {
		return model.CustomerDashboard{}, err
	}

	for _, order := range orders {
		result.OrdersByStatus[string(order.Status)]++
	}
	result.RecentOrders = latestOrders(orders, recentOrderLimit)
	return result, nil
}

func latestOrders(orders []model.Order, limit int) []model.Order {
	sorted := make([]model.Order, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].CreatedAt, sorted[j].CreatedAt
		if a != nil && b != nil && !a.Equal(*b) {
			return a.After(*b)
		}
		return sorted[i].ID > sorted[j].ID
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}
