package service

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"logigraph-console/internal/model"
	"logigraph-console/pkg/apierror"
)

const (
	defaultPageSize      = 20
	maxPageSize          = 100
	defaultFetchParallel = 4

	unfulfillableHint = "This product combination is not available from a single warehouse. Please try removing some items and placing a separate order, or contact support."
)

type OrderService struct {
	orders      OrderSource
	products    ProductSource
	warehouses  WarehouseSource
	inventory   InventorySource
	concurrency int
}

func NewOrderService(orders OrderSource, products ProductSource, warehouses WarehouseSource, inventory InventorySource, concurrency int) *OrderService {
	if concurrency <= 0 {
		concurrency = defaultFetchParallel
	}

	return &OrderService{
		orders:      orders,
		products:    products,
		warehouses:  warehouses,
		inventory:   inventory,
		concurrency: concurrency,
	}
}

func normalizePage(page model.PageQuery) model.PageQuery {
	if page.Page < 0 {
		page.Page = 0
	}
	if page.Size <= 0 {
		page.Size = defaultPageSize
	}
	if page.Size > maxPageSize {
		page.Size = maxPageSize
	}
	return page
}

func (s *OrderService) List(ctx context.Context, filter model.OrderFilter) (model.OrderPage, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return model.OrderPage{}, apierror.Wrap(model.ErrInvalidInput, "BAD_REQUEST", "unknown order status", string(filter.Status), http.StatusBadRequest)
	}
	filter.PageQuery = normalizePage(filter.PageQuery)
	return s.orders.List(ctx, filter)
}

// Detail loads the order with its items and status history in parallel.
func (s *OrderService) Detail(ctx context.Context, id int64) (model.OrderDetail, error) {
	detail := model.OrderDetail{Items: []model.OrderItem{}, History: []model.OrderHistoryEntry{}}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		order, err := s.orders.Get(gctx, id)
		detail.Order = order
		return err
	})
	g.Go(func() error {
		items, err := s.orders.Items(gctx, id)
		if err == nil && items != nil {
			detail.Items = items
		}
		return tolerate("order_items", err)
	})
	g.Go(func() error {
		history, err := s.orders.History(gctx, id)
		if err == nil && history != nil {
			detail.History = history
		}
		return tolerate("order_history", err)
	})

	if err := g.Wait(); err != nil {
		return model.OrderDetail{}, err
	}
	return detail, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, id int64, req model.UpdateOrderStatusRequest) (model.Order, error) {
	if !req.Status.Valid() {
		return model.Order{}, apierror.Wrap(model.ErrInvalidInput, "BAD_REQUEST", "unknown order status", string(req.Status), http.StatusBadRequest)
	}
	return s.orders.UpdateStatus(ctx, id, req)
}

func (s *OrderService) Cancel(ctx context.Context, id int64, req model.CancelOrderRequest) (model.Order, error) {
	return s.orders.Cancel(ctx, id, req)
}

func (s *OrderService) Mine(ctx context.Context, page model.PageQuery) (model.OrderPage, error) {
	return s.orders.Mine(ctx, normalizePage(page))
}

func (s *OrderService) MineByID(ctx context.Context, id int64) (model.Order, error) {
	return s.orders.MineByID(ctx, id)
}

func (s *OrderService) Place(ctx context.Context, req model.PlaceOrderRequest) (model.Order, error) {
	if err := validateItems(req.Items); err != nil {
		return model.Order{}, err
	}
	if req.DestLat == 0 && req.DestLng == 0 {
		return model.Order{}, apierror.Wrap(model.ErrInvalidInput, "BAD_REQUEST", "Please enter delivery location", "destLat and destLng are required", http.StatusBadRequest)
	}
	if req.DestLat < -90 || req.DestLat > 90 || req.DestLng < -180 || req.DestLng > 180 {
		return model.Order{}, apierror.Wrap(model.ErrInvalidInput, "BAD_REQUEST", "delivery location is out of range", "", http.StatusBadRequest)
	}

	order, err := s.orders.Place(ctx, req)
	if errors.Is(err, model.ErrUnfulfilled) {
		return model.Order{}, apierror.Wrap(err, "UNFULFILLABLE", unfulfillableHint, "", http.StatusConflict)
	}
	return order, err
}

func validateItems(items map[int64]int) error {
	if len(items) == 0 {
		return apierror.Wrap(model.ErrInvalidInput, "BAD_REQUEST", "Please add products to your order", "", http.StatusBadRequest)
	}
	for productID, quantity := range items {
		if productID <= 0 || quantity <= 0 {
			return apierror.Wrap(model.ErrInvalidInput, "BAD_REQUEST", "every item needs a product and a positive quantity", "", http.StatusBadRequest)
		}
	}
	return nil
}

// Form gathers the catalog, the warehouses and every warehouse's stock.
// Stock is fetched with bounded parallelism; a warehouse whose stock cannot
// be read shows as empty.
func (s *OrderService) Form(ctx context.Context) (model.CreateOrderForm, error) {
	form := model.CreateOrderForm{
		Products:    []model.Product{},
		Warehouses:  []model.Warehouse{},
		Inventories: map[int64][]model.InventoryItem{},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		products, err := s.products.ListProducts(gctx)
		if err == nil && products != nil {
			form.Products = products
		}
		return err
	})
	g.Go(func() error {
		warehouses, err := s.warehouses.List(gctx)
		if err == nil && warehouses != nil {
			form.Warehouses = warehouses
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return model.CreateOrderForm{}, err
	}

	var mu sync.Mutex
	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, warehouse := range form.Warehouses {
		g.Go(func() error {
			items, err := s.inventory.ByWarehouse(gctx, warehouse.ID)
			if err != nil || items == nil {
				items = []model.InventoryItem{}
			}
			mu.Lock()
			form.Inventories[warehouse.ID] = items
			mu.Unlock()
			return tolerate("warehouse_inventory", err)
		})
	}
	if err := g.Wait(); err != nil {
		return model.CreateOrderForm{}, err
	}

	return form, nil
}

// Fulfilment lists the warehouses whose stock covers every requested item,
// the same rule the order service applies when placing the order.
func (s *OrderService) Fulfilment(ctx context.Context, items map[int64]int) ([]model.Warehouse, error) {
	if err := validateItems(items); err != nil {
		return nil, err
	}

	form, err := s.Form(ctx)
	if err != nil {
		return nil, err
	}

	return fulfillingWarehouses(form, items), nil
}

func fulfillingWarehouses(form model.CreateOrderForm, items map[int64]int) []model.Warehouse {
	matches := []model.Warehouse{}
	for _, warehouse := range form.Warehouses {
		stock := map[int64]int{}
		for _, item := range form.Inventories[warehouse.ID] {
			stock[item.ProductID] += item.Quantity
		}

		covered := true
		for productID, quantity := range items {
			if stock[productID] < quantity {
				covered = false
				break
			}
		}
		if covered {
			matches = append(matches, warehouse)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	return matches
}
