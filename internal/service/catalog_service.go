package service

import (
	"context"
	"net/http"
	"strings"

	"logigraph-console/internal/model"
	"logigraph-console/pkg/apierror"
)

// CatalogService covers the admin master data: products, customers and
// warehouses.
type CatalogService struct {
	products   ProductSource
	customers  CustomerSource
	warehouses WarehouseSource
}

func NewCatalogService(products ProductSource, customers CustomerSource, warehouses WarehouseSource) *CatalogService {
	return &CatalogService{products: products, customers: customers, warehouses: warehouses}
}

func invalid(message string) error {
	return apierror.Wrap(model.ErrInvalidInput, "BAD_REQUEST", message, "", http.StatusBadRequest)
}

func validateProduct(product model.Product) error {
	if strings.TrimSpace(product.Name) == "" {
		return invalid("product name is required")
	}
	if product.Price < 0 {
		return invalid("price cannot be negative")
	}
	return nil
}

func (s *CatalogService) Products(ctx context.Context) ([]model.Product, error) {
	return s.products.ListProducts(ctx)
}

func (s *CatalogService) Product(ctx context.Context, id int64) (model.Product, error) {
	return s.products.GetProduct(ctx, id)
}

func (s *CatalogService) CreateProduct(ctx context.Context, product model.Product) (model.Product, error) {
	if err := validateProduct(product); err != nil {
		return model.Product{}, err
	}
	return s.products.CreateProduct(ctx, product)
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id int64, product model.Product) (model.Product, error) {
	if err := validateProduct(product); err != nil {
		return model.Product{}, err
	}
	return s.products.UpdateProduct(ctx, id, product)
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	return s.products.DeleteProduct(ctx, id)
}

func (s *CatalogService) Customers(ctx context.Context) ([]model.Customer, error) {
	return s.customers.List(ctx)
}

func (s *CatalogService) CreateCustomer(ctx context.Context, customer model.Customer) (model.Customer, error) {
	if strings.TrimSpace(customer.Name) == "" {
		return model.Customer{}, invalid("customer name is required")
	}
	return s.customers.Create(ctx, customer)
}

func (s *CatalogService) UpdateCustomer(ctx context.Context, id int64, customer model.Customer) (model.Customer, error) {
	if strings.TrimSpace(customer.Name) == "" {
		return model.Customer{}, invalid("customer name is required")
	}
	return s.customers.Update(ctx, id, customer)
}

func (s *CatalogService) DeleteCustomer(ctx context.Context, id int64) error {
	return s.customers.Delete(ctx, id)
}

func (s *CatalogService) Profile(ctx context.Context) (model.Customer, error) {
	return s.customers.Profile(ctx)
}

func (s *CatalogService) UpdateProfile(ctx context.Context, customer model.Customer) (model.Customer, error) {
	if strings.TrimSpace(customer.Name) == "" {
		return model.Customer{}, invalid("name is required")
	}
	return s.customers.UpdateProfile(ctx, customer)
}

func (s *CatalogService) Warehouses(ctx context.Context) ([]model.Warehouse, error) {
	return s.warehouses.List(ctx)
}

func (s *CatalogService) CreateWarehouse(ctx context.Context, warehouse model.Warehouse) (model.Warehouse, error) {
	if strings.TrimSpace(warehouse.Name) == "" {
		return model.Warehouse{}, invalid("warehouse name is required")
	}
	return s.warehouses.Create(ctx, warehouse)
}

func (s *CatalogService) UpdateWarehouse(ctx context.Context, id int64, warehouse model.Warehouse) (model.Warehouse, error) {
	if strings.TrimSpace(warehouse.Name) == "" {
		return model.Warehouse{}, invalid("warehouse name is required")
	}
	return s.warehouses.Update(ctx, id, warehouse)
}
