package upstream

import (
	"context"
	"net/http"
	"strconv"

	"logigraph-console/internal/model"
)

type CatalogClient struct {
	client *Client
}

func NewCatalogClient(client *Client) *CatalogClient {
	return &CatalogClient{client: client}
}

func (c *CatalogClient) ListProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := c.client.get(ctx, "/catalog/products", nil, &products)
	return products, err
}

func (c *CatalogClient) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	var product model.Product
	err := c.client.get(ctx, "/catalog/products/"+strconv.FormatInt(id, 10), nil, &product)
	return product, err
}

func (c *CatalogClient) CreateProduct(ctx context.Context, product model.Product) (model.Product, error) {
	var created model.Product
	err := c.client.send(ctx, http.MethodPost, "/catalog/products", product, &created)
	return created, err
}

func (c *CatalogClient) UpdateProduct(ctx context.Context, id int64, product model.Product) (model.Product, error) {
	var updated model.Product
	err := c.client.send(ctx, http.MethodPut, "/catalog/products/"+strconv.FormatInt(id, 10), product, &updated)
	return updated, err
}

func (c *CatalogClient) DeleteProduct(ctx context.Context, id int64) error {
	return c.client.send(ctx, http.MethodDelete, "/catalog/products/"+strconv.FormatInt(id, 10), nil, nil)
}

type CustomerClient struct {
	client *Client
}

func NewCustomerClient(client *Client) *CustomerClient {
	return &CustomerClient{client: client}
}

func (c *CustomerClient) List(ctx context.Context) ([]model.Customer, error) {
	var customers []model.Customer
	err := c.client.get(ctx, "/customers", nil, &customers)
	return customers, err
}

func (c *CustomerClient) Get(ctx context.Context, id int64) (model.Customer, error) {
	var customer model.Customer
	err := c.client.get(ctx, "/customers/"+strconv.FormatInt(id, 10), nil, &customer)
	return customer, err
}

func (c *CustomerClient) Create(ctx context.Context, customer model.Customer) (model.Customer, error) {
	var created model.Customer
	err := c.client.send(ctx, http.MethodPost, "/customers", customer, &created)
	return created, err
}

func (c *CustomerClient) Update(ctx context.Context, id int64, customer model.Customer) (model.Customer, error) {
	var updated model.Customer
	err := c.client.send(ctx, http.MethodPut, "/customers/"+strconv.FormatInt(id, 10), customer, &updated)
	return updated, err
}

func (c *CustomerClient) Delete(ctx context.Context, id int64) error {
	return c.client.send(ctx, http.MethodDelete, "/customers/"+strconv.FormatInt(id, 10), nil, nil)
}

// Profile is the signed-in customer's own record.
func (c *CustomerClient) Profile(ctx context.Context) (model.Customer, error) {
	var customer model.Customer
	err := c.client.get(ctx, "/customer/profile", nil, &customer)
	return customer, err
}

func (c *CustomerClient) UpdateProfile(ctx context.Context, customer model.Customer) (model.Customer, error) {
	var updated model.Customer
	err := c.client.send(ctx, http.MethodPut, "/customer/profile", customer, &updated)
	return updated, err
}

type WarehouseClient struct {
	client *Client
}

func NewWarehouseClient(client *Client) *WarehouseClient {
	return &WarehouseClient{client: client}
}

func (w *WarehouseClient) List(ctx context.Context) ([]model.Warehouse, error) {
	var warehouses []model.Warehouse
	err := w.client.get(ctx, "/warehouses/manager", nil, &warehouses)
	return warehouses, err
}

func (w *WarehouseClient) Get(ctx context.Context, id int64) (model.Warehouse, error) {
	var warehouse model.Warehouse
	err := w.client.get(ctx, "/warehouses/manager/"+strconv.FormatInt(id, 10), nil, &warehouse)
	return warehouse, err
}

func (w *WarehouseClient) Create(ctx context.Context, warehouse model.Warehouse) (model.Warehouse, error) {
	var created model.Warehouse
	err := w.client.send(ctx, http.MethodPost, "/warehouses/admin", warehouse, &created)
	return created, err
}

func (w *WarehouseClient) Update(ctx context.Context, id int64, warehouse model.Warehouse) (model.Warehouse, error) {
	var updated model.Warehouse
	err := w.client.send(ctx, http.MethodPut, "/warehouses/admin/"+strconv.FormatInt(id, 10), warehouse, &updated)
	return updated, err
}
