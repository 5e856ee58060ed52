package upstream

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"logigraph-console/internal/model"
)

type OrderClient struct {
	client *Client
}

func NewOrderClient(client *Client) *OrderClient {
	return &OrderClient{client: client}
}

func pageValues(page model.PageQuery) url.Values {
	values := url.Values{}
	values.Set("page", strconv.Itoa(page.Page))
	values.Set("size", strconv.Itoa(page.Size))
	return values
}

// Place creates an order for the signed-in customer.
func (o *OrderClient) Place(ctx context.Context, req model.PlaceOrderRequest) (model.Order, error) {
	var order model.Order
	err := o.client.send(ctx, http.MethodPost, "/customer/orders", req, &order)
	return order, err
}

func (o *OrderClient) Mine(ctx context.Context, page model.PageQuery) (model.OrderPage, error) {
	var orders model.OrderPage
	err := o.client.get(ctx, "/customer/orders", pageValues(page), &orders)
	return orders, err
}

func (o *OrderClient) MineByID(ctx context.Context, id int64) (model.Order, error) {
	var order model.Order
	err := o.client.get(ctx, "/customer/orders/"+strconv.FormatInt(id, 10), nil, &order)
	return order, err
}

// List is the manager listing. A status filter wins over a customer filter,
// the backend has no combined query.
func (o *OrderClient) List(ctx context.Context, filter model.OrderFilter) (model.OrderPage, error) {
	path := "/manager/orders"
	switch {
	case filter.Status != "":
		path = "/manager/orders/status/" + url.PathEscape(string(filter.Status))
	case filter.CustomerID > 0:
		path = "/manager/orders/customer/" + strconv.FormatInt(filter.CustomerID, 10)
	}

	var orders model.OrderPage
	err := o.client.get(ctx, path, pageValues(filter.PageQuery), &orders)
	return orders, err
}

func (o *OrderClient) Get(ctx context.Context, id int64) (model.Order, error) {
	var order model.Order
	err := o.client.get(ctx, "/manager/orders/"+strconv.FormatInt(id, 10), nil, &order)
	return order, err
}

func (o *OrderClient) ByTrackingID(ctx context.Context, trackingID string) (model.Order, error) {
	var order model.Order
	err := o.client.get(ctx, "/manager/orders/tracking/"+url.PathEscape(trackingID), nil, &order)
	return order, err
}

func (o *OrderClient) Items(ctx context.Context, id int64) ([]model.OrderItem, error) {
	var items []model.OrderItem
	err := o.client.get(ctx, "/manager/orders/"+strconv.FormatInt(id, 10)+"/items", nil, &items)
	return items, err
}

func (o *OrderClient) History(ctx context.Context, id int64) ([]model.OrderHistoryEntry, error) {
	var history []model.OrderHistoryEntry
	err := o.client.get(ctx, "/manager/orders/"+strconv.FormatInt(id, 10)+"/history", nil, &history)
	return history, err
}

func (o *OrderClient) UpdateStatus(ctx context.Context, id int64, req model.UpdateOrderStatusRequest) (model.Order, error) {
	var order model.Order
	err := o.client.send(ctx, http.MethodPut, "/manager/orders/"+strconv.FormatInt(id, 10)+"/status", req, &order)
	return order, err
}

func (o *OrderClient) Cancel(ctx context.Context, id int64, req model.CancelOrderRequest) (model.Order, error) {
	var order model.Order
	err := o.client.send(ctx, http.MethodPost, "/manager/orders/"+strconv.FormatInt(id, 10)+"/cancel", req, &order)
	return order, err
}
