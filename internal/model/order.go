package model

import (
	"bytes"
	"encoding/json"
	"time"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderConfirmed OrderStatus = "CONFIRMED"
	OrderInTransit OrderStatus = "IN_TRANSIT"
	OrderDelivered OrderStatus = "DELIVERED"
	OrderCancelled OrderStatus = "CANCELLED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderInTransit, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

type Order struct {
	ID               int64       `json:"id"`
	TrackingID       string      `json:"trackingId,omitempty"`
	CustomerID       int64       `json:"customerId,omitempty"`
	Status           OrderStatus `json:"status"`
	TotalAmount      float64     `json:"totalAmount,omitempty"`
	ItemCount        int         `json:"itemCount,omitempty"`
	DeliveryLocation string      `json:"deliveryLocation,omitempty"`
	Notes            string      `json:"notes,omitempty"`
	VehicleID        *int64      `json:"vehicleId,omitempty"`
	CreatedAt        *time.Time  `json:"createdAt,omitempty"`
	Items            []OrderItem `json:"items,omitempty"`
}

type OrderItem struct {
	ID          int64   `json:"id,omitempty"`
	ProductID   int64   `json:"productId"`
	ProductName string  `json:"productName,omitempty"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price,omitempty"`
}

type OrderHistoryEntry struct {
	Status    OrderStatus `json:"status"`
	Notes     string      `json:"notes,omitempty"`
	ChangedBy string      `json:"changedBy,omitempty"`
	ChangedAt *time.Time  `json:"changedAt,omitempty"`
}

// PlaceOrderRequest maps product id to quantity, the shape the order
// service expects.
type PlaceOrderRequest struct {
	Items   map[int64]int `json:"items"`
	DestLat float64       `json:"destLat"`
	DestLng float64       `json:"destLng"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status"`
	Notes  string      `json:"notes,omitempty"`
}

type CancelOrderRequest struct {
	Reason string `json:"reason,omitempty"`
}

type OrderFilter struct {
	PageQuery
	Status     OrderStatus
	CustomerID int64
}

// OrderPage is a page of orders. The order service answers with either a
// bare array or a paged object depending on the endpoint; both decode here.
type OrderPage struct {
	Content       []Order `json:"content"`
	TotalElements int64   `json:"totalElements"`
	TotalPages    int     `json:"totalPages"`
	Number        int     `json:"number"`
	Size          int     `json:"size"`
}

func (p *OrderPage) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var orders []Order
		if err := json.Unmarshal(trimmed, &orders); err != nil {
			return err
		}
		*p = OrderPage{
			Content:       orders,
			TotalElements: int64(len(orders)),
			TotalPages:    1,
			Size:          len(orders),
		}
		return nil
	}

	type paged OrderPage
	var decoded paged
	if err := json.Unmarshal(trimmed, &decoded); err != nil {
		return err
	}
	*p = OrderPage(decoded)
	return nil
}

// OrderDetail is the manager order screen.
type OrderDetail struct {
	Order   Order               `json:"order"`
	Items   []OrderItem         `json:"items"`
	History []OrderHistoryEntry `json:"history"`
}
