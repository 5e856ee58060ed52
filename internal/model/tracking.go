package model

import "time"

type Location struct {
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	Speed     float64    `json:"speed,omitempty"`
	Heading   float64    `json:"heading,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

type TrackingInfo struct {
	OrderID           int64       `json:"orderId"`
	Status            OrderStatus `json:"status,omitempty"`
	VehicleNumber     string      `json:"vehicleNumber,omitempty"`
	DriverName        string      `json:"driverName,omitempty"`
	CurrentLocation   *Location   `json:"currentLocation,omitempty"`
	EstimatedDelivery *time.Time  `json:"estimatedDelivery,omitempty"`
}

type StartTrackingRequest struct {
	OrderID   int64 `json:"orderId"`
	VehicleID int64 `json:"vehicleId"`
}

// OrderTracking is the tracking screen: the order plus whatever the
// tracking service knows. Tracking is nil until the order is dispatched.
type OrderTracking struct {
	Order    Order         `json:"order"`
	Tracking *TrackingInfo `json:"tracking,omitempty"`
	Live     bool          `json:"live"`
}
