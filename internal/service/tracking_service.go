package service

import (
	"context"
	"errors"
	"reflect"
	"time"

	"golang.org/x/sync/errgroup"

	"logigraph-console/internal/event"
	"logigraph-console/internal/model"
	"logigraph-console/internal/upstream"
)

const defaultPollInterval = 5 * time.Second

type TrackingService struct {
	orders   OrderSource
	tracking TrackingSource
	interval time.Duration
}

func NewTrackingService(orders OrderSource, tracking TrackingSource, pollInterval time.Duration) *TrackingService {
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	return &TrackingService{orders: orders, tracking: tracking, interval: pollInterval}
}

// ManagerView is any order with its tracking state.
func (s *TrackingService) ManagerView(ctx context.Context, orderID int64) (model.OrderTracking, error) {
	return s.view(ctx, orderID, s.orders.Get)
}

// CustomerView only resolves orders that belong to the signed-in customer.
func (s *TrackingService) CustomerView(ctx context.Context, orderID int64) (model.OrderTracking, error) {
	return s.view(ctx, orderID, s.orders.MineByID)
}

func (s *TrackingService) view(ctx context.Context, orderID int64, lookup func(context.Context, int64) (model.Order, error)) (model.OrderTracking, error) {
	var result model.OrderTracking

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		order, err := lookup(gctx, orderID)
		result.Order = order
		return err
	})
	g.Go(func() error {
		info, err := s.tracking.ForOrder(gctx, orderID)
		if err == nil {
			result.Tracking = &info
			return nil
		}
		// Orders that were never dispatched have no tracking record.
		if errors.Is(err, model.ErrNotFound) {
			return nil
		}
		return tolerate("tracking", err)
	})

	if err := g.Wait(); err != nil {
		return model.OrderTracking{}, err
	}

	result.Live = result.Tracking != nil && result.Order.Status == model.OrderInTransit
	return result, nil
}

func (s *TrackingService) Start(ctx context.Context, req model.StartTrackingRequest) (model.TrackingInfo, error) {
	if req.OrderID <= 0 || req.VehicleID <= 0 {
		return model.TrackingInfo{}, invalid("orderId and vehicleId are required")
	}
	return s.tracking.Start(ctx, req)
}

// Follow polls the tracking service for orderID and publishes changes to
// topic on bus until ctx ends. It returns the authorization failure that ends a feed; any
// other failure is published once as unavailable and polling continues.
func (s *TrackingService) Follow(ctx context.Context, orderID int64, topic string, bus event.Bus) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	var (
		last        *model.TrackingInfo
		unavailable bool
	)

	for {
		info, err := s.tracking.ForOrder(ctx, orderID)
		switch {
		case err == nil:
			if last == nil || !reflect.DeepEqual(*last, info) {
				bus.Publish(event.New(event.TypeTrackingUpdate, topic, info))
			}
			last = &info
			unavailable = false
		case errors.Is(err, model.ErrUnauthorized):
			return err
		case ctx.Err() != nil:
			return nil
		case !unavailable:
			bus.Publish(event.New(event.TypeTrackingUnavailable, topic, map[string]string{
				"message": upstream.Message(err, "Tracking is temporarily unavailable"),
			}))
			unavailable = true
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
