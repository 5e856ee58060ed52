package handler

import (
	"context"
	"log/slog"
	"net/http"

	"logigraph-console/internal/event"
	"logigraph-console/internal/model"
	"logigraph-console/internal/service"
	"logigraph-console/internal/websocket"
)

type TrackingHandler struct {
	tracking *service.TrackingService
	bus      event.Bus
	hub      *websocket.Hub
}

func NewTrackingHandler(tracking *service.TrackingService, bus event.Bus, hub *websocket.Hub) *TrackingHandler {
	return &TrackingHandler{tracking: tracking, bus: bus, hub: hub}
}

func (h *TrackingHandler) ManagerView(w http.ResponseWriter, r *http.Request) {
	h.view(w, r, h.tracking.ManagerView)
}

func (h *TrackingHandler) CustomerView(w http.ResponseWriter, r *http.Request) {
	h.view(w, r, h.tracking.CustomerView)
}

func (h *TrackingHandler) view(w http.ResponseWriter, r *http.Request, load func(context.Context, int64) (model.OrderTracking, error)) {
	id, err := pathID(r, "orderId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	result, err := load(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, result, nil)
}

func (h *TrackingHandler) Start(w http.ResponseWriter, r *http.Request) {
	var payload model.StartTrackingRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	info, err := h.tracking.Start(r.Context(), payload)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusCreated, info, nil)
}

func (h *TrackingHandler) ManagerLive(w http.ResponseWriter, r *http.Request) {
	h.live(w, r, h.tracking.ManagerView)
}

// CustomerLive first checks the order is the customer's own, so a customer
// cannot watch someone else's delivery.
func (h *TrackingHandler) CustomerLive(w http.ResponseWriter, r *http.Request) {
	h.live(w, r, h.tracking.CustomerView)
}

func (h *TrackingHandler) live(w http.ResponseWriter, r *http.Request, authorize func(context.Context, int64) (model.OrderTracking, error)) {
	id, err := pathID(r, "orderId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if _, err := authorize(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	topic := event.WatchTopic(id)
	err = h.hub.Serve(w, r, topic, func(ctx context.Context) error {
		return h.tracking.Follow(ctx, id, topic, h.bus)
	})
	if err != nil {
		slog.DebugContext(r.Context(), "live tracking not started", "order_id", id, "error", err)
	}
}
