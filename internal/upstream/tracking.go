package upstream

import (
	"context"
	"net/http"
	"strconv"

	"logigraph-console/internal/model"
)

// TrackingClient talks to the tracking service, a separate backend with its
// own base URL.
type TrackingClient struct {
	client *Client
}

func NewTrackingClient(client *Client) *TrackingClient {
	return &TrackingClient{client: client}
}

func (t *TrackingClient) Start(ctx context.Context, req model.StartTrackingRequest) (model.TrackingInfo, error) {
	var info model.TrackingInfo
	err := t.client.send(ctx, http.MethodPost, "/tracking/start", req, &info)
	return info, err
}

func (t *TrackingClient) ForOrder(ctx context.Context, orderID int64) (model.TrackingInfo, error) {
	var info model.TrackingInfo
	err := t.client.get(ctx, "/tracking/order/"+strconv.FormatInt(orderID, 10), nil, &info)
	return info, err
}
