package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"logigraph-console/internal/event"
	"logigraph-console/internal/metrics"
	"logigraph-console/internal/model"
)

func startHub(t *testing.T) (*Hub, event.Bus) {
	t.Helper()

	bus := event.NewBus()
	hub := NewHub(bus, metrics.New(), []string{"*"})
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(cancel)
	return hub, bus
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) event.Event {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var e event.Event
	require.NoError(t, json.Unmarshal(raw, &e))
	return e
}

func TestServeStreamsTopicEvents(t *testing.T) {
	t.Parallel()

	hub, bus := startHub(t)
	topic := event.OrderTopic(42)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.Serve(w, r, topic, func(ctx context.Context) error {
			// Let the hub register the client before publishing.
			time.Sleep(50 * time.Millisecond)
			bus.Publish(event.New(event.TypeTrackingUpdate, event.OrderTopic(41), "other order"))
			bus.Publish(event.New(event.TypeTrackingUpdate, topic, model.TrackingInfo{OrderID: 42, VehicleNumber: "MH12AB1234"}))
			<-ctx.Done()
			return nil
		})
	}))
	defer server.Close()

	conn := dial(t, server)
	e := readEvent(t, conn)
	require.Equal(t, event.TypeTrackingUpdate, e.Type)
	require.Equal(t, topic, e.Topic)

	payload, ok := e.Payload.(map[string]any)
	require.True(t, ok)
	require.Equal(t, "MH12AB1234", payload["vehicleNumber"])
}

func TestServeSendsSessionExpiredOnUnauthorized(t *testing.T) {
	t.Parallel()

	hub, _ := startHub(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.Serve(w, r, event.OrderTopic(9), func(ctx context.Context) error {
			return fmt.Errorf("poll: %w", model.ErrUnauthorized)
		})
	}))
	defer server.Close()

	conn := dial(t, server)
	e := readEvent(t, conn)
	require.Equal(t, event.TypeSessionExpired, e.Type)
	require.Equal(t, "/login", e.Redirect)

	_, _, err := conn.ReadMessage()
	require.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)
}

func TestOriginChecker(t *testing.T) {
	t.Parallel()

	check := originChecker([]string{"http://console.example"})

	req := httptest.NewRequest(http.MethodGet, "http://api.example/live", nil)
	require.True(t, check(req), "non-browser clients send no origin")

	req.Header.Set("Origin", "http://console.example")
	require.True(t, check(req))

	req.Header.Set("Origin", "http://evil.example")
	require.False(t, check(req))

	req.Header.Set("Origin", "http://api.example")
	require.True(t, check(req), "same host")

	require.True(t, originChecker([]string{"*"})(req))
}
