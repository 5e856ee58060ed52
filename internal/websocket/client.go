package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"logigraph-console/internal/event"
	"logigraph-console/internal/model"
	"logigraph-console/internal/session"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 5 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Peers only ever send control frames.
	maxMessageSize = 512

	sendBuffer = 16
)

// Follower produces the events for one socket's topic until ctx ends.
type Follower func(ctx context.Context) error

// Client is a middleman between one websocket connection and the hub.
type Client struct {
	hub   *Hub
	conn  *websocket.Conn
	topic string

	// Buffered channel of outbound messages, closed by the hub.
	send chan []byte

	// final carries the last frame before the socket is closed; nil closes
	// without one.
	final chan []byte
}

// Serve upgrades the request and streams topic's events until the peer goes
// away, the request context ends, or follow returns. When follow ends with an
// authorization failure the peer gets a session.expired frame pointing at the
// login screen.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, topic string, follow Follower) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader has already answered with an HTTP error.
		return err
	}

	client := &Client{
		hub:   h,
		conn:  conn,
		topic: topic,
		send:  make(chan []byte, sendBuffer),
		final: make(chan []byte, 1),
	}

	if !client.hub.attach(client) {
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"), time.Now().Add(writeWait))
		return conn.Close()
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	go client.writePump()
	go func() {
		err := follow(ctx)
		if errors.Is(err, model.ErrUnauthorized) {
			client.final <- expiredFrame()
			return
		}
		if err != nil && ctx.Err() == nil {
			slog.WarnContext(ctx, "live feed stopped", "topic", topic, "error", err)
		}
		// final is buffered, so this never blocks once the writer is gone.
		client.final <- nil
	}()

	client.readPump()
	cancel()
	h.detach(client)
	return nil
}

func expiredFrame() []byte {
	e := event.New(event.TypeSessionExpired, "", nil)
	e.Redirect = session.LoginPath
	frame, _ := json.Marshal(e)
	return frame
}

// readPump drains the connection so control frames are processed. It
// returns when the peer goes away or the connection is closed.
func (c *Client) readPump() {
	defer c.conn.Close()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Debug("live socket closed", "topic", c.topic, "error", err)
			}
			return
		}
	}
}

// writePump pumps messages from the hub to the websocket connection. It owns
// every write on the connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				c.closeWith(websocket.CloseGoingAway, nil)
				return
			}
			if err := c.write(websocket.TextMessage, message); err != nil {
				return
			}
		case frame := <-c.final:
			c.closeWith(websocket.CloseNormalClosure, frame)
			return
		case <-ticker.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) write(messageType int, payload []byte) error {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(messageType, payload)
}

func (c *Client) closeWith(code int, frame []byte) {
	if frame != nil {
		_ = c.write(websocket.TextMessage, frame)
	}
	_ = c.write(websocket.CloseMessage, websocket.FormatCloseMessage(code, ""))
}
