package event

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeTrackingUpdate      Type = "tracking.update"
	TypeTrackingUnavailable Type = "tracking.unavailable"
	TypeSessionExpired      Type = "session.expired"
)

type Event struct {
	ID        string `json:"id"`
	Type      Type   `json:"type"`
	Topic     string `json:"topic,omitempty"`
	Payload   any    `json:"payload,omitempty"`
	Redirect  string `json:"redirect,omitempty"`
	Timestamp string `json:"timestamp"`
}

func New(eventType Type, topic string, payload any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Topic:     topic,
		Payload:   payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	}
}

// OrderTopic names the stream of events about one order.
func OrderTopic(orderID int64) string {
	return "order:" + strconv.FormatInt(orderID, 10)
}

// WatchTopic names one watcher's private stream of an order. Every live
// socket polls with its own session, so watchers never share a stream.
func WatchTopic(orderID int64) string {
	return OrderTopic(orderID) + "/" + uuid.NewString()
}

type Bus interface {
	Publish(e Event)
	// Subscribe returns events for topic, or every event when topic is empty,
	// and the function that ends the subscription.
	Subscribe(topic string) (<-chan Event, func())
}
