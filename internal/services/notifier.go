package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"socialnet/internal/config"
	"socialnet/internal/kafka"
)

// Notification event types published to the event bus.
const (
	NotificationFriendRequest  = "friend.request"
	NotificationFriendAccepted = "friend.accepted"
	NotificationNewMessage     = "message.new"
)

// NotificationEvent is the payload published to the notifications topic and
// eventually pushed to the recipient's websocket connection.
type NotificationEvent struct {
	Type        string    `json:"type"`
	ActorID     uint      `json:"actorId"`
	RecipientID uint      `json:"recipientId"`
	SubjectID   uint      `json:"subjectId,omitempty"` // e.g. message ID for message.new
	Timestamp   time.Time `json:"timestamp"`
}

// Notifier publishes notification events. Publishing is best-effort: the
// durable state change has already been committed by the time an event is
// emitted, so a publish failure must never fail the request.
type Notifier interface {
	Notify(ctx context.Context, event NotificationEvent)
}

// kafkaNotifier publishes notification events to a Kafka topic.
type kafkaNotifier struct {
	producer kafka.MessageProducer
	topic    string
}

// NewKafkaNotifier creates a Notifier backed by the given producer.
func NewKafkaNotifier(producer kafka.MessageProducer, cfg config.KafkaConfig) Notifier {
	return &kafkaNotifier{producer: producer, topic: cfg.NotificationsTopic}
}

// Notify marshals and publishes the event, keyed by recipient so consumers
// can partition per user. Errors are logged and swallowed.
func (n *kafkaNotifier) Notify(ctx context.Context, event NotificationEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("failed to marshal notification event %s: %v", event.Type, err)
		return
	}

	key := []byte(fmt.Sprintf("%d", event.RecipientID))
	if err := n.producer.SendMessage(ctx, n.topic, key, payload); err != nil {
		log.Printf("failed to publish notification event %s for user %d: %v",
			event.Type, event.RecipientID, err)
	}
}

// NoopNotifier discards all events. Used where no event bus is wired, e.g.
// the admin CLI and tests.
type NoopNotifier struct{}

// Notify implements Notifier.
func (NoopNotifier) Notify(ctx context.Context, event NotificationEvent) {}
