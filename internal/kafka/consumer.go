package kafka

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"socialnet/internal/config"
)

// MessageHandler is the callback type for processing consumed messages.
type MessageHandler func(ctx context.Context, msg *kafka.Message) error

// MessageConsumer defines the interface for a Kafka message consumer.
type MessageConsumer interface {
	Consume(ctx context.Context, topics []string, groupID string, handler MessageHandler) error
	Close()
}

// confluentKafkaConsumer implements MessageConsumer using confluent-kafka-go.
type confluentKafkaConsumer struct {
	consumer *kafka.Consumer
	cfg      config.KafkaConfig
	groupID  string
}

// NewConfluentKafkaConsumer creates a new Kafka consumer instance. The group
// is joined when Consume is called.
func NewConfluentKafkaConsumer(cfg config.KafkaConfig) (MessageConsumer, error) {
	return &confluentKafkaConsumer{cfg: cfg}, nil
}

// Consume polls the given topics and invokes handler per message, committing
// offsets only after the handler succeeds. Blocks until the context is
// canceled or a fatal broker error occurs.
func (c *confluentKafkaConsumer) Consume(ctx context.Context, topics []string, groupID string, handler MessageHandler) error {
	if len(topics) == 0 {
		return fmt.Errorf("kafka consumer: no topics specified")
	}
	c.groupID = groupID

	configMap := &kafka.ConfigMap{
		"bootstrap.servers":  strings.Join(c.cfg.Brokers, ","),
		"group.id":           c.groupID,
		"auto.offset.reset":  "latest",
		"enable.auto.commit": "false",
	}
	if c.cfg.Protocol != "" {
		_ = configMap.SetKey("security.protocol", c.cfg.Protocol)
	}
	if c.cfg.ClientID != "" {
		_ = configMap.SetKey("client.id", c.cfg.ClientID)
	}

	consumer, err := kafka.NewConsumer(configMap)
	if err != nil {
		return fmt.Errorf("failed to create Kafka consumer for group %s: %w", groupID, err)
	}
	c.consumer = consumer

	if err := c.consumer.SubscribeTopics(topics, nil); err != nil {
		_ = c.consumer.Close()
		return fmt.Errorf("failed to subscribe to topics %v for group %s: %w", topics, groupID, err)
	}

	log.Printf("kafka consumer started, group %s, topics %v", groupID, topics)

	for {
		select {
		case <-ctx.Done():
			log.Printf("kafka consumer group %s shutting down", groupID)
			return ctx.Err()
		default:
			ev := c.consumer.Poll(1000)
			if ev == nil {
				continue
			}

			switch e := ev.(type) {
			case *kafka.Message:
				if err := handler(ctx, e); err != nil {
					log.Printf("error processing kafka message (topic %s, offset %v): %v",
						*e.TopicPartition.Topic, e.TopicPartition.Offset, err)
					continue
				}
				if _, err := c.consumer.CommitMessage(e); err != nil {
					log.Printf("failed to commit offset (topic %s, offset %v): %v",
						*e.TopicPartition.Topic, e.TopicPartition.Offset, err)
				}
			case kafka.Error:
				if e.IsFatal() {
					log.Printf("fatal kafka error for group %s: %v", groupID, e)
					return e
				}
				log.Printf("kafka consumer error for group %s: %v", groupID, e)
			}
		}
	}
}

// Close closes the Kafka consumer.
func (c *confluentKafkaConsumer) Close() {
	if c.consumer == nil {
		return
	}
	if err := c.consumer.Close(); err != nil {
		log.Printf("error closing kafka consumer for group %s: %v", c.groupID, err)
	}
	c.consumer = nil
}
