// Package events publishes domain events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ContactSubmitted is emitted after a contact form message is stored.
type ContactSubmitted struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Subject     string    `json:"subject"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// BlogPublished is emitted when a post becomes published.
type BlogPublished struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	AuthorID    string    `json:"authorId"`
	PublishedAt time.Time `json:"publishedAt"`
}

// Publisher sends an event to a topic.
type Publisher interface {
	Publish(ctx context.Context, topic, key string, event interface{}) error
	Close() error
}

// KafkaPublisher writes JSON events with a shared kafka.Writer.
type KafkaPublisher struct {
	writer *kafka.Writer
	log    *zap.Logger
}

// NewKafkaPublisher creates an asynchronous publisher. Delivery failures are logged.
func NewKafkaPublisher(brokers []string, log *zap.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.LeastBytes{},
		Async:        true,
		RequiredAcks: kafka.RequireOne,
		Completion: func(messages []kafka.Message, err error) {
			if err == nil {
				return
			}
			for _, m := range messages {
				log.Error("kafka delivery failed", zap.String("topic", m.Topic), zap.ByteString("key", m.Key), zap.Error(err))
			}
		},
	}
	return &KafkaPublisher{writer: writer, log: log}
}

// Publish encodes event as JSON and hands it to the writer.
func (p *KafkaPublisher) Publish(ctx context.Context, topic, key string, event interface{}) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
		Time:  time.Now(),
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
	p.log.Debug("event queued", zap.String("topic", topic), zap.String("key", key))
	return nil
}

// Close flushes pending messages.
func (p *KafkaPublisher) Close() error {
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("close kafka writer: %w", err)
	}
	return nil
}

// NopPublisher drops every event. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, string, interface{}) error { return nil }

func (NopPublisher) Close() error { return nil }
