package notification

import (
	"context"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/segmentio/kafka-go"
)

// MessageWriter is the part of *kafka.Writer the notifier needs
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Event is the payload published for every notification
type Event struct {
	To      string    `json:"to"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	SentAt  time.Time `json:"sent_at"`
}

// KafkaNotifier publishes notifications to a topic for an outbound mail worker
type KafkaNotifier struct {
	writer  MessageWriter
	timeout time.Duration
	now     func() time.Time
}

// NewKafkaWriter creates a writer for topic on brokers
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
}

// NewKafkaNotifier creates a notifier publishing through writer
func NewKafkaNotifier(writer MessageWriter) *KafkaNotifier {
	return &KafkaNotifier{
		writer:  writer,
		timeout: 5 * time.Second,
		now:     time.Now,
	}
}

// Send publishes one event keyed by recipient
func (n *KafkaNotifier) Send(ctx context.Context, to, subject, body string) error {
	payload, err := jsoniter.Marshal(Event{
		To:      to,
		Subject: subject,
		Body:    body,
		SentAt:  n.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	if err := n.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(to),
		Value: payload,
	}); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}
	return nil
}

// Close closes the underlying writer
func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}
