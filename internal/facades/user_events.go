package facades

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/sbilibin2017/gw-user-service/internal/logger"
	"github.com/sbilibin2017/gw-user-service/internal/models"
	"github.com/segmentio/kafka-go"
)

//go:generate mockgen -source=user_events.go -destination=mock_user_events.go -package=facades

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// UserEventsKafkaFacade publishes user events to Kafka.
type UserEventsKafkaFacade struct {
	writer KafkaWriter
}

// NewUserEventsKafkaFacade creates a new facade with a Kafka writer.
func NewUserEventsKafkaFacade(writer KafkaWriter) *UserEventsKafkaFacade {
	return &UserEventsKafkaFacade{writer: writer}
}

// NewKafkaWriter returns a writer for the given brokers and topic.
// Messages with the same key land in the same partition.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
}

// Publish writes the event keyed by user id, so events of one user stay ordered.
func (f *UserEventsKafkaFacade) Publish(ctx context.Context, event models.UserEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("failed to marshal user event", "event_id", event.EventID, "error", err)
		return err
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.UserID, 10)),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}

	if err := f.writer.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("failed to publish user event to Kafka", "event_id", event.EventID, "type", event.Type, "error", err)
		return err
	}

	logger.Log.Infow("user event published to Kafka", "event_id", event.EventID, "type", event.Type, "user_id", event.UserID)
	return nil
}

// Close closes the underlying writer.
func (f *UserEventsKafkaFacade) Close() error {
	return f.writer.Close()
}
