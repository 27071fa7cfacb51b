package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"concert-ticketing/internal/logger"
	"concert-ticketing/internal/models"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// Producer streams reservation lifecycle events to a Kafka topic.
type Producer struct {
	Writer *kafka.Writer
	Logger *logger.Logger
}

func NewProducer(brokers []string, topic string, log *logger.Logger) *Producer {
	writer := kafka.NewWriter(kafka.WriterConfig{
		Brokers: brokers,
		Topic:   topic,
	})
	return &Producer{Writer: writer, Logger: log}
}

func (p *Producer) PublishReservationCreated(event models.ReservationEvent) error {
	return p.publish("reservation_created", event)
}

func (p *Producer) PublishReservationCancelled(event models.ReservationEvent) error {
	return p.publish("reservation_cancelled", event)
}

func (p *Producer) publish(kind string, event models.ReservationEvent) error {
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}

	msgBytes, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if p.Logger != nil {
		p.Logger.Info("KAFKA", fmt.Sprintf("Publishing [%s]: %s", kind, string(msgBytes)))
	}

	return p.Writer.WriteMessages(context.Background(),
		kafka.Message{
			Key:   []byte(event.EventID),
			Value: msgBytes,
		},
	)
}

func (p *Producer) Close() error {
	return p.Writer.Close()
}

// MockProducer logs events instead of publishing them. Used when
// Kafka is disabled or running in mock mode.
type MockProducer struct {
	Logger *logger.Logger
}

func NewMockProducer(log *logger.Logger) *MockProducer {
	return &MockProducer{Logger: log}
}

func (m *MockProducer) PublishReservationCreated(event models.ReservationEvent) error {
	return m.log("reservation_created", event)
}

func (m *MockProducer) PublishReservationCancelled(event models.ReservationEvent) error {
	return m.log("reservation_cancelled", event)
}

func (m *MockProducer) log(kind string, event models.ReservationEvent) error {
	if m.Logger != nil {
		m.Logger.Info("KAFKA", fmt.Sprintf("Mock publish [%s]: user=%d concert=%d", kind, event.UserID, event.ConcertID))
	}
	return nil
}
