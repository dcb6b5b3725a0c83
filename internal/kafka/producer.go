package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// StayEvent describes a mutation of the hostel state: a booking made or
// checked out, a payment recorded, a student or room removed.
type StayEvent struct {
	Type       string    `json:"type"`
	BookingID  int64     `json:"booking_id,omitempty"`
	StudentID  int64     `json:"student_id,omitempty"`
	RoomID     int64     `json:"room_id,omitempty"`
	PaymentID  int64     `json:"payment_id,omitempty"`
	Amount     int64     `json:"amount,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

const (
	EventBookingCreated    = "booking_created"
	EventBookingCheckedOut = "booking_checked_out"
	EventPaymentRecorded   = "payment_recorded"
	EventStudentDeleted    = "student_deleted"
	EventRoomDeleted       = "room_deleted"
)

type Producer struct {
	brokers []string
	writer  *kafka.Writer
}

func NewProducer(brokers []string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        false,
	}

	return &Producer{
		brokers: brokers,
		writer:  writer,
	}
}

func (p *Producer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	message := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}
	return nil
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
