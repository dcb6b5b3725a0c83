package payment

import (
	"context"
	"log"
	"time"

	"github.com/akhilnair92/hosteldesk/internal/domain"
	"github.com/akhilnair92/hosteldesk/internal/kafka"
	"github.com/akhilnair92/hosteldesk/internal/repository"
	"github.com/google/uuid"
)

type PaymentUseCase interface {
	List(ctx context.Context) ([]domain.Payment, error)
	Create(ctx context.Context, input CreatePaymentInput) (*domain.Payment, error)
	Delete(ctx context.Context, id int64) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type PaymentService struct {
	payments  repository.PaymentRepository
	bookings  repository.BookingRepository
	producer  Producer
	stayTopic string
}

// CreatePaymentInput keeps Amount as a pointer: a missing amount is
// rejected while an explicit zero is accepted.
type CreatePaymentInput struct {
	BookingID int64
	Amount    *int64
}

func NewPaymentService(payments repository.PaymentRepository, bookings repository.BookingRepository, producer Producer, stayTopic string) *PaymentService {
	return &PaymentService{payments: payments, bookings: bookings, producer: producer, stayTopic: stayTopic}
}

func (s *PaymentService) List(ctx context.Context) ([]domain.Payment, error) {
	return s.payments.List(ctx)
}

func (s *PaymentService) Create(ctx context.Context, input CreatePaymentInput) (*domain.Payment, error) {
	if input.BookingID == 0 || input.Amount == nil {
		return nil, domain.NewValidation("booking_id and amount required")
	}

	booking, err := s.bookings.GetByID(ctx, input.BookingID)
	if err != nil {
		return nil, err
	}

	payment := &domain.Payment{
		BookingID: input.BookingID,
		Amount:    *input.Amount,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}

	s.publish(ctx, kafka.StayEvent{
		Type:      kafka.EventPaymentRecorded,
		BookingID: booking.ID,
		StudentID: booking.StudentID,
		RoomID:    booking.RoomID,
		PaymentID: payment.ID,
		Amount:    payment.Amount,
	})
	return payment, nil
}

func (s *PaymentService) Delete(ctx context.Context, id int64) error {
	return s.payments.Delete(ctx, id)
}

func (s *PaymentService) publish(ctx context.Context, event kafka.StayEvent) {
	if s.producer == nil || s.stayTopic == "" {
		return
	}
	event.OccurredAt = time.Now().UTC()
	if err := s.producer.Publish(ctx, s.stayTopic, uuid.NewString(), event); err != nil {
		log.Printf("publish %s event: %v", event.Type, err)
	}
}

var _ PaymentUseCase = (*PaymentService)(nil)
