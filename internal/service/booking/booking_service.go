package booking

import (
	"context"
	"log"
	"time"

	"github.com/akhilnair92/hosteldesk/internal/domain"
	"github.com/akhilnair92/hosteldesk/internal/kafka"
	"github.com/akhilnair92/hosteldesk/internal/repository"
	"github.com/google/uuid"
)

type BookingUseCase interface {
	List(ctx context.Context) ([]domain.Booking, error)
	Create(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	Checkout(ctx context.Context, id int64) (*domain.Booking, error)
}

type Cache interface {
	InvalidateRooms(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	rooms              repository.RoomRepository
	cache              Cache
	producer           Producer
	stayTopic          string
	notificationsTopic string
}

type CreateBookingInput struct {
	StudentID int64
	RoomID    int64
	FromDate  *string
	ToDate    *string
}

type BookingServiceOption func(*BookingService)

// WithNotificationsTopic mirrors stay events onto a second topic consumed
// by the notification worker.
func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func NewBookingService(bookings repository.BookingRepository, rooms repository.RoomRepository, cache Cache, producer Producer, stayTopic string, opts ...BookingServiceOption) *BookingService {
	service := &BookingService{bookings: bookings, rooms: rooms, cache: cache, producer: producer, stayTopic: stayTopic}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) List(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.List(ctx)
}

// Create books a room for a student. The room must exist and be available;
// the student id is stored as given without a lookup, matching the original
// intake flow where the roster is managed elsewhere.
func (s *BookingService) Create(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if input.StudentID == 0 || input.RoomID == 0 {
		return nil, domain.NewValidation("student_id and room_id required")
	}

	room, err := s.rooms.GetByID(ctx, input.RoomID)
	if err != nil {
		return nil, err
	}
	if !room.Available {
		return nil, domain.ErrRoomUnavailable
	}

	booking := &domain.Booking{
		StudentID: input.StudentID,
		RoomID:    input.RoomID,
		FromDate:  input.FromDate,
		ToDate:    input.ToDate,
	}
	// The repository re-checks availability inside its transaction, so a
	// racing create loses here even after the check above passed.
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.InvalidateRooms(ctx)
	}
	s.publish(ctx, kafka.StayEvent{
		Type:      kafka.EventBookingCreated,
		BookingID: booking.ID,
		StudentID: booking.StudentID,
		RoomID:    booking.RoomID,
	})
	return booking, nil
}

func (s *BookingService) Checkout(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := s.bookings.Checkout(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.InvalidateRooms(ctx)
	}
	s.publish(ctx, kafka.StayEvent{
		Type:      kafka.EventBookingCheckedOut,
		BookingID: booking.ID,
		StudentID: booking.StudentID,
		RoomID:    booking.RoomID,
	})
	return booking, nil
}

func (s *BookingService) publish(ctx context.Context, event kafka.StayEvent) {
	if s.producer == nil || s.stayTopic == "" {
		return
	}
	event.OccurredAt = time.Now().UTC()
	key := uuid.NewString()
	if err := s.producer.Publish(ctx, s.stayTopic, key, event); err != nil {
		log.Printf("publish %s event: %v", event.Type, err)
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, key, event); err != nil {
			log.Printf("publish %s notification: %v", event.Type, err)
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)
