package rooms

import (
	"context"
	"log"
	"time"

	"github.com/akhilnair92/hosteldesk/internal/domain"
	"github.com/akhilnair92/hosteldesk/internal/kafka"
	"github.com/akhilnair92/hosteldesk/internal/repository"
	"github.com/google/uuid"
)

type RoomUseCase interface {
	List(ctx context.Context) ([]domain.Room, error)
	Create(ctx context.Context, input CreateRoomInput) (*domain.Room, error)
	Delete(ctx context.Context, id int64) error
}

type Cache interface {
	GetRooms(ctx context.Context) ([]domain.Room, error)
	SetRooms(ctx context.Context, rooms []domain.Room) error
	InvalidateRooms(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type RoomService struct {
	rooms     repository.RoomRepository
	cache     Cache
	producer  Producer
	stayTopic string
}

// CreateRoomInput keeps optional fields as pointers so an absent field can
// take its default while an explicit zero is stored as sent.
type CreateRoomInput struct {
	Number    string
	Type      *string
	Price     *int64
	Capacity  *int
	Available *bool
}

func NewRoomService(rooms repository.RoomRepository, cache Cache, producer Producer, stayTopic string) *RoomService {
	return &RoomService{rooms: rooms, cache: cache, producer: producer, stayTopic: stayTopic}
}

func (s *RoomService) List(ctx context.Context) ([]domain.Room, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetRooms(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	rooms, err := s.rooms.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetRooms(ctx, rooms)
	}
	return rooms, nil
}

func (s *RoomService) Create(ctx context.Context, input CreateRoomInput) (*domain.Room, error) {
	if input.Number == "" {
		return nil, domain.NewValidation("room number required")
	}

	room := &domain.Room{
		Number:    input.Number,
		Type:      "Single",
		Price:     0,
		Capacity:  1,
		Available: true,
	}
	if input.Type != nil {
		room.Type = *input.Type
	}
	if input.Price != nil {
		room.Price = *input.Price
	}
	if input.Capacity != nil {
		room.Capacity = *input.Capacity
	}
	if input.Available != nil {
		room.Available = *input.Available
	}

	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.InvalidateRooms(ctx)
	}
	return room, nil
}

func (s *RoomService) Delete(ctx context.Context, id int64) error {
	if err := s.rooms.Delete(ctx, id); err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.InvalidateRooms(ctx)
	}
	s.publish(ctx, kafka.StayEvent{Type: kafka.EventRoomDeleted, RoomID: id})
	return nil
}

func (s *RoomService) publish(ctx context.Context, event kafka.StayEvent) {
	if s.producer == nil || s.stayTopic == "" {
		return
	}
	event.OccurredAt = time.Now().UTC()
	if err := s.producer.Publish(ctx, s.stayTopic, uuid.NewString(), event); err != nil {
		log.Printf("publish %s event: %v", event.Type, err)
	}
}

var _ RoomUseCase = (*RoomService)(nil)
