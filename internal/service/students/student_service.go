package students

import (
	"context"
	"log"
	"time"

	"github.com/akhilnair92/hosteldesk/internal/domain"
	"github.com/akhilnair92/hosteldesk/internal/kafka"
	"github.com/akhilnair92/hosteldesk/internal/repository"
	"github.com/google/uuid"
)

type StudentUseCase interface {
	List(ctx context.Context) ([]domain.Student, error)
	Create(ctx context.Context, input CreateStudentInput) (*domain.Student, error)
	Delete(ctx context.Context, id int64) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type StudentService struct {
	students  repository.StudentRepository
	producer  Producer
	stayTopic string
}

type CreateStudentInput struct {
	Name  string
	Email *string
	Phone *string
}

func NewStudentService(students repository.StudentRepository, producer Producer, stayTopic string) *StudentService {
	return &StudentService{students: students, producer: producer, stayTopic: stayTopic}
}

func (s *StudentService) List(ctx context.Context) ([]domain.Student, error) {
	return s.students.List(ctx)
}

func (s *StudentService) Create(ctx context.Context, input CreateStudentInput) (*domain.Student, error) {
	if input.Name == "" {
		return nil, domain.NewValidation("name is required")
	}

	student := &domain.Student{
		Name:  input.Name,
		Email: input.Email,
		Phone: input.Phone,
	}
	if err := s.students.Create(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// Delete removes the student; the repository cascades to its bookings and
// their payments. Rooms left unavailable by cascaded bookings stay that
// way, matching checkout being the only path that frees a room.
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	if err := s.students.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, kafka.StayEvent{Type: kafka.EventStudentDeleted, StudentID: id})
	return nil
}

func (s *StudentService) publish(ctx context.Context, event kafka.StayEvent) {
	if s.producer == nil || s.stayTopic == "" {
		return
	}
	event.OccurredAt = time.Now().UTC()
	if err := s.producer.Publish(ctx, s.stayTopic, uuid.NewString(), event); err != nil {
		log.Printf("publish %s event: %v", event.Type, err)
	}
}

var _ StudentUseCase = (*StudentService)(nil)
