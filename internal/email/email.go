package email

import (
	"context"
	"log"

	"github.com/akhilnair92/hosteldesk/internal/kafka"
)

// Sender is a log-only notifier; a real mail transport would slot in here.
type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.StayEvent) error {
	log.Printf("notify: %s booking=%d student=%d room=%d", event.Type, event.BookingID, event.StudentID, event.RoomID)
	return nil
}
