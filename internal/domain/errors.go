package domain

import (
	"errors"
	"fmt"
)

// ErrRoomUnavailable rejects a booking against a room whose availability
// flag is already down.
var ErrRoomUnavailable = errors.New("room not available")

// NotFoundError reports a lookup against an id that has no row.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

func NewNotFound(entity string, id int64) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// IsNotFound tells a missing-row failure apart from validation and
// conflict failures when mapping to an HTTP status.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// ValidationError rejects request input before it reaches the database.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidation(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// IsValidation marks failures the caller can fix by correcting the
// request, as opposed to infrastructure failures.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
