package domain

import "time"

type Booking struct {
	ID        int64     `json:"id"`
	StudentID int64     `json:"student_id"`
	RoomID    int64     `json:"room_id"`
	FromDate  *string   `json:"from"`
	ToDate    *string   `json:"to"`
	CreatedAt time.Time `json:"created_at"`
}
