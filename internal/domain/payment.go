package domain

import "time"

type Payment struct {
	ID        int64     `json:"id"`
	BookingID int64     `json:"booking_id"`
	Amount    int64     `json:"amount"`
	Date      time.Time `json:"date"`
}
