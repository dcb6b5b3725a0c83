package repository

import (
	"context"

	"github.com/akhilnair92/hosteldesk/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	List(ctx context.Context) ([]domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Create(ctx context.Context, booking *domain.Booking) error
	Checkout(ctx context.Context, id int64) (*domain.Booking, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

func (r *PGBookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT id, student_id, room_id, from_date, to_date, created_at FROM bookings ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.StudentID, &b.RoomID, &b.FromDate, &b.ToDate, &b.CreatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT id, student_id, room_id, from_date, to_date, created_at FROM bookings WHERE id=$1`, id)
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.StudentID, &b.RoomID, &b.FromDate, &b.ToDate, &b.CreatedAt); err != nil {
		if isNoRows(err) {
			return nil, domain.NewNotFound("booking", id)
		}
		return nil, err
	}
	return &b, nil
}

// Create takes the room and inserts the booking in one transaction. The
// conditional UPDATE is the availability check: of two racing creates only
// one sees available=TRUE, so only one commits.
func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var roomID int64
	if err := tx.QueryRow(ctx, `UPDATE rooms SET available=FALSE WHERE id=$1 AND available RETURNING id`, booking.RoomID).Scan(&roomID); err != nil {
		if isNoRows(err) {
			return domain.ErrRoomUnavailable
		}
		return err
	}

	if err := tx.QueryRow(ctx, `INSERT INTO bookings (student_id, room_id, from_date, to_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`, booking.StudentID, booking.RoomID, booking.FromDate, booking.ToDate).
		Scan(&booking.ID, &booking.CreatedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Checkout deletes the booking and its payments and frees the room, all in
// one transaction. A room deleted out from under the booking is skipped
// without error.
func (r *PGBookingRepository) Checkout(ctx context.Context, id int64) (*domain.Booking, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `SELECT id, student_id, room_id, from_date, to_date, created_at FROM bookings WHERE id=$1`, id)
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.StudentID, &b.RoomID, &b.FromDate, &b.ToDate, &b.CreatedAt); err != nil {
		if isNoRows(err) {
			return nil, domain.NewNotFound("booking", id)
		}
		return nil, err
	}

	if _, err := tx.Exec(ctx, `UPDATE rooms SET available=TRUE WHERE id=$1`, b.RoomID); err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM payments WHERE booking_id=$1`, id); err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM bookings WHERE id=$1`, id); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &b, nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
