package repository

import (
	"context"

	"github.com/akhilnair92/hosteldesk/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RoomRepository interface {
	List(ctx context.Context) ([]domain.Room, error)
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	Create(ctx context.Context, room *domain.Room) error
	Delete(ctx context.Context, id int64) error
}

type PGRoomRepository struct {
	db *pgxpool.Pool
}

func NewRoomRepository(db *pgxpool.Pool) RoomRepository {
	return &PGRoomRepository{db: db}
}

func (r *PGRoomRepository) List(ctx context.Context) ([]domain.Room, error) {
	rows, err := r.db.Query(ctx, `SELECT id, number, type, price, capacity, available FROM rooms ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rooms := make([]domain.Room, 0)
	for rows.Next() {
		var rm domain.Room
		if err := rows.Scan(&rm.ID, &rm.Number, &rm.Type, &rm.Price, &rm.Capacity, &rm.Available); err != nil {
			return nil, err
		}
		rooms = append(rooms, rm)
	}
	return rooms, rows.Err()
}

func (r *PGRoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	row := r.db.QueryRow(ctx, `SELECT id, number, type, price, capacity, available FROM rooms WHERE id=$1`, id)
	var rm domain.Room
	if err := row.Scan(&rm.ID, &rm.Number, &rm.Type, &rm.Price, &rm.Capacity, &rm.Available); err != nil {
		if isNoRows(err) {
			return nil, domain.NewNotFound("room", id)
		}
		return nil, err
	}
	return &rm, nil
}

func (r *PGRoomRepository) Create(ctx context.Context, room *domain.Room) error {
	return r.db.QueryRow(ctx, `INSERT INTO rooms (number, type, price, capacity, available) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		room.Number, room.Type, room.Price, room.Capacity, room.Available).Scan(&room.ID)
}

// Delete removes the room together with its bookings and their payments in
// one transaction. Active bookings do not block the delete.
func (r *PGRoomRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM payments WHERE booking_id IN (SELECT id FROM bookings WHERE room_id=$1)`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM bookings WHERE room_id=$1`, id); err != nil {
		return err
	}

	res, err := tx.Exec(ctx, `DELETE FROM rooms WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.NewNotFound("room", id)
	}

	return tx.Commit(ctx)
}

var _ RoomRepository = (*PGRoomRepository)(nil)
