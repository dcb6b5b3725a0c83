package repository

import (
	"context"

	"github.com/akhilnair92/hosteldesk/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PaymentRepository interface {
	List(ctx context.Context) ([]domain.Payment, error)
	Create(ctx context.Context, payment *domain.Payment) error
	Delete(ctx context.Context, id int64) error
}

type PGPaymentRepository struct {
	db *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) PaymentRepository {
	return &PGPaymentRepository{db: db}
}

func (r *PGPaymentRepository) List(ctx context.Context) ([]domain.Payment, error) {
	rows, err := r.db.Query(ctx, `SELECT id, booking_id, amount, date FROM payments ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]domain.Payment, 0)
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.BookingID, &p.Amount, &p.Date); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *PGPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	return r.db.QueryRow(ctx, `INSERT INTO payments (booking_id, amount) VALUES ($1, $2) RETURNING id, date`,
		payment.BookingID, payment.Amount).Scan(&payment.ID, &payment.Date)
}

func (r *PGPaymentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM payments WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.NewNotFound("payment", id)
	}
	return nil
}

var _ PaymentRepository = (*PGPaymentRepository)(nil)
