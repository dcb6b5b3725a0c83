package repository

import (
	"context"
	"errors"

	"github.com/akhilnair92/hosteldesk/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StudentRepository interface {
	List(ctx context.Context) ([]domain.Student, error)
	Create(ctx context.Context, student *domain.Student) error
	Delete(ctx context.Context, id int64) error
}

type PGStudentRepository struct {
	db *pgxpool.Pool
}

func NewStudentRepository(db *pgxpool.Pool) StudentRepository {
	return &PGStudentRepository{db: db}
}

func (r *PGStudentRepository) List(ctx context.Context) ([]domain.Student, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, email, phone FROM students ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := make([]domain.Student, 0)
	for rows.Next() {
		var s domain.Student
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Phone); err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

func (r *PGStudentRepository) Create(ctx context.Context, student *domain.Student) error {
	return r.db.QueryRow(ctx, `INSERT INTO students (name, email, phone) VALUES ($1, $2, $3) RETURNING id`,
		student.Name, student.Email, student.Phone).Scan(&student.ID)
}

// Delete removes the student together with its bookings and their payments
// in one transaction.
func (r *PGStudentRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM payments WHERE booking_id IN (SELECT id FROM bookings WHERE student_id=$1)`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM bookings WHERE student_id=$1`, id); err != nil {
		return err
	}

	res, err := tx.Exec(ctx, `DELETE FROM students WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.NewNotFound("student", id)
	}

	return tx.Commit(ctx)
}

var _ StudentRepository = (*PGStudentRepository)(nil)

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
