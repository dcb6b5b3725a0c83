package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Foreign keys are intentionally absent: referential rules are enforced by
// lookup in the services, and cascade deletes run as explicit statements
// inside one transaction.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS students (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT,
		phone TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS rooms (
		id BIGSERIAL PRIMARY KEY,
		number TEXT NOT NULL,
		type TEXT NOT NULL DEFAULT 'Single',
		price BIGINT NOT NULL DEFAULT 0,
		capacity INT NOT NULL DEFAULT 1,
		available BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id BIGSERIAL PRIMARY KEY,
		student_id BIGINT NOT NULL,
		room_id BIGINT NOT NULL,
		from_date TEXT,
		to_date TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS payments (
		id BIGSERIAL PRIMARY KEY,
		booking_id BIGINT NOT NULL,
		amount BIGINT NOT NULL,
		date TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Seed inserts the demo students and rooms, but only into empty tables.
func Seed(ctx context.Context, db *pgxpool.Pool) error {
	var students int
	if err := db.QueryRow(ctx, `SELECT count(*) FROM students`).Scan(&students); err != nil {
		return err
	}
	if students == 0 {
		_, err := db.Exec(ctx, `INSERT INTO students (name, email, phone) VALUES
			('Amit Kumar', 'amit@example.com', '9876543210'),
			('Neha Sharma', 'neha@example.com', '9123456780')`)
		if err != nil {
			return err
		}
	}

	var rooms int
	if err := db.QueryRow(ctx, `SELECT count(*) FROM rooms`).Scan(&rooms); err != nil {
		return err
	}
	if rooms == 0 {
		_, err := db.Exec(ctx, `INSERT INTO rooms (number, type, price, capacity, available) VALUES
			('101', 'Single', 5000, 1, TRUE),
			('102', 'Double', 8000, 2, TRUE)`)
		if err != nil {
			return err
		}
	}
	return nil
}
