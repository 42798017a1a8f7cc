package repository

import (
	"context"
	"database/sql"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS bookings (
		id         BIGSERIAL PRIMARY KEY,
		bike       TEXT NOT NULL,
		day        DATE NOT NULL,
		email      TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT bookings_bike_day_key UNIQUE (bike, day)
	)`,
	`CREATE INDEX IF NOT EXISTS bookings_email_day_idx ON bookings (lower(email), day)`,
	`CREATE TABLE IF NOT EXISTS admins (
		id            SERIAL PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL
	)`,
}

// EnsureSchema is idempotent and runs on every boot.
func EnsureSchema(ctx context.Context, conn *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
