package repository

import (
	"context"
	"database/sql"
	"fmt"

	"bikeshare/internal/db"
)

type JobRepository struct {
	DB *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{DB: db}
}

// ListOnDay returns every booking whose pickup is on day, across bikes.
func (r *JobRepository) ListOnDay(ctx context.Context, day string) ([]db.Booking, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, bike, to_char(day, 'YYYY-MM-DD'), email, created_at
		 FROM bookings WHERE day = $1::date ORDER BY bike`,
		day,
	)
	if err != nil {
		return nil, fmt.Errorf("error querying bookings on %s: %w", day, err)
	}
	defer rows.Close()
	return scanBookings(rows)
}
