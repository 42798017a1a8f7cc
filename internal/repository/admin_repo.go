package repository

import (
	"context"
	"database/sql"
	"fmt"

	"bikeshare/internal/db"
)

type AdminRepository struct {
	DB *sql.DB
}

func NewAdminRepository(db *sql.DB) *AdminRepository {
	return &AdminRepository{DB: db}
}

// ListBookings filters by an inclusive day range and, optionally, a bike.
func (r *AdminRepository) ListBookings(ctx context.Context, startDay, endDay, bike string) ([]db.Booking, error) {
	query := `
	SELECT id, bike, to_char(day, 'YYYY-MM-DD'), email, created_at
	FROM bookings
	WHERE day >= $1::date AND day <= $2::date`
	args := []interface{}{startDay, endDay}
	if bike != "" {
		query += " AND bike = $3"
		args = append(args, bike)
	}
	query += " ORDER BY day DESC, bike"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()
	return scanBookings(rows)
}

// TopRiders ranks riders by bookings in the range. The favourite bike is the
// most booked one, ties broken alphabetically.
func (r *AdminRepository) TopRiders(ctx context.Context, startDay, endDay string, limit int) ([]db.RiderTotal, error) {
	rows, err := r.DB.QueryContext(ctx, `
	SELECT lower(email) AS rider,
	       mode() WITHIN GROUP (ORDER BY bike) AS favourite_bike,
	       COUNT(*) AS booking_count
	FROM bookings
	WHERE day >= $1::date AND day <= $2::date
	GROUP BY lower(email)
	ORDER BY booking_count DESC, rider
	LIMIT $3`,
		startDay, endDay, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("top riders: %w", err)
	}
	defer rows.Close()

	var totals []db.RiderTotal
	for rows.Next() {
		var t db.RiderTotal
		if err := rows.Scan(&t.Email, &t.FavouriteBike, &t.BookingCount); err != nil {
			return nil, fmt.Errorf("scan rider total: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rider totals: %w", err)
	}
	return totals, nil
}
