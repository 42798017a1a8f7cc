package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bikeshare/internal/db"

	"github.com/lib/pq"
)

// ErrDuplicateBooking is returned by Insert when (bike, day) is already taken.
var ErrDuplicateBooking = errors.New("booking already exists for bike and day")

const uniqueViolation = "23505"

// BookingStore is the whole surface the admission check and availability query use.
type BookingStore interface {
	CountByEmailInRange(ctx context.Context, email, startDay, endDay string) (int, error)
	FindByBikeAndDay(ctx context.Context, bike, day string) (*db.Booking, error)
	Insert(ctx context.Context, bike, day, email string) (*db.Booking, error)
	ListDaysByBikeInRange(ctx context.Context, bike, startDay, endDay string) ([]string, error)
	ListInRange(ctx context.Context, startDay, endDay string) ([]db.Booking, error)
}

type BookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{DB: db}
}

// CountByEmailInRange matches the email case-insensitively so the quota cannot be
// sidestepped by changing letter case.
func (r *BookingRepository) CountByEmailInRange(ctx context.Context, email, startDay, endDay string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings
		 WHERE lower(email) = lower($1) AND day >= $2::date AND day <= $3::date`,
		email, startDay, endDay,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count bookings by email: %w", err)
	}
	return count, nil
}

// FindByBikeAndDay returns nil, nil when the day is free.
func (r *BookingRepository) FindByBikeAndDay(ctx context.Context, bike, day string) (*db.Booking, error) {
	var b db.Booking
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, bike, to_char(day, 'YYYY-MM-DD'), email, created_at
		 FROM bookings WHERE bike = $1 AND day = $2::date`,
		bike, day,
	).Scan(&b.ID, &b.Bike, &b.Day, &b.Email, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find booking by bike and day: %w", err)
	}
	return &b, nil
}

// Insert relies on the UNIQUE (bike, day) constraint; a violation comes back as ErrDuplicateBooking.
func (r *BookingRepository) Insert(ctx context.Context, bike, day, email string) (*db.Booking, error) {
	b := db.Booking{Bike: bike, Day: day, Email: email}
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO bookings (bike, day, email) VALUES ($1, $2::date, $3)
		 RETURNING id, created_at`,
		bike, day, email,
	).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateBooking
		}
		return nil, fmt.Errorf("insert booking: %w", err)
	}
	return &b, nil
}

func (r *BookingRepository) ListDaysByBikeInRange(ctx context.Context, bike, startDay, endDay string) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT to_char(day, 'YYYY-MM-DD') FROM bookings
		 WHERE bike = $1 AND day >= $2::date AND day <= $3::date
		 ORDER BY day`,
		bike, startDay, endDay,
	)
	if err != nil {
		return nil, fmt.Errorf("list booked days: %w", err)
	}
	defer rows.Close()

	days := []string{}
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("scan booked day: %w", err)
		}
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate booked days: %w", err)
	}
	return days, nil
}

func (r *BookingRepository) ListInRange(ctx context.Context, startDay, endDay string) ([]db.Booking, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, bike, to_char(day, 'YYYY-MM-DD'), email, created_at FROM bookings
		 WHERE day >= $1::date AND day <= $2::date
		 ORDER BY day, bike`,
		startDay, endDay,
	)
	if err != nil {
		return nil, fmt.Errorf("list bookings in range: %w", err)
	}
	defer rows.Close()
	return scanBookings(rows)
}

func scanBookings(rows *sql.Rows) ([]db.Booking, error) {
	var bookings []db.Booking
	for rows.Next() {
		var b db.Booking
		if err := rows.Scan(&b.ID, &b.Bike, &b.Day, &b.Email, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}
	return bookings, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
