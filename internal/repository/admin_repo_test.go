package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListBookingsFiltersByBike(t *testing.T) {
	conn, mock := newMock(t)
	repo := NewAdminRepository(conn)

	mock.ExpectQuery(`AND bike = \$3 ORDER BY day DESC`).
		WithArgs("2025-10-01", "2025-10-31", "bike-one").
		WillReturnRows(sqlmock.NewRows(bookingColumns).AddRow(3, "bike-one", "2025-10-09", "a@stanford.edu", time.Now()))

	bookings, err := repo.ListBookings(context.Background(), "2025-10-01", "2025-10-31", "bike-one")
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTopRiders(t *testing.T) {
	conn, mock := newMock(t)
	repo := NewAdminRepository(conn)

	mock.ExpectQuery(`GROUP BY lower\(email\)`).
		WithArgs("2025-10-01", "2025-10-31", 5).
		WillReturnRows(sqlmock.NewRows([]string{"rider", "favourite_bike", "booking_count"}).
			AddRow("a@stanford.edu", "bike-two", 3).
			AddRow("b@stanford.edu", "bike-one", 1))

	totals, err := repo.TopRiders(context.Background(), "2025-10-01", "2025-10-31", 5)
	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.Equal(t, "bike-two", totals[0].FavouriteBike)
	assert.Equal(t, 3, totals[0].BookingCount)
}

func TestJobRepositoryListOnDay(t *testing.T) {
	conn, mock := newMock(t)
	repo := NewJobRepository(conn)

	mock.ExpectQuery(`WHERE day = \$1::date`).
		WithArgs("2025-10-16").
		WillReturnRows(sqlmock.NewRows(bookingColumns).AddRow(4, "bike-three", "2025-10-16", "c@stanford.edu", time.Now()))

	bookings, err := repo.ListOnDay(context.Background(), "2025-10-16")
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "c@stanford.edu", bookings[0].Email)
}

func TestAdminAuthRepository(t *testing.T) {
	conn, mock := newMock(t)
	repo := NewAdminAuthRepository(conn)

	mock.ExpectQuery(`SELECT id, email, password_hash FROM admins`).
		WithArgs("desk@stanford.edu").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash"}).AddRow(1, "desk@stanford.edu", "hash"))

	admin, err := repo.GetByEmail(context.Background(), "desk@stanford.edu")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, "hash", admin.PasswordHash)

	mock.ExpectExec(`INSERT INTO admins`).
		WithArgs("desk@stanford.edu", sqlmock.AnyArg()).
		WillReturnError(&pq.Error{Code: "23505"})

	err = repo.CreateNewUser(context.Background(), "desk@stanford.edu", "s3cret")
	assert.ErrorIs(t, err, ErrAdminExists)
}
