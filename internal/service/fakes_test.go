package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"bikeshare/internal/db"
	"bikeshare/internal/entities"
	"bikeshare/internal/repository"
)

// memoryStore mimics the Postgres store, including the (bike, day) unique constraint.
type memoryStore struct {
	mu       sync.Mutex
	bookings []db.Booking
	nextID   int64

	err error
	// skipFind makes FindByBikeAndDay miss so the insert path sees the race.
	skipFind bool
}

func (m *memoryStore) CountByEmailInRange(ctx context.Context, email, startDay, endDay string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	n := 0
	for _, b := range m.bookings {
		if strings.EqualFold(b.Email, email) && b.Day >= startDay && b.Day <= endDay {
			n++
		}
	}
	return n, nil
}

func (m *memoryStore) FindByBikeAndDay(ctx context.Context, bike, day string) (*db.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if m.skipFind {
		return nil, nil
	}
	for _, b := range m.bookings {
		if b.Bike == bike && b.Day == day {
			found := b
			return &found, nil
		}
	}
	return nil, nil
}

func (m *memoryStore) Insert(ctx context.Context, bike, day, email string) (*db.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, b := range m.bookings {
		if b.Bike == bike && b.Day == day {
			return nil, repository.ErrDuplicateBooking
		}
	}
	m.nextID++
	b := db.Booking{ID: m.nextID, Bike: bike, Day: day, Email: email, CreatedAt: time.Now()}
	m.bookings = append(m.bookings, b)
	return &b, nil
}

func (m *memoryStore) ListDaysByBikeInRange(ctx context.Context, bike, startDay, endDay string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var days []string
	for _, b := range m.bookings {
		if b.Bike == bike && b.Day >= startDay && b.Day <= endDay {
			days = append(days, b.Day)
		}
	}
	return days, nil
}

func (m *memoryStore) ListInRange(ctx context.Context, startDay, endDay string) ([]db.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []db.Booking
	for _, b := range m.bookings {
		if b.Day >= startDay && b.Day <= endDay {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memoryStore) ListOnDay(ctx context.Context, day string) ([]db.Booking, error) {
	return m.ListInRange(ctx, day, day)
}

func (m *memoryStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.bookings)
}

type recordingDispatcher struct {
	mu      sync.Mutex
	notices []entities.BookingNotice
}

func (r *recordingDispatcher) Dispatch(notice entities.BookingNotice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, notice)
}

func (r *recordingDispatcher) all() []entities.BookingNotice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entities.BookingNotice, len(r.notices))
	copy(out, r.notices)
	return out
}

func fixedClock(year int, month time.Month, day int) func() time.Time {
	return func() time.Time { return time.Date(year, month, day, 12, 0, 0, 0, time.UTC) }
}
