package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"bikeshare/internal/db"
	"bikeshare/internal/entities"
	"bikeshare/internal/repository"
	"bikeshare/internal/service"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, time.January, 1, 9, 0, 0, 0, time.UTC)

// storeStub is an in-memory BookingStore enforcing the (bike, day) uniqueness.
type storeStub struct {
	mu       sync.Mutex
	bookings []db.Booking
	err      error
}

func (s *storeStub) CountByEmailInRange(ctx context.Context, email, startDay, endDay string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, b := range s.bookings {
		if strings.EqualFold(b.Email, email) && b.Day >= startDay && b.Day <= endDay {
			n++
		}
	}
	return n, s.err
}

func (s *storeStub) FindByBikeAndDay(ctx context.Context, bike, day string) (*db.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bookings {
		if b.Bike == bike && b.Day == day {
			found := b
			return &found, nil
		}
	}
	return nil, s.err
}

func (s *storeStub) Insert(ctx context.Context, bike, day, email string) (*db.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	for _, b := range s.bookings {
		if b.Bike == bike && b.Day == day {
			return nil, repository.ErrDuplicateBooking
		}
	}
	b := db.Booking{ID: int64(len(s.bookings) + 1), Bike: bike, Day: day, Email: email, CreatedAt: testNow}
	s.bookings = append(s.bookings, b)
	return &b, nil
}

func (s *storeStub) ListDaysByBikeInRange(ctx context.Context, bike, startDay, endDay string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	days := []string{}
	for _, b := range s.bookings {
		if b.Bike == bike && b.Day >= startDay && b.Day <= endDay {
			days = append(days, b.Day)
		}
	}
	return days, s.err
}

func (s *storeStub) ListInRange(ctx context.Context, startDay, endDay string) ([]db.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []db.Booking
	for _, b := range s.bookings {
		if b.Day >= startDay && b.Day <= endDay {
			out = append(out, b)
		}
	}
	return out, s.err
}

type noticeSink struct {
	mu      sync.Mutex
	notices []entities.BookingNotice
}

func (n *noticeSink) Dispatch(notice entities.BookingNotice) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, notice)
}

func newBookingHandler(store *storeStub, sink *noticeSink) *BookingHandler {
	svc := service.NewBookingService(store, sink, service.Policy{
		EmailDomain:  "stanford.edu",
		MonthlyLimit: 3,
		ExemptEmails: []string{"dkiss@stanford.edu"},
	}, func() time.Time { return testNow }, nil)
	return NewBookingHandler(svc, nil)
}

func doJSON(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}
