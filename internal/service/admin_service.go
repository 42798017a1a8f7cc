package service

import (
	"context"
	"strings"
	"time"

	"bikeshare/internal/db"
	"bikeshare/internal/entities"
	apperrors "bikeshare/internal/errors"
	"bikeshare/internal/logger"
	"bikeshare/internal/utils"

	"go.uber.org/zap"
)

const (
	defaultTopBikers = 20
	maxTopBikers     = 200
)

type bookingReports interface {
	ListBookings(ctx context.Context, startDay, endDay, bike string) ([]db.Booking, error)
	TopRiders(ctx context.Context, startDay, endDay string, limit int) ([]db.RiderTotal, error)
}

type AdminService struct {
	repo bookingReports
	now  func() time.Time
	log  *zap.Logger
}

func NewAdminService(repo bookingReports, now func() time.Time, log *zap.Logger) *AdminService {
	if now == nil {
		now = time.Now
	}
	return &AdminService{repo: repo, now: now, log: logger.OrNop(log)}
}

// ListBookings defaults to the current month when from or to is empty.
func (s *AdminService) ListBookings(ctx context.Context, from, to, bike string) (*entities.BookingsList, error) {
	now := s.now().UTC()
	defStart, defEnd := utils.MonthRange(now.Year(), now.Month())
	if from == "" {
		from = defStart
	}
	if to == "" {
		to = defEnd
	}
	fromDay, okFrom := utils.ParseDay(from)
	toDay, okTo := utils.ParseDay(to)
	if !okFrom || !okTo {
		return nil, apperrors.ErrValidation(MsgInvalidDate)
	}
	if toDay.Before(fromDay) {
		return nil, apperrors.ErrValidation("to must not be before from")
	}
	if bike != "" {
		bike = utils.NormalizeBike(bike)
	}

	bookings, err := s.repo.ListBookings(ctx, from, to, bike)
	if err != nil {
		s.log.Error("list bookings failed", zap.Error(err))
		return nil, apperrors.ErrInternal(err)
	}

	views := make([]entities.BookingView, 0, len(bookings))
	for _, b := range bookings {
		views = append(views, entities.BookingView{
			ID:        b.ID,
			Bike:      b.Bike,
			Day:       b.Day,
			Email:     b.Email,
			CreatedAt: b.CreatedAt,
		})
	}
	return &entities.BookingsList{
		Total:    len(views),
		Range:    entities.DayRange{Start: from, End: to},
		Bookings: views,
	}, nil
}

// TopBikers ranks riders for the calendar month containing month (YYYY-MM-DD), or the
// current month when empty. Emails are masked.
func (s *AdminService) TopBikers(ctx context.Context, month string, limit int) (*entities.TopBikersResponse, error) {
	ref := s.now().UTC()
	if month != "" {
		t, ok := utils.ParseDay(month)
		if !ok {
			return nil, apperrors.ErrValidation(MsgInvalidDate)
		}
		ref = t
	}
	if limit <= 0 {
		limit = defaultTopBikers
	}
	if limit > maxTopBikers {
		limit = maxTopBikers
	}

	start, end := utils.MonthRange(ref.Year(), ref.Month())
	totals, err := s.repo.TopRiders(ctx, start, end, limit)
	if err != nil {
		s.log.Error("top riders failed", zap.Error(err))
		return nil, apperrors.ErrInternal(err)
	}

	resp := &entities.TopBikersResponse{TopBikers: make([]entities.TopBiker, 0, len(totals))}
	for _, t := range totals {
		resp.TopBikers = append(resp.TopBikers, entities.TopBiker{
			Email:         MaskEmail(t.Email),
			FavouriteBike: t.FavouriteBike,
			BookingCount:  t.BookingCount,
		})
	}
	return resp, nil
}

// MaskEmail keeps the first two characters of the local part: "dkiss@stanford.edu" -> "dk***@stanford.edu".
func MaskEmail(email string) string {
	local, domain, ok := strings.Cut(email, "@")
	if !ok {
		return "***"
	}
	keep := 2
	if len(local) <= keep {
		keep = 1
	}
	if len(local) < keep {
		keep = len(local)
	}
	return local[:keep] + "***@" + domain
}
