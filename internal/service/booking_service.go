package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"bikeshare/internal/entities"
	apperrors "bikeshare/internal/errors"
	"bikeshare/internal/logger"
	"bikeshare/internal/repository"
	"bikeshare/internal/utils"

	"go.uber.org/zap"
)

const (
	MsgMissingFields = "missing email or day"
	MsgInvalidEmail  = "invalid email domain"
	MsgInvalidDate   = "invalid date"
	MsgPastDay       = "day is in the past"
	MsgInvalidMonth  = "invalid year/month"
	MsgQuotaReached  = "monthly booking limit reached"
	MsgAlreadyBooked = "day already booked"

	availabilityWindowMonths = 3
)

// Policy holds the admission rules that are configuration rather than code.
type Policy struct {
	EmailDomain  string
	MonthlyLimit int
	ExemptEmails []string
}

// NoticeDispatcher hands a committed booking to the notification path. It must not block
// and has no way to report failure back to the caller.
type NoticeDispatcher interface {
	Dispatch(notice entities.BookingNotice)
}

type BookingService struct {
	store      repository.BookingStore
	dispatcher NoticeDispatcher
	limit      int
	exempt     map[string]struct{}
	emailRE    *regexp.Regexp
	now        func() time.Time
	log        *zap.Logger
}

func NewBookingService(store repository.BookingStore, dispatcher NoticeDispatcher, policy Policy, now func() time.Time, log *zap.Logger) *BookingService {
	if now == nil {
		now = time.Now
	}
	domain := strings.ToLower(strings.TrimSpace(policy.EmailDomain))
	if domain == "" {
		domain = "stanford.edu"
	}
	exempt := make(map[string]struct{}, len(policy.ExemptEmails))
	for _, e := range policy.ExemptEmails {
		exempt[strings.ToLower(strings.TrimSpace(e))] = struct{}{}
	}
	return &BookingService{
		store:      store,
		dispatcher: dispatcher,
		limit:      policy.MonthlyLimit,
		exempt:     exempt,
		emailRE:    regexp.MustCompile(`(?i)^[^@\s]+@(?:[a-z0-9-]+\.)*` + regexp.QuoteMeta(domain) + `$`),
		now:        now,
		log:        logger.OrNop(log),
	}
}

// ValidEmail reports whether email belongs to the institutional domain or one of its subdomains.
func (s *BookingService) ValidEmail(email string) bool {
	return s.emailRE.MatchString(strings.TrimSpace(email))
}

// IsExempt reports whether email bypasses the monthly quota.
func (s *BookingService) IsExempt(email string) bool {
	_, ok := s.exempt[strings.ToLower(strings.TrimSpace(email))]
	return ok
}

// Book runs the admission check and, on success, inserts exactly one booking and
// dispatches the confirmation. Every rejection is an *apperrors.HTTPError.
func (s *BookingService) Book(ctx context.Context, req entities.BookingRequest) error {
	bike := utils.NormalizeBike(req.Bike)
	email := strings.TrimSpace(req.Email)
	day := req.Day

	if email == "" || day == "" {
		return apperrors.ErrValidation(MsgMissingFields)
	}
	if !s.ValidEmail(email) {
		return apperrors.ErrValidation(MsgInvalidEmail)
	}
	date, ok := utils.ParseDay(day)
	if !ok {
		return apperrors.ErrValidation(MsgInvalidDate)
	}
	if date.Before(utils.Today(s.now())) {
		return apperrors.ErrValidation(MsgPastDay)
	}

	if !s.IsExempt(email) {
		start, end := utils.MonthRange(date.Year(), date.Month())
		count, err := s.store.CountByEmailInRange(ctx, email, start, end)
		if err != nil {
			return s.storeFailure("count bookings", err)
		}
		if count >= s.limit {
			return apperrors.ErrQuotaExceeded(MsgQuotaReached)
		}
	}

	existing, err := s.store.FindByBikeAndDay(ctx, bike, day)
	if err != nil {
		return s.storeFailure("find booking", err)
	}
	if existing != nil {
		return apperrors.ErrConflict(MsgAlreadyBooked)
	}

	booking, err := s.store.Insert(ctx, bike, day, email)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateBooking) {
			return apperrors.ErrConflict(MsgAlreadyBooked)
		}
		return s.storeFailure("insert booking", err)
	}

	s.log.Info("booking created",
		zap.Int64("id", booking.ID),
		zap.String("bike", bike),
		zap.String("day", day),
	)

	if s.dispatcher != nil {
		s.dispatcher.Dispatch(entities.BookingNotice{
			Kind:  entities.NoticeConfirmation,
			Bike:  bike,
			Day:   day,
			Email: email,
		})
	}
	return nil
}

// Availability lists the booked days of one bike in one calendar month. Zero year or
// month means the current one.
func (s *BookingService) Availability(ctx context.Context, bike string, year, month int) (*entities.MonthAvailability, error) {
	now := s.now().UTC()
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	if year < 1000 || year > 9999 || month < 1 || month > 12 {
		return nil, apperrors.ErrValidation(MsgInvalidMonth)
	}

	bike = utils.NormalizeBike(bike)
	start, end := utils.MonthRange(year, time.Month(month))
	days, err := s.store.ListDaysByBikeInRange(ctx, bike, start, end)
	if err != nil {
		return nil, s.storeFailure("list booked days", err)
	}
	if days == nil {
		days = []string{}
	}
	return &entities.MonthAvailability{
		Bike:       bike,
		Year:       year,
		Month:      month,
		BookedDays: days,
	}, nil
}

// AvailabilityAll returns booked days for every bike from the first day of the current
// month through the end of the window.
func (s *BookingService) AvailabilityAll(ctx context.Context) (*entities.WindowAvailability, error) {
	start, end := utils.WindowRange(s.now(), availabilityWindowMonths)
	bookings, err := s.store.ListInRange(ctx, start, end)
	if err != nil {
		return nil, s.storeFailure("list bookings in window", err)
	}

	byBike := make(map[string][]string)
	for _, b := range bookings {
		key := strings.ToLower(b.Bike)
		byBike[key] = append(byBike[key], b.Day)
	}
	return &entities.WindowAvailability{
		Range:        entities.DayRange{Start: start, End: end},
		BookedByBike: byBike,
	}, nil
}

func (s *BookingService) storeFailure(op string, err error) error {
	s.log.Error("store failure", zap.String("op", op), zap.Error(err))
	return apperrors.ErrInternal(err)
}
