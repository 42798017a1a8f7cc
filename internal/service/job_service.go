package service

import (
	"context"
	"fmt"
	"time"

	"bikeshare/internal/db"
	"bikeshare/internal/entities"
	"bikeshare/internal/logger"
	"bikeshare/internal/utils"

	"go.uber.org/zap"
)

type dayLister interface {
	ListOnDay(ctx context.Context, day string) ([]db.Booking, error)
}

type JobService struct {
	repo       dayLister
	dispatcher NoticeDispatcher
	loc        *time.Location
	log        *zap.Logger
}

func NewJobService(repo dayLister, dispatcher NoticeDispatcher, loc *time.Location, log *zap.Logger) *JobService {
	if loc == nil {
		loc = time.UTC
	}
	return &JobService{repo: repo, dispatcher: dispatcher, loc: loc, log: logger.OrNop(log)}
}

// SendPickupReminders queues a reminder for every booking whose day is tomorrow in the
// service's time zone. It returns how many reminders were queued.
func (s *JobService) SendPickupReminders(ctx context.Context, now time.Time) (int, error) {
	local := now.In(s.loc)
	tomorrow := time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, time.UTC)
	day := utils.FormatDay(tomorrow)

	bookings, err := s.repo.ListOnDay(ctx, day)
	if err != nil {
		return 0, fmt.Errorf("cron job: failed to list bookings for %s: %w", day, err)
	}
	if len(bookings) == 0 {
		s.log.Debug("cron job: no pickups tomorrow", zap.String("day", day))
		return 0, nil
	}

	for _, b := range bookings {
		s.dispatcher.Dispatch(entities.BookingNotice{
			Kind:  entities.NoticeReminder,
			Bike:  b.Bike,
			Day:   b.Day,
			Email: b.Email,
		})
	}
	s.log.Info("cron job: queued pickup reminders", zap.String("day", day), zap.Int("count", len(bookings)))
	return len(bookings), nil
}
