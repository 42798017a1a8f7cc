package service

import (
	"context"
	"sync"
	"time"

	"bikeshare/internal/entities"
	"bikeshare/internal/logger"

	"go.uber.org/zap"
)

// Dispatcher runs notifications off the request path. Each notice gets its own
// goroutine bounded by timeout; failures and panics are logged and dropped.
type Dispatcher struct {
	notifier Notifier
	timeout  time.Duration
	log      *zap.Logger
	wg       sync.WaitGroup
}

func NewDispatcher(notifier Notifier, timeout time.Duration, log *zap.Logger) *Dispatcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Dispatcher{notifier: notifier, timeout: timeout, log: logger.OrNop(log)}
}

func (d *Dispatcher) Dispatch(notice entities.BookingNotice) {
	if d.notifier == nil {
		return
	}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				d.log.Error("notifier panicked", zap.Any("panic", r), zap.String("kind", string(notice.Kind)))
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()
		if err := d.notifier.NotifyBooking(ctx, notice); err != nil {
			d.log.Warn("notification failed",
				zap.String("kind", string(notice.Kind)),
				zap.String("bike", notice.Bike),
				zap.String("day", notice.Day),
				zap.Error(err),
			)
		}
	}()
}

// Wait blocks until in-flight notifications finish or ctx is done.
func (d *Dispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
