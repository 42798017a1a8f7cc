package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bikeshare/internal/api"
	"bikeshare/internal/config"
	"bikeshare/internal/logger"
	"bikeshare/internal/repository"
	"bikeshare/internal/service"

	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.IsProduction())
	if err != nil {
		panic(err)
	}
	os.Exit(finish(log, run(cfg, log)))
}

// finish logs how the server stopped and flushes the logger, since os.Exit skips deferred calls.
func finish(log *zap.Logger, err error) int {
	defer func() { _ = log.Sync() }()
	if err != nil {
		log.Error("server stopped", zap.Error(err))
		return 1
	}
	log.Info("server stopped")
	return 0
}

func run(cfg config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		return err
	}
	if err := repository.EnsureSchema(ctx, db); err != nil {
		return err
	}

	sender, err := service.NewSenderService()
	if err != nil {
		return err
	}
	dispatcher := service.NewDispatcher(buildNotifier(cfg, sender, log), cfg.NotifyTimeout, log)

	bookingRepo := repository.NewBookingRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	bookingSvc := service.NewBookingService(bookingRepo, dispatcher, service.Policy{
		EmailDomain:  cfg.EmailDomain,
		MonthlyLimit: cfg.MonthlyLimit,
		ExemptEmails: cfg.ExemptEmails,
	}, time.Now, log)
	adminSvc := service.NewAdminService(adminRepo, time.Now, log)
	adminAuthSvc := service.NewAdminAuthService(repository.NewAdminAuthRepository(db), cfg.JWTSecret, cfg.JWTTTL, time.Now)
	jobSvc := service.NewJobService(repository.NewJobRepository(db), dispatcher, cfg.Location(), log)

	scheduler, err := startReminders(ctx, cfg, jobSvc, log)
	if err != nil {
		return err
	}

	router := api.NewRouter(api.RouterConfig{
		Bookings:       api.NewBookingHandler(bookingSvc, log),
		Public:         api.NewPublicHandler(adminSvc, sender, time.Now, log),
		Admin:          api.NewAdminHandler(adminSvc, log),
		AdminAuth:      api.NewAdminAuthHandler(adminAuthSvc, log),
		JWTSecret:      cfg.JWTSecret,
		AllowedOrigins: cfg.AllowedOrigins,
		BookingsPerMin: cfg.BookingsPerMin,
		TrustProxy:     cfg.TrustProxy,
		Log:            log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server running", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown", zap.Error(err))
	}
	if scheduler != nil {
		<-scheduler.Stop().Done()
	}
	if err := dispatcher.Wait(shutdownCtx); err != nil {
		log.Warn("notifications still in flight at shutdown", zap.Error(err))
	}
	return nil
}

// buildNotifier fans out to every configured channel. Without SendGrid the
// notices are logged instead of mailed.
func buildNotifier(cfg config.Config, sender *service.SenderService, log *zap.Logger) service.Notifier {
	var notifiers service.MultiNotifier
	if cfg.EmailEnabled() {
		notifiers = append(notifiers, service.NewEmailNotifier(
			cfg.SendGridAPIKey, cfg.SendGridFromEmail, cfg.SendGridFromName, cfg.AdminEmails, sender, log))
	} else {
		log.Warn("SendGrid not configured, booking emails will only be logged")
		notifiers = append(notifiers, service.LogNotifier{Log: log})
	}
	if cfg.SMSEnabled() {
		notifiers = append(notifiers, service.NewSMSNotifier(
			cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber, cfg.AdminPhone))
	}
	return notifiers
}

func startReminders(ctx context.Context, cfg config.Config, jobs *service.JobService, log *zap.Logger) (*cron.Cron, error) {
	if cfg.ReminderSchedule == "" {
		log.Info("pickup reminders disabled")
		return nil, nil
	}
	c := cron.New(cron.WithLocation(cfg.Location()))
	_, err := c.AddFunc(cfg.ReminderSchedule, func() {
		n, err := jobs.SendPickupReminders(ctx, time.Now())
		if err != nil {
			log.Error("pickup reminders failed", zap.Error(err))
			return
		}
		log.Info("pickup reminders dispatched", zap.Int("count", n))
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}
