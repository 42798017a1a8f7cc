package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bikeshare/internal/entities"
	"bikeshare/internal/logger"
	"bikeshare/internal/utils"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

// Notifier delivers a booking notice. Callers treat any error as best-effort.
type Notifier interface {
	NotifyBooking(ctx context.Context, notice entities.BookingNotice) error
}

type mailClient interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

type smsClient interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// EmailNotifier sends the rider a SendGrid email, with blind copies to the admins.
type EmailNotifier struct {
	client mailClient
	sender *SenderService
	from   *mail.Email
	bcc    []string
	log    *zap.Logger
}

func NewEmailNotifier(apiKey, fromEmail, fromName string, bcc []string, sender *SenderService, log *zap.Logger) *EmailNotifier {
	return newEmailNotifier(sendgrid.NewSendClient(apiKey), fromEmail, fromName, bcc, sender, log)
}

func newEmailNotifier(client mailClient, fromEmail, fromName string, bcc []string, sender *SenderService, log *zap.Logger) *EmailNotifier {
	return &EmailNotifier{
		client: client,
		sender: sender,
		from:   mail.NewEmail(fromName, fromEmail),
		bcc:    bcc,
		log:    logger.OrNop(log),
	}
}

func (n *EmailNotifier) NotifyBooking(ctx context.Context, notice entities.BookingNotice) error {
	msg, err := n.sender.Compose(notice)
	if err != nil {
		return err
	}

	to := mail.NewEmail(msg.UserName, notice.Email)
	message := mail.NewSingleEmail(n.from, msg.Subject, to, msg.PlainText, msg.HTML)
	if notice.Kind == entities.NoticeConfirmation {
		for _, addr := range n.bcc {
			if strings.EqualFold(addr, notice.Email) {
				continue
			}
			message.Personalizations[0].AddBCCs(mail.NewEmail("", addr))
		}
	}

	resp, err := n.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, resp.Body)
	}
	n.log.Info("email sent", zap.String("kind", string(notice.Kind)), zap.String("subject", msg.Subject))
	return nil
}

// SMSNotifier texts the admin phone about new bookings. Reminders are not relayed.
type SMSNotifier struct {
	client  smsClient
	from    string
	adminTo string
}

func NewSMSNotifier(accountSID, authToken, from, adminTo string) *SMSNotifier {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username:   accountSID,
		Password:   authToken,
		AccountSid: accountSID,
	})
	return &SMSNotifier{client: client.Api, from: from, adminTo: adminTo}
}

func (n *SMSNotifier) NotifyBooking(ctx context.Context, notice entities.BookingNotice) error {
	if notice.Kind != entities.NoticeConfirmation {
		return nil
	}
	name, _ := utils.BikeNameAndLocation(notice.Bike)

	params := &openapi.CreateMessageParams{}
	params.SetTo(n.adminTo)
	params.SetFrom(n.from)
	params.SetBody(fmt.Sprintf("Campus Bikes: %s booked the %s for %s.", notice.Email, name, notice.Day))

	if _, err := n.client.CreateMessage(params); err != nil {
		return fmt.Errorf("twilio send: %w", err)
	}
	return nil
}

// MultiNotifier fans a notice out to every notifier and joins their errors.
type MultiNotifier []Notifier

func (m MultiNotifier) NotifyBooking(ctx context.Context, notice entities.BookingNotice) error {
	var errs []error
	for _, n := range m {
		if err := n.NotifyBooking(ctx, notice); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LogNotifier is used when no delivery channel is configured.
type LogNotifier struct {
	Log *zap.Logger
}

func (n LogNotifier) NotifyBooking(ctx context.Context, notice entities.BookingNotice) error {
	logger.OrNop(n.Log).Info("notification skipped, no channel configured",
		zap.String("kind", string(notice.Kind)),
		zap.String("bike", notice.Bike),
		zap.String("day", notice.Day),
	)
	return nil
}
