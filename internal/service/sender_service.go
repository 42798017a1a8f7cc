package service

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"bikeshare/internal/entities"
	"bikeshare/internal/utils"
)

//go:embed templates/*.html
var templateFS embed.FS

type EmailMessage struct {
	UserName  string
	Subject   string
	PlainText string
	HTML      string
}

// SenderService renders booking notices into email content.
type SenderService struct {
	tmpl *template.Template
}

func NewSenderService() (*SenderService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/booking_email.html")
	if err != nil {
		return nil, fmt.Errorf("parse email template: %w", err)
	}
	return &SenderService{tmpl: tmpl}, nil
}

func (s *SenderService) Compose(notice entities.BookingNotice) (EmailMessage, error) {
	data, err := emailData(notice)
	if err != nil {
		return EmailMessage{}, err
	}

	var html bytes.Buffer
	if err := s.tmpl.Execute(&html, data); err != nil {
		return EmailMessage{}, fmt.Errorf("render email for %s: %w", notice.Day, err)
	}

	subject := "Bike Booking Confirmation"
	if data.Reminder {
		subject = "Bike Pickup Reminder"
	}
	return EmailMessage{
		UserName:  data.UserName,
		Subject:   subject,
		PlainText: plainText(data),
		HTML:      html.String(),
	}, nil
}

func emailData(notice entities.BookingNotice) (entities.BookingEmailData, error) {
	date, ok := utils.ParseDay(notice.Day)
	if !ok {
		return entities.BookingEmailData{}, fmt.Errorf("render email: invalid day %q", notice.Day)
	}
	name, location := utils.BikeNameAndLocation(notice.Bike)
	return entities.BookingEmailData{
		UserName:     userName(notice.Email),
		BikeName:     name,
		BikeLocation: location,
		Day:          notice.Day,
		ValidFrom:    utils.FormatDay(date),
		ValidUntil:   utils.FormatDay(date.AddDate(0, 0, 1)),
		Reminder:     notice.Kind == entities.NoticeReminder,
	}, nil
}

func userName(email string) string {
	local, _, _ := strings.Cut(strings.TrimSpace(email), "@")
	if local == "" {
		return "there"
	}
	return local
}

func plainText(d entities.BookingEmailData) string {
	var intro string
	if d.Reminder {
		intro = fmt.Sprintf("Just a reminder: your booking for the %s is tomorrow, %s.", d.BikeName, d.Day)
	} else {
		intro = fmt.Sprintf("Your booking for the %s on %s has been recorded! We are excited to have you riding with us :D", d.BikeName, d.Day)
	}
	lines := []string{
		fmt.Sprintf("Hi %s,", d.UserName),
		intro,
		"",
		"Some rules",
		"- please check brakes and tires before riding",
		"- always lock bike when unattended",
		fmt.Sprintf("- bike must be returned to the same location (your booking is valid from 6am on %s to 6am on %s. Please be timely, others depend on you)", d.ValidFrom, d.ValidUntil),
		"",
		"Where to pick up your bike",
		"",
		fmt.Sprintf("Your bike is located at %s", d.BikeLocation),
		"",
		"Need to cancel?",
		`To cancel your reservation, just reply with "cancel"`,
	}
	return strings.Join(lines, "\n")
}
