package service

import (
	"context"
	"errors"
	"testing"

	"bikeshare/internal/entities"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

type fakeMailClient struct {
	sent   []*mail.SGMailV3
	status int
	err    error
}

func (f *fakeMailClient) SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, email)
	return &rest.Response{StatusCode: f.status, Body: "body"}, nil
}

type fakeSMSClient struct {
	params []*openapi.CreateMessageParams
	err    error
}

func (f *fakeSMSClient) CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.params = append(f.params, params)
	return &openapi.ApiV2010Message{}, nil
}

func newTestSender(t *testing.T) *SenderService {
	t.Helper()
	sender, err := NewSenderService()
	require.NoError(t, err)
	return sender
}

func TestEmailNotifierSendsConfirmationWithBCC(t *testing.T) {
	client := &fakeMailClient{status: 202}
	n := newEmailNotifier(client, "bikes@stanford.edu", "Campus Bikes", []string{"desk@stanford.edu", "x@stanford.edu"}, newTestSender(t), nil)

	err := n.NotifyBooking(context.Background(), entities.BookingNotice{
		Kind:  entities.NoticeConfirmation,
		Bike:  "bike-two",
		Day:   "2025-10-15",
		Email: "x@stanford.edu",
	})
	require.NoError(t, err)
	require.Len(t, client.sent, 1)

	msg := client.sent[0]
	assert.Equal(t, "Bike Booking Confirmation", msg.Subject)
	require.Len(t, msg.Personalizations, 1)
	assert.Equal(t, "x@stanford.edu", msg.Personalizations[0].To[0].Address)
	require.Len(t, msg.Personalizations[0].BCC, 1)
	assert.Equal(t, "desk@stanford.edu", msg.Personalizations[0].BCC[0].Address)
}

func TestEmailNotifierReminderHasNoBCC(t *testing.T) {
	client := &fakeMailClient{status: 202}
	n := newEmailNotifier(client, "bikes@stanford.edu", "Campus Bikes", []string{"desk@stanford.edu"}, newTestSender(t), nil)

	err := n.NotifyBooking(context.Background(), entities.BookingNotice{
		Kind:  entities.NoticeReminder,
		Bike:  "bike-one",
		Day:   "2025-10-16",
		Email: "x@stanford.edu",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bike Pickup Reminder", client.sent[0].Subject)
	assert.Empty(t, client.sent[0].Personalizations[0].BCC)
}

func TestEmailNotifierReportsFailures(t *testing.T) {
	notice := entities.BookingNotice{Kind: entities.NoticeConfirmation, Bike: "bike-one", Day: "2025-10-16", Email: "x@stanford.edu"}

	n := newEmailNotifier(&fakeMailClient{status: 401}, "bikes@stanford.edu", "", nil, newTestSender(t), nil)
	assert.Error(t, n.NotifyBooking(context.Background(), notice))

	n = newEmailNotifier(&fakeMailClient{err: errors.New("timeout")}, "bikes@stanford.edu", "", nil, newTestSender(t), nil)
	assert.Error(t, n.NotifyBooking(context.Background(), notice))

	notice.Day = "garbage"
	n = newEmailNotifier(&fakeMailClient{status: 202}, "bikes@stanford.edu", "", nil, newTestSender(t), nil)
	assert.Error(t, n.NotifyBooking(context.Background(), notice))
}

func TestSMSNotifierOnlyRelaysConfirmations(t *testing.T) {
	client := &fakeSMSClient{}
	n := &SMSNotifier{client: client, from: "+15550000000", adminTo: "+15551112222"}

	require.NoError(t, n.NotifyBooking(context.Background(), entities.BookingNotice{Kind: entities.NoticeReminder}))
	assert.Empty(t, client.params)

	require.NoError(t, n.NotifyBooking(context.Background(), entities.BookingNotice{
		Kind:  entities.NoticeConfirmation,
		Bike:  "bike-three",
		Day:   "2025-10-15",
		Email: "x@stanford.edu",
	}))
	require.Len(t, client.params, 1)
	assert.Equal(t, "+15551112222", *client.params[0].To)
	assert.Contains(t, *client.params[0].Body, "grey city bike")
}

func TestMultiNotifierJoinsErrors(t *testing.T) {
	first := errors.New("email down")
	second := errors.New("sms down")
	var called int
	m := MultiNotifier{
		funcNotifier(func(ctx context.Context, notice entities.BookingNotice) error { called++; return first }),
		funcNotifier(func(ctx context.Context, notice entities.BookingNotice) error { called++; return second }),
		LogNotifier{},
	}

	err := m.NotifyBooking(context.Background(), entities.BookingNotice{})
	assert.Equal(t, 2, called)
	assert.ErrorIs(t, err, first)
	assert.ErrorIs(t, err, second)

	assert.NoError(t, MultiNotifier{LogNotifier{}}.NotifyBooking(context.Background(), entities.BookingNotice{}))
}
