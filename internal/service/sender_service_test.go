package service

import (
	"testing"

	"bikeshare/internal/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeConfirmation(t *testing.T) {
	sender := newTestSender(t)

	msg, err := sender.Compose(entities.BookingNotice{
		Kind:  entities.NoticeConfirmation,
		Bike:  "bike-one",
		Day:   "2025-12-31",
		Email: "jdoe@cs.stanford.edu",
	})
	require.NoError(t, err)

	assert.Equal(t, "jdoe", msg.UserName)
	assert.Equal(t, "Bike Booking Confirmation", msg.Subject)
	assert.Contains(t, msg.PlainText, "Hi jdoe,")
	assert.Contains(t, msg.PlainText, "beige city bike on 2025-12-31")
	assert.Contains(t, msg.PlainText, "6am on 2025-12-31 to 6am on 2026-01-01")
	assert.Contains(t, msg.PlainText, "123 Main Street, Stanford, CA 94305")
	assert.Contains(t, msg.HTML, "<strong>beige city bike</strong>")
	assert.NotContains(t, msg.HTML, "Just a reminder")
}

func TestComposeEscapesUnknownBike(t *testing.T) {
	sender := newTestSender(t)

	msg, err := sender.Compose(entities.BookingNotice{
		Kind:  entities.NoticeReminder,
		Bike:  "<script>",
		Day:   "2025-10-15",
		Email: "a@stanford.edu",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bike Pickup Reminder", msg.Subject)
	assert.Contains(t, msg.HTML, "Just a reminder")
	assert.Contains(t, msg.HTML, "&lt;script&gt;")
	assert.Contains(t, msg.HTML, "Location TBD")
}

func TestUserNameFallback(t *testing.T) {
	assert.Equal(t, "there", userName("@stanford.edu"))
	assert.Equal(t, "abc", userName(" abc@stanford.edu "))
}
