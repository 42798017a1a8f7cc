package entities

type NoticeKind string

const (
	NoticeConfirmation NoticeKind = "confirmation"
	NoticeReminder     NoticeKind = "reminder"
)

// BookingNotice is what the notifiers receive once a booking is committed.
type BookingNotice struct {
	Kind  NoticeKind
	Bike  string
	Day   string
	Email string
}

type BookingEmailData struct {
	UserName     string
	BikeName     string
	BikeLocation string
	Day          string
	ValidFrom    string
	ValidUntil   string
	Reminder     bool
}
