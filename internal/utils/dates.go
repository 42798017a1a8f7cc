package utils

import (
	"regexp"
	"time"
)

const DayLayout = "2006-01-02"

var dayPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ParseDay accepts only the literal YYYY-MM-DD form of a real calendar date.
// time.Parse already rejects out of range values such as 2025-02-30.
func ParseDay(day string) (time.Time, bool) {
	if !dayPattern.MatchString(day) {
		return time.Time{}, false
	}
	t, err := time.Parse(DayLayout, day)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func FormatDay(t time.Time) string {
	return t.Format(DayLayout)
}

// MonthRange returns the first and last day of the month, inclusive.
func MonthRange(year int, month time.Month) (string, string) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return FormatDay(first), FormatDay(last)
}

// WindowRange covers the month of now and the following months-1 months.
func WindowRange(now time.Time, months int) (string, string) {
	now = now.UTC()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, months, -1)
	return FormatDay(first), FormatDay(last)
}

// Today truncates now to a UTC calendar date.
func Today(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
