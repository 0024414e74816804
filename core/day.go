package core

import (
	"time"
)

// Reservation pickup dates are calendar dates: every gap, conflict and cap rule
// compares them in whole-day units with the time-of-day stripped.

// Day truncates t to midnight UTC, the canonical calendar-date representation.
func Day(t time.Time) time.Time {
	u := t.UTC()

	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// AddDays returns the calendar date n whole days after t.
func AddDays(t time.Time, n int) time.Time {
	return Day(t).AddDate(0, 0, n)
}

// WholeDaysBetween returns the number of whole days from a to b.
// The result is negative when b lies before a.
func WholeDaysBetween(a time.Time, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}

// Tomorrow returns the calendar date one day after now.
func Tomorrow(now time.Time) time.Time {
	return AddDays(now, 1)
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a time.Time, b time.Time) bool {
	return Day(a).Equal(Day(b))
}
