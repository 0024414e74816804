package core

import (
	"time"
)

// Instead of implementing full value objects, alias types and small helpers
// keep the records lightweight ...

// TitleIDString represents a title identifier.
type TitleIDString = string

// MemberIDString represents a member identifier (fixed-width, assigned at registration).
type MemberIDString = string

// LoanEventIDString represents a loan event identifier.
type LoanEventIDString = string

// ReservationIDString represents a reservation identifier.
type ReservationIDString = string

// OccurredAtTS represents when an event occurred.
type OccurredAtTS = time.Time

// ToOccurredAt converts a time to OccurredAtTS with UTC normalization and microsecond precision.
func ToOccurredAt(t time.Time) OccurredAtTS {
	return t.UTC().Truncate(time.Microsecond)
}
