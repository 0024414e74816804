package core

import (
	"time"

	"github.com/google/uuid"
)

// LoanEventKind discriminates the two entries the ledger is built from.
type LoanEventKind string

const (
	// CheckOut records a copy leaving the shelf.
	CheckOut LoanEventKind = "CheckOut"

	// CheckIn records a copy coming back.
	CheckIn LoanEventKind = "CheckIn"
)

// LoanEvent is one entry of the append-only checkout/checkin log.
//
// Entries are never deleted. The only permitted mutation is a renewal updating
// DueDate and RenewalCount on an open CheckOut entry.
type LoanEvent struct {
	ID           LoanEventIDString
	TitleID      TitleIDString
	MemberID     MemberIDString
	Kind         LoanEventKind
	Timestamp    OccurredAtTS
	DueDate      time.Time // set at CheckOut, zero on CheckIn entries
	RenewalCount int
}

// BuildCheckOut creates a CheckOut entry with a fresh identity and the given due date.
func BuildCheckOut(titleID TitleIDString, memberID MemberIDString, occurredAt time.Time, dueDate time.Time) LoanEvent {
	return LoanEvent{
		ID:        uuid.New().String(),
		TitleID:   titleID,
		MemberID:  memberID,
		Kind:      CheckOut,
		Timestamp: ToOccurredAt(occurredAt),
		DueDate:   Day(dueDate),
	}
}

// BuildCheckIn creates a CheckIn entry with a fresh identity.
func BuildCheckIn(titleID TitleIDString, memberID MemberIDString, occurredAt time.Time) LoanEvent {
	return LoanEvent{
		ID:        uuid.New().String(),
		TitleID:   titleID,
		MemberID:  memberID,
		Kind:      CheckIn,
		Timestamp: ToOccurredAt(occurredAt),
	}
}

// EffectiveDueDate returns the entry's due date, deriving it from the checkout
// timestamp plus the loan period when no explicit due date was recorded.
func (e LoanEvent) EffectiveDueDate(loanPeriodDays int) time.Time {
	if !e.DueDate.IsZero() {
		return Day(e.DueDate)
	}

	return AddDays(e.Timestamp, loanPeriodDays)
}
