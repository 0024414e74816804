// Package fixtures provides deterministic builders for scheduling scenarios
// in tests: a fixed base day and loan/reservation records with explicit
// identities.
package fixtures

import (
	"time"

	"github.com/shelfwise/circulation/core"
)

// BaseDay is "Day 0" of every scenario: a fixed date so whole-day arithmetic
// stays readable in assertions.
var BaseDay = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

// OnDay returns BaseDay + n whole days.
func OnDay(n int) time.Time {
	return core.AddDays(BaseDay, n)
}

// Title builds a title record.
func Title(id string, totalCopies int) core.Title {
	return core.Title{
		ID:          id,
		Name:        "Title " + id,
		TotalCopies: totalCopies,
		Category:    "fiction",
		Language:    "en",
	}
}

// Member builds a member record.
func Member(id string) core.Member {
	return core.Member{
		ID:   id,
		Name: "Member " + id,
	}
}

// CheckOut builds a CheckOut entry with a fixed identity.
func CheckOut(id string, titleID string, memberID string, day int, dueDay int) core.LoanEvent {
	return core.LoanEvent{
		ID:        id,
		TitleID:   titleID,
		MemberID:  memberID,
		Kind:      core.CheckOut,
		Timestamp: OnDay(day),
		DueDate:   OnDay(dueDay),
	}
}

// CheckOutWithoutDueDate builds a CheckOut entry whose due date must be
// derived from the loan period.
func CheckOutWithoutDueDate(id string, titleID string, memberID string, day int) core.LoanEvent {
	return core.LoanEvent{
		ID:        id,
		TitleID:   titleID,
		MemberID:  memberID,
		Kind:      core.CheckOut,
		Timestamp: OnDay(day),
	}
}

// CheckIn builds a CheckIn entry with a fixed identity.
func CheckIn(id string, titleID string, memberID string, day int) core.LoanEvent {
	return core.LoanEvent{
		ID:        id,
		TitleID:   titleID,
		MemberID:  memberID,
		Kind:      core.CheckIn,
		Timestamp: OnDay(day),
	}
}

// Reservation builds an Active reservation with a fixed identity.
func Reservation(id string, titleID string, memberID string, pickupDay int) core.Reservation {
	return core.Reservation{
		ID:         id,
		TitleID:    titleID,
		MemberID:   memberID,
		CreatedAt:  BaseDay,
		PickupDate: OnDay(pickupDay),
		Status:     core.ReservationActive,
	}
}

// ReservationWithStatus builds a reservation in the given state.
func ReservationWithStatus(id string, titleID string, memberID string, pickupDay int, status core.ReservationStatus) core.Reservation {
	reservation := Reservation(id, titleID, memberID, pickupDay)
	reservation.Status = status

	return reservation
}

// Settings builds a settings record.
func Settings(loanPeriodDays int, maxRenewals int) core.Settings {
	return core.Settings{
		LoanPeriodDays: loanPeriodDays,
		MaxRenewals:    maxRenewals,
	}
}
