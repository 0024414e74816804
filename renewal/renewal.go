// Package renewal extends a loan's due date, capped so that a queued
// reservation is never starved by the extension.
package renewal

import (
	"fmt"
	"slices"
	"time"

	"github.com/shelfwise/circulation/core"
)

// Outcome discriminates the result of a renewal decision.
type Outcome string

const (
	// OutcomeAccepted means the renewal proceeds with NewDueDate.
	OutcomeAccepted Outcome = "accepted"

	// OutcomeBlocked means the renewal is rejected because a queued
	// reservation leaves no room to extend.
	OutcomeBlocked Outcome = "blocked"
)

// Decision is the outcome of a renewal attempt.
//
// Construct it only through Decide. When a reservation shortened or blocked
// the extension, ConstrainedBy names it and Message explains the cap to the
// member. On acceptance the caller increments the loan's RenewalCount by one.
type Decision struct {
	Outcome       Outcome
	NewDueDate    time.Time
	Message       string
	ConstrainedBy *core.Reservation
}

// Accepted reports whether the renewal may proceed.
func (d Decision) Accepted() bool {
	return d.Outcome == OutcomeAccepted
}

// Decide computes the renewal outcome for an open loan. Pure function over the
// snapshot: the standard renewed date is the current due date plus the loan
// period; if more reservations want a copy before that date than there are
// copies on the shelf, the extension is capped to the day before the earliest
// such pickup, and rejected outright when even the capped date would not move
// the due date forward.
//
// MaxRenewals from the settings is advisory input to the caller and is not
// enforced here.
func Decide(
	loan core.LoanEvent,
	title core.Title,
	events []core.LoanEvent,
	reservations []core.Reservation,
	settings core.Settings,
) Decision {

	currentDue := loan.EffectiveDueDate(settings.LoanPeriodDays)
	standardDue := core.AddDays(currentDue, settings.LoanPeriodDays)

	conflicting := conflictingReservations(reservations, title.ID, standardDue)

	if len(conflicting) > currentOnShelf(title, events) {
		earliest := conflicting[0]
		cappedDue := core.AddDays(earliest.PickupDate, -1)

		if !cappedDue.After(currentDue) {
			return Decision{
				Outcome: OutcomeBlocked,
				Message: fmt.Sprintf(
					"renewal blocked: reservation %s is picked up on %s",
					earliest.ID,
					core.Day(earliest.PickupDate).Format("2006-01-02"),
				),
				ConstrainedBy: &earliest,
			}
		}

		return Decision{
			Outcome:    OutcomeAccepted,
			NewDueDate: cappedDue,
			Message: fmt.Sprintf(
				"due date capped to %s by reservation %s with pickup on %s",
				cappedDue.Format("2006-01-02"),
				earliest.ID,
				core.Day(earliest.PickupDate).Format("2006-01-02"),
			),
			ConstrainedBy: &earliest,
		}
	}

	return Decision{
		Outcome:    OutcomeAccepted,
		NewDueDate: standardDue,
	}
}

// conflictingReservations collects the Active reservations for the title with
// a pickup date before the standard renewed due date, earliest first.
func conflictingReservations(reservations []core.Reservation, titleID core.TitleIDString, standardDue time.Time) []core.Reservation {
	conflicting := make([]core.Reservation, 0)

	for _, reservation := range reservations {
		if reservation.TitleID != titleID || !reservation.IsActive() {
			continue
		}

		if core.Day(reservation.PickupDate).Before(standardDue) {
			conflicting = append(conflicting, reservation)
		}
	}

	slices.SortStableFunc(conflicting, func(a, b core.Reservation) int {
		return core.Day(a.PickupDate).Compare(core.Day(b.PickupDate))
	})

	return conflicting
}

// currentOnShelf derives the shelf count over all loans of the title.
// Unlike the availability status this is deliberately not floored at zero:
// a negative shelf count still means every conflicting reservation wins.
func currentOnShelf(title core.Title, events []core.LoanEvent) int {
	checkouts := 0
	checkins := 0

	for _, event := range events {
		if event.TitleID != title.ID {
			continue
		}

		switch event.Kind {
		case core.CheckOut:
			checkouts++
		case core.CheckIn:
			checkins++
		}
	}

	return title.TotalCopies - (checkouts - checkins)
}
