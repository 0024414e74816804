// Package timeline projects when copies of a title become free again.
//
// The simulation feeds two decisions: the earliest feasible pickup date when a
// new reservation is placed, and the latest feasible pickup date when an
// existing reservation is moved.
package timeline

import (
	"slices"
	"time"

	"github.com/shelfwise/circulation/core"
	"github.com/shelfwise/circulation/ledger"
)

// defaultEditHorizonDays bounds a pickup-date edit when no later reservation
// constrains it.
const defaultEditHorizonDays = 90

// EarliestPickup computes the earliest feasible pickup date for a new
// reservation on the given title.
//
// One copy-free date is built per physical copy: copies on the shelf are free
// immediately, copies on loan free up at their due date (derived from the
// checkout timestamp and the loan period when no explicit due date exists).
// Every existing Active reservation is then assigned, in pickup-date order,
// the earliest copy-free date not after its pickup date; that copy's free date
// advances to pickup + loanPeriodDays. A reservation with no eligible copy is
// skipped and stops influencing the copies. The earliest free date left after
// the simulation, floored at tomorrow, is the proposal.
func EarliestPickup(
	title core.Title,
	events []core.LoanEvent,
	reservations []core.Reservation,
	settings core.Settings,
	now time.Time,
) time.Time {

	freeDates := copyFreeDates(title, events, settings)

	for _, reservation := range activeForTitle(reservations, title.ID) {
		slices.SortFunc(freeDates, func(a, b time.Time) int { return a.Compare(b) })

		pickup := core.Day(reservation.PickupDate)
		if freeDates[0].After(pickup) {
			continue // no copy is free in time for this reservation
		}

		freeDates[0] = core.AddDays(pickup, settings.LoanPeriodDays)
	}

	earliest := slices.MinFunc(freeDates, func(a, b time.Time) int { return a.Compare(b) })

	tomorrow := core.Tomorrow(now)
	if earliest.Before(tomorrow) {
		return tomorrow
	}

	return earliest
}

// LatestPickup computes the latest feasible pickup date when the given Active
// reservation is being moved.
//
// With the title's Active reservations sorted by pickup date, the reservation
// at position i may move up to the point where it would starve the reservation
// at position i + totalCopies, the one waiting for the same physical copy to
// cycle through. Without such a blocker the edit is bounded by a fixed horizon
// of 90 days from today.
func LatestPickup(
	edited core.Reservation,
	reservations []core.Reservation,
	title core.Title,
	settings core.Settings,
	now time.Time,
) time.Time {

	actives := activeForTitle(reservations, title.ID)

	position := slices.IndexFunc(actives, func(r core.Reservation) bool {
		return r.ID == edited.ID
	})
	if position < 0 {
		return core.AddDays(now, defaultEditHorizonDays)
	}

	blocker := position + title.TotalCopies
	if blocker >= len(actives) {
		return core.AddDays(now, defaultEditHorizonDays)
	}

	return core.AddDays(actives[blocker].PickupDate, -settings.LoanPeriodDays)
}

// copyFreeDates builds one free date per physical copy of the title.
func copyFreeDates(title core.Title, events []core.LoanEvent, settings core.Settings) []time.Time {
	openLoans := ledger.OpenLoansForTitle(events, title.ID)

	slices.SortFunc(openLoans, func(a, b core.LoanEvent) int {
		return a.EffectiveDueDate(settings.LoanPeriodDays).Compare(b.EffectiveDueDate(settings.LoanPeriodDays))
	})

	if len(openLoans) > title.TotalCopies {
		openLoans = openLoans[:title.TotalCopies]
	}

	freeDates := make([]time.Time, 0, title.TotalCopies)
	for _, loan := range openLoans {
		freeDates = append(freeDates, loan.EffectiveDueDate(settings.LoanPeriodDays))
	}

	for len(freeDates) < title.TotalCopies {
		freeDates = append(freeDates, time.Time{}) // on the shelf, free immediately
	}

	return freeDates
}

func activeForTitle(reservations []core.Reservation, titleID core.TitleIDString) []core.Reservation {
	actives := make([]core.Reservation, 0)

	for _, reservation := range reservations {
		if reservation.TitleID == titleID && reservation.IsActive() {
			actives = append(actives, reservation)
		}
	}

	slices.SortStableFunc(actives, func(a, b core.Reservation) int {
		return core.Day(a.PickupDate).Compare(core.Day(b.PickupDate))
	})

	return actives
}
