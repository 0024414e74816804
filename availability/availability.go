// Package availability combines the reconstructed loan state, the reservation
// queue and a title's copy count into an on-shelf count and a display status.
package availability

import (
	"github.com/shelfwise/circulation/core"
)

// Status describes how a title presents to members right now.
type Status string

const (
	// StatusOnShelf means at least one copy is free beyond the queued reservations.
	StatusOnShelf Status = "OnShelf"

	// StatusReserved means copies exist on the shelf but every one of them is
	// claimed by a queued reservation.
	StatusReserved Status = "Reserved"

	// StatusUnavailable means no copy is on the shelf.
	StatusUnavailable Status = "Unavailable"
)

// Availability is the derived per-title availability at a point in time.
// It is recomputed on every read and never cached across mutations.
type Availability struct {
	TitleID            core.TitleIDString
	CheckedOut         int
	OnShelf            int
	ActiveReservations int
	Status             Status
}

// Compute derives the availability of one title from the full event log and
// reservation set.
func Compute(title core.Title, events []core.LoanEvent, reservations []core.Reservation) Availability {
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

	checkedOut := checkouts - checkins
	if checkedOut < 0 {
		checkedOut = 0
	}

	onShelf := title.TotalCopies - checkedOut

	activeReservations := 0
	for _, reservation := range reservations {
		if reservation.TitleID == title.ID && reservation.IsActive() {
			activeReservations++
		}
	}

	return Availability{
		TitleID:            title.ID,
		CheckedOut:         checkedOut,
		OnShelf:            onShelf,
		ActiveReservations: activeReservations,
		Status:             statusFor(onShelf, activeReservations),
	}
}

func statusFor(onShelf int, activeReservations int) Status {
	switch {
	case onShelf <= 0:
		return StatusUnavailable
	case onShelf <= activeReservations:
		return StatusReserved
	default:
		return StatusOnShelf
	}
}
