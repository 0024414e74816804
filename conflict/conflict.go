// Package conflict enforces the per-member reservation rules: no duplicate
// reservation on a title and a minimum spacing between pickup dates.
package conflict

import (
	"fmt"

	"github.com/shelfwise/circulation/core"
)

// MinPickupGapDays is the minimum whole-day separation required between any
// two Active reservation pickup dates held by the same member. Exactly this
// many days apart is allowed.
const MinPickupGapDays = 15

const reasonDuplicateReservation = "member already holds an active reservation for this title"

// Candidate describes a new or moved reservation before any mutation is issued.
//
// For an edit, ExcludeReservationID carries the identity of the reservation
// being moved so it does not conflict with itself.
type Candidate struct {
	MemberID             core.MemberIDString
	TitleID              core.TitleIDString
	PickupDate           core.OccurredAtTS
	ExcludeReservationID core.ReservationIDString
}

// Check validates the candidate against the current Active reservations.
// It is purely a predicate: no mutation, no side effects.
func Check(candidate Candidate, reservations []core.Reservation) core.CheckResult {
	candidateDay := core.Day(candidate.PickupDate)

	for _, reservation := range reservations {
		if !reservation.IsActive() || reservation.MemberID != candidate.MemberID {
			continue
		}

		if reservation.ID == candidate.ExcludeReservationID {
			continue
		}

		if reservation.TitleID == candidate.TitleID {
			return core.Rejected(reasonDuplicateReservation)
		}

		gap := core.WholeDaysBetween(reservation.PickupDate, candidateDay)
		if gap < 0 {
			gap = -gap
		}

		if gap < MinPickupGapDays {
			return core.Rejected(fmt.Sprintf(
				"pickup dates must be at least %d days apart, reservation %s is picked up on %s",
				MinPickupGapDays,
				reservation.ID,
				core.Day(reservation.PickupDate).Format("2006-01-02"),
			))
		}
	}

	return core.Allowed()
}
