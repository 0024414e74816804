package core

import (
	"time"

	"github.com/google/uuid"
)

// ReservationStatus is the lifecycle state of a reservation.
//
// A reservation is created Active and terminates in exactly one of the other
// states. The record itself is never physically deleted. An Active reservation
// past its pickup date stays Active until an operator extends or cancels it,
// there is no automatic expiry.
type ReservationStatus string

const (
	ReservationActive            ReservationStatus = "Active"
	ReservationFulfilled         ReservationStatus = "Fulfilled"
	ReservationCancelled         ReservationStatus = "Cancelled"
	ReservationCancelledOverdue  ReservationStatus = "Cancelled(Overdue)"
	ReservationCancelledByMember ReservationStatus = "Cancelled(ByMember)"
	ReservationExpired           ReservationStatus = "Expired"
)

// Reservation represents a queued claim on a future copy of a title.
type Reservation struct {
	ID         ReservationIDString
	TitleID    TitleIDString
	MemberID   MemberIDString
	CreatedAt  OccurredAtTS
	PickupDate time.Time // calendar date, time-of-day is ignored
	Status     ReservationStatus
}

// BuildReservation creates an Active reservation with a fresh identity.
func BuildReservation(titleID TitleIDString, memberID MemberIDString, createdAt time.Time, pickupDate time.Time) Reservation {
	return Reservation{
		ID:         uuid.New().String(),
		TitleID:    titleID,
		MemberID:   memberID,
		CreatedAt:  ToOccurredAt(createdAt),
		PickupDate: Day(pickupDate),
		Status:     ReservationActive,
	}
}

// IsActive reports whether the reservation still competes for a copy.
func (r Reservation) IsActive() bool {
	return r.Status == ReservationActive
}

// IsTerminal reports whether the reservation has reached a final state.
func (r Reservation) IsTerminal() bool {
	return r.Status != ReservationActive
}
