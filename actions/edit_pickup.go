package actions

import (
	"context"
	"fmt"
	"time"

	"github.com/shelfwise/circulation/conflict"
	"github.com/shelfwise/circulation/core"
	"github.com/shelfwise/circulation/offline"
	"github.com/shelfwise/circulation/remotestore"
	"github.com/shelfwise/circulation/repository"
	"github.com/shelfwise/circulation/timeline"
)

// EditPickupDate moves an Active reservation to a new pickup date.
//
// The new date is bounded by the latest feasible date from the timeline
// simulation: moving further would starve the reservation waiting for the
// same copy to cycle through. The member's spacing rules apply to the new
// date, the moved reservation itself excluded.
func (h *Handler) EditPickupDate(ctx context.Context, snapshot *repository.Snapshot, reservationID core.ReservationIDString, newPickupDate time.Time) (Result, error) {
	reservation, found := snapshot.Reservation(reservationID)
	if !found {
		return rejected(reasonUnknownReservation), nil
	}

	if !reservation.IsActive() {
		return rejected(reasonReservationNotActive), nil
	}

	title, ok := snapshot.Title(reservation.TitleID)
	if !ok {
		return rejected(reasonUnknownTitle), nil
	}

	key := "editpickup:" + reservationID
	if err := h.begin(key); err != nil {
		return Result{}, err
	}
	defer h.finish(key)

	check := conflict.Check(conflict.Candidate{
		MemberID:             reservation.MemberID,
		TitleID:              reservation.TitleID,
		PickupDate:           newPickupDate,
		ExcludeReservationID: reservation.ID,
	}, snapshot.Reservations)
	if !check.OK {
		return rejected(check.Reason), nil
	}

	latest := timeline.LatestPickup(reservation, snapshot.Reservations, title, snapshot.Settings, h.clock())
	if core.Day(newPickupDate).After(latest) {
		return rejected(fmt.Sprintf("latest feasible pickup date is %s", latest.Format("2006-01-02"))), nil
	}

	reservation.PickupDate = core.Day(newPickupDate)

	payload, err := remotestore.EncodeRecord(reservation)
	if err != nil {
		return Result{}, err
	}

	queued, err := h.submit(ctx, offline.UpdateOperation(remotestore.EntityReservations, reservation.ID, payload))
	if err != nil {
		return Result{}, err
	}

	result := accepted()
	result.Queued = queued

	return result, nil
}
