package actions

import (
	"context"

	"github.com/shelfwise/circulation/core"
	"github.com/shelfwise/circulation/offline"
	"github.com/shelfwise/circulation/remotestore"
	"github.com/shelfwise/circulation/repository"
)

const (
	reasonUnknownReservation   = "reservation does not exist"
	reasonReservationNotActive = "reservation is not active"
	reasonNotATerminalStatus   = "status is not a cancellation outcome"
)

// CancelReservation moves an Active reservation into one of its terminal
// states. The record itself is kept, only its status changes.
func (h *Handler) CancelReservation(ctx context.Context, snapshot *repository.Snapshot, reservationID core.ReservationIDString, outcome core.ReservationStatus) (Result, error) {
	reservation, found := snapshot.Reservation(reservationID)
	if !found {
		return rejected(reasonUnknownReservation), nil
	}

	if !reservation.IsActive() {
		return rejected(reasonReservationNotActive), nil
	}

	if !isCancellationOutcome(outcome) {
		return rejected(reasonNotATerminalStatus), nil
	}

	key := "cancel:" + reservationID
	if err := h.begin(key); err != nil {
		return Result{}, err
	}
	defer h.finish(key)

	reservation.Status = outcome

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

func isCancellationOutcome(status core.ReservationStatus) bool {
	switch status {
	case core.ReservationCancelled, core.ReservationCancelledOverdue, core.ReservationCancelledByMember, core.ReservationExpired:
		return true
	default:
		return false
	}
}
