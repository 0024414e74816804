package actions

import (
	"context"

	"github.com/shelfwise/circulation/availability"
	"github.com/shelfwise/circulation/core"
	"github.com/shelfwise/circulation/offline"
	"github.com/shelfwise/circulation/remotestore"
	"github.com/shelfwise/circulation/repository"
)

const (
	reasonUnknownTitle  = "title is not in the catalog"
	reasonUnknownMember = "member is not registered"
	reasonNoCopyOnShelf = "no copy is on the shelf"
)

// Checkout lends a copy of the title to the member.
//
// When the member holds an Active reservation for the title, that reservation
// is fulfilled in the same action.
func (h *Handler) Checkout(ctx context.Context, snapshot *repository.Snapshot, titleID core.TitleIDString, memberID core.MemberIDString) (Result, error) {
	title, ok := snapshot.Title(titleID)
	if !ok {
		return rejected(reasonUnknownTitle), nil
	}

	if _, ok := snapshot.Member(memberID); !ok {
		return rejected(reasonUnknownMember), nil
	}

	key := "checkout:" + titleID + ":" + memberID
	if err := h.begin(key); err != nil {
		return Result{}, err
	}
	defer h.finish(key)

	current := availability.Compute(title, snapshot.LoanEvents, snapshot.Reservations)
	if current.OnShelf <= 0 {
		return rejected(reasonNoCopyOnShelf), nil
	}

	now := h.clock()
	event := core.BuildCheckOut(titleID, memberID, now, core.AddDays(now, snapshot.Settings.LoanPeriodDays))

	payload, err := remotestore.EncodeRecord(event)
	if err != nil {
		return Result{}, err
	}

	queued, err := h.submit(ctx, offline.InsertOperation(remotestore.EntityLoanEvents, payload))
	if err != nil {
		return Result{}, err
	}

	result := accepted()
	result.Queued = queued

	if reservation, held := snapshot.ActiveReservationForMemberAndTitle(memberID, titleID); held {
		fulfilledQueued, fulfillErr := h.fulfillReservation(ctx, reservation)
		if fulfillErr != nil {
			return Result{}, fulfillErr
		}

		result.Queued = result.Queued || fulfilledQueued
		result.Message = "reservation " + reservation.ID + " fulfilled"
	}

	return result, nil
}

func (h *Handler) fulfillReservation(ctx context.Context, reservation core.Reservation) (bool, error) {
	reservation.Status = core.ReservationFulfilled

	payload, err := remotestore.EncodeRecord(reservation)
	if err != nil {
		return false, err
	}

	return h.submit(ctx, offline.UpdateOperation(remotestore.EntityReservations, reservation.ID, payload))
}
