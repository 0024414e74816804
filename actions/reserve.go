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

// reservationHorizonDays bounds how far into the future a new reservation may
// be placed.
const reservationHorizonDays = 90

// Reserve places a new Active reservation for the member on the title.
//
// The pickup date must not precede the earliest feasible date the timeline
// simulation proposes, and a title whose earliest feasible date lies beyond
// the reservation horizon cannot be reserved at all.
func (h *Handler) Reserve(ctx context.Context, snapshot *repository.Snapshot, titleID core.TitleIDString, memberID core.MemberIDString, pickupDate time.Time) (Result, error) {
	title, ok := snapshot.Title(titleID)
	if !ok {
		return rejected(reasonUnknownTitle), nil
	}

	if _, ok := snapshot.Member(memberID); !ok {
		return rejected(reasonUnknownMember), nil
	}

	key := "reserve:" + titleID + ":" + memberID
	if err := h.begin(key); err != nil {
		return Result{}, err
	}
	defer h.finish(key)

	check := conflict.Check(conflict.Candidate{
		MemberID:   memberID,
		TitleID:    titleID,
		PickupDate: pickupDate,
	}, snapshot.Reservations)
	if !check.OK {
		return rejected(check.Reason), nil
	}

	now := h.clock()

	earliest := timeline.EarliestPickup(title, snapshot.LoanEvents, snapshot.Reservations, snapshot.Settings, now)
	if earliest.After(core.AddDays(now, reservationHorizonDays)) {
		return rejected(fmt.Sprintf("no copy becomes free within the %d-day reservation horizon", reservationHorizonDays)), nil
	}

	if core.Day(pickupDate).Before(earliest) {
		return rejected(fmt.Sprintf("earliest feasible pickup date is %s", earliest.Format("2006-01-02"))), nil
	}

	reservation := core.BuildReservation(titleID, memberID, now, pickupDate)

	payload, err := remotestore.EncodeRecord(reservation)
	if err != nil {
		return Result{}, err
	}

	queued, err := h.submit(ctx, offline.InsertOperation(remotestore.EntityReservations, payload))
	if err != nil {
		return Result{}, err
	}

	result := accepted()
	result.Queued = queued

	return result, nil
}
