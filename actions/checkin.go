package actions

import (
	"context"

	"github.com/shelfwise/circulation/core"
	"github.com/shelfwise/circulation/ledger"
	"github.com/shelfwise/circulation/offline"
	"github.com/shelfwise/circulation/remotestore"
	"github.com/shelfwise/circulation/repository"
)

const reasonNoOpenLoan = "member holds no open loan for this title"

// Checkin returns a copy of the title from the member. The ledger closes the
// member's oldest open loan on this title.
func (h *Handler) Checkin(ctx context.Context, snapshot *repository.Snapshot, titleID core.TitleIDString, memberID core.MemberIDString) (Result, error) {
	if _, ok := snapshot.Title(titleID); !ok {
		return rejected(reasonUnknownTitle), nil
	}

	open := ledger.OpenLoansFor(snapshot.LoanEvents, memberID, titleID)
	if len(open) == 0 {
		return rejected(reasonNoOpenLoan), nil
	}

	key := "checkin:" + titleID + ":" + memberID
	if err := h.begin(key); err != nil {
		return Result{}, err
	}
	defer h.finish(key)

	event := core.BuildCheckIn(titleID, memberID, h.clock())

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

	return result, nil
}
