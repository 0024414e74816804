package actions

import (
	"context"

	"github.com/shelfwise/circulation/availability"
	"github.com/shelfwise/circulation/core"
	"github.com/shelfwise/circulation/ledger"
	"github.com/shelfwise/circulation/offline"
	"github.com/shelfwise/circulation/remotestore"
	"github.com/shelfwise/circulation/repository"
)

const (
	reasonTitleStillCheckedOut = "title has copies checked out"
	reasonMemberHoldsOpenLoans = "member still holds open loans"
	reasonInvalidCopyCount     = "a title needs at least one copy"
)

// AddTitle adds a new title to the catalog.
func (h *Handler) AddTitle(ctx context.Context, title core.Title) (Result, error) {
	if title.TotalCopies < 1 {
		return rejected(reasonInvalidCopyCount), nil
	}

	key := "addtitle:" + title.ID
	if err := h.begin(key); err != nil {
		return Result{}, err
	}
	defer h.finish(key)

	payload, err := remotestore.EncodeRecord(title)
	if err != nil {
		return Result{}, err
	}

	queued, err := h.submit(ctx, offline.InsertOperation(remotestore.EntityTitles, payload))
	if err != nil {
		return Result{}, err
	}

	result := accepted()
	result.Queued = queued

	return result, nil
}

// RemoveTitle removes a title from the catalog. A title with a positive net
// checked-out count cannot be removed.
func (h *Handler) RemoveTitle(ctx context.Context, snapshot *repository.Snapshot, titleID core.TitleIDString) (Result, error) {
	title, ok := snapshot.Title(titleID)
	if !ok {
		return rejected(reasonUnknownTitle), nil
	}

	current := availability.Compute(title, snapshot.LoanEvents, snapshot.Reservations)
	if current.CheckedOut > 0 {
		return rejected(reasonTitleStillCheckedOut), nil
	}

	key := "removetitle:" + titleID
	if err := h.begin(key); err != nil {
		return Result{}, err
	}
	defer h.finish(key)

	queued, err := h.submit(ctx, offline.DeleteOperation(remotestore.EntityTitles, titleID))
	if err != nil {
		return Result{}, err
	}

	result := accepted()
	result.Queued = queued

	return result, nil
}

// RegisterMember adds a member to the pool.
func (h *Handler) RegisterMember(ctx context.Context, member core.Member) (Result, error) {
	key := "registermember:" + member.ID
	if err := h.begin(key); err != nil {
		return Result{}, err
	}
	defer h.finish(key)

	payload, err := remotestore.EncodeRecord(member)
	if err != nil {
		return Result{}, err
	}

	queued, err := h.submit(ctx, offline.InsertOperation(remotestore.EntityMembers, payload))
	if err != nil {
		return Result{}, err
	}

	result := accepted()
	result.Queued = queued

	return result, nil
}

// RemoveMember removes a member from the pool. A member holding an open loan
// cannot be removed.
func (h *Handler) RemoveMember(ctx context.Context, snapshot *repository.Snapshot, memberID core.MemberIDString) (Result, error) {
	if _, ok := snapshot.Member(memberID); !ok {
		return rejected(reasonUnknownMember), nil
	}

	if len(ledger.OpenLoansForMember(snapshot.LoanEvents, memberID)) > 0 {
		return rejected(reasonMemberHoldsOpenLoans), nil
	}

	key := "removemember:" + memberID
	if err := h.begin(key); err != nil {
		return Result{}, err
	}
	defer h.finish(key)

	queued, err := h.submit(ctx, offline.DeleteOperation(remotestore.EntityMembers, memberID))
	if err != nil {
		return Result{}, err
	}

	result := accepted()
	result.Queued = queued

	return result, nil
}
