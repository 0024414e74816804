package actions

import (
	"context"
	"fmt"

	"github.com/shelfwise/circulation/core"
	"github.com/shelfwise/circulation/ledger"
	"github.com/shelfwise/circulation/offline"
	"github.com/shelfwise/circulation/remotestore"
	"github.com/shelfwise/circulation/renewal"
	"github.com/shelfwise/circulation/repository"
)

const reasonLoanNotOpen = "loan is not open"

// Renew extends the due date of an open loan.
//
// The renewal limit from the settings is enforced here, at the action layer;
// the capper itself only reasons about reservations. A renewal blocked by an
// unavoidable reservation conflict is a rule violation, not an error.
func (h *Handler) Renew(ctx context.Context, snapshot *repository.Snapshot, loanEventID core.LoanEventIDString) (Result, error) {
	loan, found := findOpenLoan(snapshot.LoanEvents, loanEventID)
	if !found {
		return rejected(reasonLoanNotOpen), nil
	}

	title, ok := snapshot.Title(loan.TitleID)
	if !ok {
		return rejected(reasonUnknownTitle), nil
	}

	if loan.RenewalCount >= snapshot.Settings.MaxRenewals {
		return rejected(fmt.Sprintf("renewal limit of %d reached", snapshot.Settings.MaxRenewals)), nil
	}

	key := "renew:" + loanEventID
	if err := h.begin(key); err != nil {
		return Result{}, err
	}
	defer h.finish(key)

	decision := renewal.Decide(loan, title, snapshot.LoanEvents, snapshot.Reservations, snapshot.Settings)
	if !decision.Accepted() {
		return rejected(decision.Message), nil
	}

	renewed := loan
	renewed.DueDate = decision.NewDueDate
	renewed.RenewalCount++

	payload, err := remotestore.EncodeRecord(renewed)
	if err != nil {
		return Result{}, err
	}

	queued, err := h.submit(ctx, offline.UpdateOperation(remotestore.EntityLoanEvents, renewed.ID, payload))
	if err != nil {
		return Result{}, err
	}

	result := accepted()
	result.Queued = queued
	result.Message = decision.Message

	return result, nil
}

func findOpenLoan(events []core.LoanEvent, loanEventID core.LoanEventIDString) (core.LoanEvent, bool) {
	for _, loan := range ledger.OpenLoans(events) {
		if loan.ID == loanEventID {
			return loan, true
		}
	}

	return core.LoanEvent{}, false
}
