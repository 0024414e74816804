// Package ledger reconstructs the currently open loans from the flat
// checkout/checkin event log. This is the source every downstream scheduling
// component derives its loan state from.
package ledger

import (
	"slices"

	"github.com/shelfwise/circulation/core"
)

type pairKey struct {
	memberID core.MemberIDString
	titleID  core.TitleIDString
}

// OpenLoans derives the set of currently open CheckOut entries system-wide.
//
// Events are grouped per (member, title) pair and each group is walked in
// timestamp order while maintaining an ordered list of open checkouts. A
// CheckIn closes the earliest-added still-open checkout: the oldest open loan
// closes first. This FIFO order is observed production behavior and must not
// be changed to most-recent-first.
//
// The function is pure and deterministic given the log.
func OpenLoans(events []core.LoanEvent) []core.LoanEvent {
	groups := make(map[pairKey][]core.LoanEvent)

	for _, event := range events {
		key := pairKey{memberID: event.MemberID, titleID: event.TitleID}
		groups[key] = append(groups[key], event)
	}

	open := make([]core.LoanEvent, 0)
	for _, group := range groups {
		open = append(open, walkGroup(group)...)
	}

	sortLoans(open)

	return open
}

// OpenLoansFor derives the currently open checkouts for one (member, title) pair.
func OpenLoansFor(events []core.LoanEvent, memberID core.MemberIDString, titleID core.TitleIDString) []core.LoanEvent {
	group := make([]core.LoanEvent, 0)

	for _, event := range events {
		if event.MemberID == memberID && event.TitleID == titleID {
			group = append(group, event)
		}
	}

	open := walkGroup(group)
	sortLoans(open)

	return open
}

// OpenLoansForTitle derives the currently open checkouts for a title across all members.
func OpenLoansForTitle(events []core.LoanEvent, titleID core.TitleIDString) []core.LoanEvent {
	open := make([]core.LoanEvent, 0)

	for _, loan := range OpenLoans(events) {
		if loan.TitleID == titleID {
			open = append(open, loan)
		}
	}

	return open
}

// OpenLoansForMember derives the currently open checkouts a member holds across all titles.
func OpenLoansForMember(events []core.LoanEvent, memberID core.MemberIDString) []core.LoanEvent {
	open := make([]core.LoanEvent, 0)

	for _, loan := range OpenLoans(events) {
		if loan.MemberID == memberID {
			open = append(open, loan)
		}
	}

	return open
}

// walkGroup replays one (member, title) group and returns the entries still open.
func walkGroup(group []core.LoanEvent) []core.LoanEvent {
	slices.SortStableFunc(group, func(a, b core.LoanEvent) int {
		return a.Timestamp.Compare(b.Timestamp)
	})

	open := make([]core.LoanEvent, 0)

	for _, event := range group {
		switch event.Kind {
		case core.CheckOut:
			open = append(open, event)

		case core.CheckIn:
			if len(open) > 0 {
				open = open[1:] // FIFO: the earliest-added open checkout closes
			}
		}
	}

	return open
}

func sortLoans(loans []core.LoanEvent) {
	slices.SortStableFunc(loans, func(a, b core.LoanEvent) int {
		if cmp := a.Timestamp.Compare(b.Timestamp); cmp != 0 {
			return cmp
		}

		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		default:
			return 0
		}
	})
}
