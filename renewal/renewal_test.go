package renewal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shelfwise/circulation/core"
	"github.com/shelfwise/circulation/renewal"
	"github.com/shelfwise/circulation/testutil/fixtures"
)

func Test_Decide_GrantsTheFullExtension_WithoutConflictingReservations(t *testing.T) {
	title := fixtures.Title("title-a", 1)
	loan := fixtures.CheckOut("out-1", "title-a", "member-1", 0, 10)
	events := []core.LoanEvent{loan}

	decision := renewal.Decide(loan, title, events, nil, fixtures.Settings(14, 2))

	assert.True(t, decision.Accepted())
	assert.Equal(t, fixtures.OnDay(24), decision.NewDueDate)
	assert.Nil(t, decision.ConstrainedBy)
}

func Test_Decide_CapsTheExtensionToTheDayBeforeTheEarliestConflictingPickup(t *testing.T) {
	title := fixtures.Title("title-a", 1)
	loan := fixtures.CheckOut("out-1", "title-a", "member-1", 0, 10)
	events := []core.LoanEvent{loan}
	reservations := []core.Reservation{
		fixtures.Reservation("res-1", "title-a", "member-2", 20),
	}

	decision := renewal.Decide(loan, title, events, reservations, fixtures.Settings(14, 2))

	assert.True(t, decision.Accepted())
	assert.Equal(t, fixtures.OnDay(19), decision.NewDueDate)
	assert.Contains(t, decision.Message, "res-1")
	assert.Equal(t, "res-1", decision.ConstrainedBy.ID)
}

func Test_Decide_BlocksTheRenewal_WhenTheCapWouldNotMoveTheDueDateForward(t *testing.T) {
	title := fixtures.Title("title-a", 1)
	loan := fixtures.CheckOut("out-1", "title-a", "member-1", 0, 10)
	events := []core.LoanEvent{loan}
	reservations := []core.Reservation{
		fixtures.Reservation("res-1", "title-a", "member-2", 11),
	}

	decision := renewal.Decide(loan, title, events, reservations, fixtures.Settings(14, 2))

	assert.Equal(t, renewal.OutcomeBlocked, decision.Outcome)
	assert.Contains(t, decision.Message, "renewal blocked")
	assert.Equal(t, "res-1", decision.ConstrainedBy.ID)
}

func Test_Decide_GrantsTheFullExtension_WhenShelfCopiesCoverTheReservations(t *testing.T) {
	// Two copies, one on loan: the single conflicting reservation can be
	// served from the shelf, so the renewal is unconstrained.
	title := fixtures.Title("title-a", 2)
	loan := fixtures.CheckOut("out-1", "title-a", "member-1", 0, 10)
	events := []core.LoanEvent{loan}
	reservations := []core.Reservation{
		fixtures.Reservation("res-1", "title-a", "member-2", 20),
	}

	decision := renewal.Decide(loan, title, events, reservations, fixtures.Settings(14, 2))

	assert.True(t, decision.Accepted())
	assert.Equal(t, fixtures.OnDay(24), decision.NewDueDate)
}

func Test_Decide_IgnoresReservationsPickedUpAfterTheStandardRenewedDate(t *testing.T) {
	title := fixtures.Title("title-a", 1)
	loan := fixtures.CheckOut("out-1", "title-a", "member-1", 0, 10)
	events := []core.LoanEvent{loan}
	reservations := []core.Reservation{
		fixtures.Reservation("res-1", "title-a", "member-2", 30),
	}

	decision := renewal.Decide(loan, title, events, reservations, fixtures.Settings(14, 2))

	assert.True(t, decision.Accepted())
	assert.Equal(t, fixtures.OnDay(24), decision.NewDueDate)
}

func Test_Decide_DerivesTheCurrentDueDateFromTheLoanPeriod_WhenTheLoanHasNone(t *testing.T) {
	title := fixtures.Title("title-a", 1)
	loan := fixtures.CheckOutWithoutDueDate("out-1", "title-a", "member-1", 0)
	events := []core.LoanEvent{loan}

	decision := renewal.Decide(loan, title, events, nil, fixtures.Settings(14, 2))

	assert.True(t, decision.Accepted())
	assert.Equal(t, fixtures.OnDay(28), decision.NewDueDate)
}
