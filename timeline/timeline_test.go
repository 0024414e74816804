package timeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shelfwise/circulation/core"
	"github.com/shelfwise/circulation/testutil/fixtures"
	"github.com/shelfwise/circulation/timeline"
)

func Test_EarliestPickup_ProposesTomorrow_WhenACopyIsOnShelf(t *testing.T) {
	title := fixtures.Title("title-a", 2)
	events := []core.LoanEvent{
		fixtures.CheckOut("out-1", "title-a", "member-1", 0, 14),
	}
	now := fixtures.OnDay(3)

	earliest := timeline.EarliestPickup(title, events, nil, fixtures.Settings(14, 2), now)

	assert.Equal(t, fixtures.OnDay(4), earliest)
}

func Test_EarliestPickup_ProposesEarliestDueDate_WhenAllCopiesAreOut(t *testing.T) {
	title := fixtures.Title("title-a", 2)
	events := []core.LoanEvent{
		fixtures.CheckOut("out-1", "title-a", "member-1", 0, 10),
		fixtures.CheckOut("out-2", "title-a", "member-2", 0, 20),
	}
	now := fixtures.OnDay(0)

	earliest := timeline.EarliestPickup(title, events, nil, fixtures.Settings(14, 2), now)

	assert.Equal(t, fixtures.OnDay(10), earliest)
}

func Test_EarliestPickup_AccountsForExistingReservations(t *testing.T) {
	// The reservation claims the copy freeing up on Day 10 and holds it
	// until Day 10 + 14, so the other copy's due date becomes the proposal.
	title := fixtures.Title("title-a", 2)
	events := []core.LoanEvent{
		fixtures.CheckOut("out-1", "title-a", "member-1", 0, 10),
		fixtures.CheckOut("out-2", "title-a", "member-2", 0, 20),
	}
	reservations := []core.Reservation{
		fixtures.Reservation("res-1", "title-a", "member-3", 10),
	}
	now := fixtures.OnDay(0)

	earliest := timeline.EarliestPickup(title, events, reservations, fixtures.Settings(14, 2), now)

	assert.Equal(t, fixtures.OnDay(20), earliest)
}

func Test_EarliestPickup_SkipsReservationsNoCopyCanServe(t *testing.T) {
	// The reservation wants a copy on Day 5 but the first copy frees up on
	// Day 10, so it is skipped and does not advance any copy.
	title := fixtures.Title("title-a", 1)
	events := []core.LoanEvent{
		fixtures.CheckOut("out-1", "title-a", "member-1", 0, 10),
	}
	reservations := []core.Reservation{
		fixtures.Reservation("res-1", "title-a", "member-2", 5),
	}
	now := fixtures.OnDay(0)

	earliest := timeline.EarliestPickup(title, events, reservations, fixtures.Settings(14, 2), now)

	assert.Equal(t, fixtures.OnDay(10), earliest)
}

func Test_EarliestPickup_DerivesDueDateFromLoanPeriod_WhenEventHasNone(t *testing.T) {
	title := fixtures.Title("title-a", 1)
	events := []core.LoanEvent{
		fixtures.CheckOutWithoutDueDate("out-1", "title-a", "member-1", 2),
	}
	now := fixtures.OnDay(0)

	earliest := timeline.EarliestPickup(title, events, nil, fixtures.Settings(14, 2), now)

	assert.Equal(t, fixtures.OnDay(16), earliest)
}

func Test_LatestPickup_BoundedByTheReservationWaitingForTheSameCopy(t *testing.T) {
	title := fixtures.Title("title-a", 1)
	edited := fixtures.Reservation("res-1", "title-a", "member-1", 5)
	reservations := []core.Reservation{
		edited,
		fixtures.Reservation("res-2", "title-a", "member-2", 30),
	}
	now := fixtures.OnDay(0)

	latest := timeline.LatestPickup(edited, reservations, title, fixtures.Settings(14, 2), now)

	assert.Equal(t, fixtures.OnDay(16), latest)
}

func Test_LatestPickup_FallsBackToTheEditHorizon_WithoutABlocker(t *testing.T) {
	title := fixtures.Title("title-a", 2)
	edited := fixtures.Reservation("res-1", "title-a", "member-1", 5)
	reservations := []core.Reservation{
		edited,
		fixtures.Reservation("res-2", "title-a", "member-2", 30),
	}
	now := fixtures.OnDay(0)

	latest := timeline.LatestPickup(edited, reservations, title, fixtures.Settings(14, 2), now)

	assert.Equal(t, fixtures.OnDay(90), latest)
}
