package actions_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jsoniter "github.com/json-iterator/go"

	"github.com/shelfwise/circulation/core"
	"github.com/shelfwise/circulation/remotestore"
	"github.com/shelfwise/circulation/testutil/fixtures"
)

func Test_Checkout_RejectsAnUnknownTitle(t *testing.T) {
	h := newHarness()
	snapshot := h.snapshot(nil, []core.Member{fixtures.Member("member-1")}, nil, nil)

	result, err := h.handler.Checkout(context.Background(), snapshot, "title-a", "member-1")

	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Equal(t, "title is not in the catalog", result.Reason)
}

func Test_Checkout_RejectsAnUnregisteredMember(t *testing.T) {
	h := newHarness()
	snapshot := h.snapshot([]core.Title{fixtures.Title("title-a", 1)}, nil, nil, nil)

	result, err := h.handler.Checkout(context.Background(), snapshot, "title-a", "member-1")

	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Equal(t, "member is not registered", result.Reason)
}

func Test_Checkout_Rejects_WhenNoCopyIsOnTheShelf(t *testing.T) {
	h := newHarness()
	snapshot := h.snapshot(
		[]core.Title{fixtures.Title("title-a", 1)},
		[]core.Member{fixtures.Member("member-1"), fixtures.Member("member-2")},
		[]core.LoanEvent{fixtures.CheckOut("out-1", "title-a", "member-2", 0, 14)},
		nil,
	)

	result, err := h.handler.Checkout(context.Background(), snapshot, "title-a", "member-1")

	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Equal(t, "no copy is on the shelf", result.Reason)
	assert.Empty(t, h.remote.WriteCalls())
}

func Test_Checkout_SetsTheDueDateFromTheLoanPeriod(t *testing.T) {
	h := newHarness()
	snapshot := h.snapshot(
		[]core.Title{fixtures.Title("title-a", 1)},
		[]core.Member{fixtures.Member("member-1")},
		nil, nil,
	)

	result, err := h.handler.Checkout(context.Background(), snapshot, "title-a", "member-1")

	require.NoError(t, err)
	require.True(t, result.OK)

	calls := h.remote.WriteCalls()
	require.Len(t, calls, 1)

	var event core.LoanEvent
	require.NoError(t, jsoniter.ConfigFastest.Unmarshal(calls[0].Record, &event))
	assert.Equal(t, core.CheckOut, event.Kind)
	assert.Equal(t, "title-a", event.TitleID)
	assert.Equal(t, "member-1", event.MemberID)
	assert.True(t, event.DueDate.Equal(fixtures.OnDay(14)))
	assert.NotEmpty(t, event.ID)
}

func Test_Checkout_FulfillsTheMembersActiveReservationInTheSameAction(t *testing.T) {
	h := newHarness()
	snapshot := h.snapshot(
		[]core.Title{fixtures.Title("title-a", 1)},
		[]core.Member{fixtures.Member("member-1")},
		nil,
		[]core.Reservation{fixtures.Reservation("res-1", "title-a", "member-1", 0)},
	)

	result, err := h.handler.Checkout(context.Background(), snapshot, "title-a", "member-1")

	require.NoError(t, err)
	assert.True(t, result.OK)
	assert.Equal(t, "reservation res-1 fulfilled", result.Message)

	calls := h.remote.WriteCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, remotestore.EntityLoanEvents, calls[0].Entity)
	assert.Equal(t, "update", calls[1].Kind)
	assert.Equal(t, remotestore.EntityReservations, calls[1].Entity)
	assert.Equal(t, "res-1", calls[1].ID)

	var updated core.Reservation
	require.NoError(t, jsoniter.ConfigFastest.Unmarshal(calls[1].Record, &updated))
	assert.Equal(t, core.ReservationFulfilled, updated.Status)
}

func Test_Checkout_LeavesOtherMembersReservationsUntouched(t *testing.T) {
	h := newHarness()
	snapshot := h.snapshot(
		[]core.Title{fixtures.Title("title-a", 2)},
		[]core.Member{fixtures.Member("member-1")},
		nil,
		[]core.Reservation{fixtures.Reservation("res-1", "title-a", "member-2", 5)},
	)

	result, err := h.handler.Checkout(context.Background(), snapshot, "title-a", "member-1")

	require.NoError(t, err)
	assert.True(t, result.OK)
	assert.Empty(t, result.Message)
	assert.Len(t, h.remote.WriteCalls(), 1)
}
