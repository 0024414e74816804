package actions_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jsoniter "github.com/json-iterator/go"

	"github.com/shelfwise/circulation/core"
	"github.com/shelfwise/circulation/testutil/fixtures"
)

func Test_EditPickupDate_MovesTheReservation(t *testing.T) {
	h := newHarness()
	snapshot := h.snapshot(
		[]core.Title{fixtures.Title("title-a", 1)},
		[]core.Member{fixtures.Member("member-1")},
		nil,
		[]core.Reservation{fixtures.Reservation("res-1", "title-a", "member-1", 5)},
	)

	result, err := h.handler.EditPickupDate(context.Background(), snapshot, "res-1", fixtures.OnDay(20))

	require.NoError(t, err)
	assert.True(t, result.OK)

	calls := h.remote.WriteCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "update", calls[0].Kind)
	assert.Equal(t, "res-1", calls[0].ID)

	var moved core.Reservation
	require.NoError(t, jsoniter.ConfigFastest.Unmarshal(calls[0].Record, &moved))
	assert.True(t, moved.PickupDate.Equal(fixtures.OnDay(20)))
	assert.Equal(t, core.ReservationActive, moved.Status)
}

func Test_EditPickupDate_Rejects_WhenTheMoveWouldStarveTheNextReservation(t *testing.T) {
	// One copy, loan period 14: moving res-1 past Day 16 would leave the
	// copy still out when res-2 wants it on Day 30.
	h := newHarness()
	snapshot := h.snapshot(
		[]core.Title{fixtures.Title("title-a", 1)},
		[]core.Member{fixtures.Member("member-1"), fixtures.Member("member-2")},
		nil,
		[]core.Reservation{
			fixtures.Reservation("res-1", "title-a", "member-1", 5),
			fixtures.Reservation("res-2", "title-a", "member-2", 30),
		},
	)

	result, err := h.handler.EditPickupDate(context.Background(), snapshot, "res-1", fixtures.OnDay(20))

	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Equal(t, "latest feasible pickup date is "+fixtures.OnDay(16).Format("2006-01-02"), result.Reason)
	assert.Empty(t, h.remote.WriteCalls())
}

func Test_EditPickupDate_DoesNotConflictWithTheReservationItself(t *testing.T) {
	// Moving by a single day keeps the reservation well inside the spacing
	// distance of its own old date, which must not count as a conflict.
	h := newHarness()
	snapshot := h.snapshot(
		[]core.Title{fixtures.Title("title-a", 1)},
		[]core.Member{fixtures.Member("member-1")},
		nil,
		[]core.Reservation{fixtures.Reservation("res-1", "title-a", "member-1", 5)},
	)

	result, err := h.handler.EditPickupDate(context.Background(), snapshot, "res-1", fixtures.OnDay(6))

	require.NoError(t, err)
	assert.True(t, result.OK)
}

func Test_EditPickupDate_AppliesTheSpacingRuleAgainstOtherReservations(t *testing.T) {
	h := newHarness()
	snapshot := h.snapshot(
		[]core.Title{fixtures.Title("title-a", 1), fixtures.Title("title-b", 1)},
		[]core.Member{fixtures.Member("member-1")},
		nil,
		[]core.Reservation{
			fixtures.Reservation("res-1", "title-a", "member-1", 5),
			fixtures.Reservation("res-2", "title-b", "member-1", 40),
		},
	)

	result, err := h.handler.EditPickupDate(context.Background(), snapshot, "res-1", fixtures.OnDay(30))

	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Contains(t, result.Reason, "at least 15 days apart")
}

func Test_EditPickupDate_RejectsAReservationThatIsNotActive(t *testing.T) {
	h := newHarness()
	snapshot := h.snapshot(
		[]core.Title{fixtures.Title("title-a", 1)},
		[]core.Member{fixtures.Member("member-1")},
		nil,
		[]core.Reservation{fixtures.ReservationWithStatus("res-1", "title-a", "member-1", 5, core.ReservationExpired)},
	)

	result, err := h.handler.EditPickupDate(context.Background(), snapshot, "res-1", fixtures.OnDay(10))

	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Equal(t, "reservation is not active", result.Reason)
}
