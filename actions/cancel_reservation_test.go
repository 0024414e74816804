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

func Test_CancelReservation_MovesAnActiveReservationIntoATerminalState(t *testing.T) {
	h := newHarness()
	snapshot := h.snapshot(
		[]core.Title{fixtures.Title("title-a", 1)},
		[]core.Member{fixtures.Member("member-1")},
		nil,
		[]core.Reservation{fixtures.Reservation("res-1", "title-a", "member-1", 10)},
	)

	result, err := h.handler.CancelReservation(context.Background(), snapshot, "res-1", core.ReservationCancelledByMember)

	require.NoError(t, err)
	assert.True(t, result.OK)

	calls := h.remote.WriteCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "update", calls[0].Kind)
	assert.Equal(t, remotestore.EntityReservations, calls[0].Entity)
	assert.Equal(t, "res-1", calls[0].ID)

	var updated core.Reservation
	require.NoError(t, jsoniter.ConfigFastest.Unmarshal(calls[0].Record, &updated))
	assert.Equal(t, core.ReservationCancelledByMember, updated.Status)
}

func Test_CancelReservation_RejectsAnUnknownReservation(t *testing.T) {
	h := newHarness()
	snapshot := h.snapshot(nil, nil, nil, nil)

	result, err := h.handler.CancelReservation(context.Background(), snapshot, "res-x", core.ReservationCancelled)

	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Equal(t, "reservation does not exist", result.Reason)
}

func Test_CancelReservation_RejectsAReservationAlreadyInATerminalState(t *testing.T) {
	h := newHarness()
	snapshot := h.snapshot(
		nil, nil, nil,
		[]core.Reservation{fixtures.ReservationWithStatus("res-1", "title-a", "member-1", 10, core.ReservationFulfilled)},
	)

	result, err := h.handler.CancelReservation(context.Background(), snapshot, "res-1", core.ReservationCancelled)

	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Equal(t, "reservation is not active", result.Reason)
}

func Test_CancelReservation_RejectsANonTerminalTargetStatus(t *testing.T) {
	h := newHarness()
	snapshot := h.snapshot(
		nil, nil, nil,
		[]core.Reservation{fixtures.Reservation("res-1", "title-a", "member-1", 10)},
	)

	result, err := h.handler.CancelReservation(context.Background(), snapshot, "res-1", core.ReservationActive)

	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Equal(t, "status is not a cancellation outcome", result.Reason)
	assert.Empty(t, h.remote.WriteCalls())
}
