package actions_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfwise/circulation/core"
	"github.com/shelfwise/circulation/remotestore"
	"github.com/shelfwise/circulation/testutil/fixtures"
)

func Test_AddTitle_InsertsTheTitle(t *testing.T) {
	h := newHarness()

	result, err := h.handler.AddTitle(context.Background(), fixtures.Title("title-a", 3))

	require.NoError(t, err)
	assert.True(t, result.OK)

	calls := h.remote.WriteCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "insert", calls[0].Kind)
	assert.Equal(t, remotestore.EntityTitles, calls[0].Entity)
}

func Test_AddTitle_RejectsATitleWithoutCopies(t *testing.T) {
	h := newHarness()

	result, err := h.handler.AddTitle(context.Background(), fixtures.Title("title-a", 0))

	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Equal(t, "a title needs at least one copy", result.Reason)
}

func Test_RemoveTitle_DeletesATitleWithNothingCheckedOut(t *testing.T) {
	h := newHarness()
	snapshot := h.snapshot(
		[]core.Title{fixtures.Title("title-a", 1)},
		nil,
		[]core.LoanEvent{
			fixtures.CheckOut("out-1", "title-a", "member-1", 0, 14),
			fixtures.CheckIn("in-1", "title-a", "member-1", 5),
		},
		nil,
	)

	result, err := h.handler.RemoveTitle(context.Background(), snapshot, "title-a")

	require.NoError(t, err)
	assert.True(t, result.OK)

	calls := h.remote.WriteCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "delete", calls[0].Kind)
	assert.Equal(t, remotestore.EntityTitles, calls[0].Entity)
	assert.Equal(t, "title-a", calls[0].ID)
}

func Test_RemoveTitle_Rejects_WhileCopiesAreCheckedOut(t *testing.T) {
	h := newHarness()
	snapshot := h.snapshot(
		[]core.Title{fixtures.Title("title-a", 2)},
		nil,
		[]core.LoanEvent{fixtures.CheckOut("out-1", "title-a", "member-1", 0, 14)},
		nil,
	)

	result, err := h.handler.RemoveTitle(context.Background(), snapshot, "title-a")

	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Equal(t, "title has copies checked out", result.Reason)
	assert.Empty(t, h.remote.WriteCalls())
}

func Test_RegisterMember_InsertsTheMember(t *testing.T) {
	h := newHarness()

	result, err := h.handler.RegisterMember(context.Background(), fixtures.Member("member-1"))

	require.NoError(t, err)
	assert.True(t, result.OK)

	calls := h.remote.WriteCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, remotestore.EntityMembers, calls[0].Entity)
}

func Test_RemoveMember_Rejects_WhileTheMemberHoldsAnOpenLoan(t *testing.T) {
	h := newHarness()
	snapshot := h.snapshot(
		[]core.Title{fixtures.Title("title-a", 1)},
		[]core.Member{fixtures.Member("member-1")},
		[]core.LoanEvent{fixtures.CheckOut("out-1", "title-a", "member-1", 0, 14)},
		nil,
	)

	result, err := h.handler.RemoveMember(context.Background(), snapshot, "member-1")

	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Equal(t, "member still holds open loans", result.Reason)
}

func Test_RemoveMember_DeletesAMemberWithoutOpenLoans(t *testing.T) {
	h := newHarness()
	snapshot := h.snapshot(
		[]core.Title{fixtures.Title("title-a", 1)},
		[]core.Member{fixtures.Member("member-1")},
		[]core.LoanEvent{
			fixtures.CheckOut("out-1", "title-a", "member-1", 0, 14),
			fixtures.CheckIn("in-1", "title-a", "member-1", 5),
		},
		nil,
	)

	result, err := h.handler.RemoveMember(context.Background(), snapshot, "member-1")

	require.NoError(t, err)
	assert.True(t, result.OK)

	calls := h.remote.WriteCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "delete", calls[0].Kind)
	assert.Equal(t, "member-1", calls[0].ID)
}
