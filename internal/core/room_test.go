package core

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignFillsLowestFreeSeatFirst(t *testing.T) {
	room := NewRoom("123456", 3)

	for want := 0; want < 3; want++ {
		seat, err := room.Assign(fmt.Sprintf("conn-%d", want), fmt.Sprintf("p%d", want), nil)
		require.NoError(t, err)
		assert.Equal(t, want, seat)
	}

	_, err := room.Assign("conn-3", "p3", nil)
	assert.ErrorIs(t, err, ErrRoomFull)
}

func TestAssignReusesVacatedSeat(t *testing.T) {
	room := NewRoom("123456", 3)
	for i := 0; i < 3; i++ {
		_, err := room.Assign(fmt.Sprintf("conn-%d", i), "x", nil)
		require.NoError(t, err)
	}

	_, _, ok := room.Vacate(1)
	require.True(t, ok)

	seat, err := room.Assign("conn-new", "y", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, seat)
}

func TestMarkReadyStartsOnlyWhenFullAndAllReady(t *testing.T) {
	room := NewRoom("123456", 2)

	seatA, err := room.Assign("a", "A", nil)
	require.NoError(t, err)

	// all current occupants ready, but an empty seat blocks start
	assert.False(t, room.MarkReady(seatA))

	seatB, err := room.Assign("b", "B", nil)
	require.NoError(t, err)

	assert.False(t, room.MarkReady(seatA), "only one of two seats ready")
	assert.True(t, room.MarkReady(seatB))
}

func TestMarkReadyIgnoresEmptyAndOutOfRangeSeats(t *testing.T) {
	room := NewRoom("123456", 2)
	assert.False(t, room.MarkReady(0))
	assert.False(t, room.MarkReady(-1))
	assert.False(t, room.MarkReady(5))
}

func TestVacateReturnsNickAndEmptyState(t *testing.T) {
	room := NewRoom("123456", 2)
	seat, err := room.Assign("a", "Alice", nil)
	require.NoError(t, err)

	nick, empty, ok := room.Vacate(seat)
	assert.True(t, ok)
	assert.Equal(t, "Alice", nick)
	assert.True(t, empty)

	// vacating an already-empty seat is a no-op
	_, _, ok = room.Vacate(seat)
	assert.False(t, ok)
}

func TestSnapshotReflectsCurrentSeats(t *testing.T) {
	room := NewRoom("123456", 3)
	seat, err := room.Assign("a", "Alice", nil)
	require.NoError(t, err)
	room.MarkReady(seat)

	players := room.Snapshot()
	require.Len(t, players, 3)
	require.NotNil(t, players[0])
	assert.Equal(t, 0, players[0].Seat)
	assert.Equal(t, "Alice", players[0].Nick)
	assert.True(t, players[0].Ready)
	assert.Nil(t, players[1])
	assert.Nil(t, players[2])

	// snapshot is recomputed, not cached
	room.Vacate(seat)
	players = room.Snapshot()
	assert.Nil(t, players[0])
}

func TestClosedRoomRejectsAssignment(t *testing.T) {
	room := NewRoom("123456", 2)
	room.close()

	_, err := room.Assign("a", "A", nil)
	assert.ErrorIs(t, err, ErrRoomClosed)
}
