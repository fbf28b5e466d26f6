package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRoomIssuesUniqueCodes(t *testing.T) {
	reg, err := NewRegistry(4)
	require.NoError(t, err)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		room, err := reg.CreateRoom()
		require.NoError(t, err)
		assert.Len(t, room.Code, 6)
		assert.False(t, seen[room.Code], "code %s issued twice", room.Code)
		seen[room.Code] = true
		assert.Equal(t, 4, room.Capacity())
	}
	assert.Equal(t, 50, reg.Count())
}

func TestGetUnknownCode(t *testing.T) {
	reg, err := NewRegistry(4)
	require.NoError(t, err)

	_, found := reg.Get("000000")
	assert.False(t, found)
}

func TestRemoveIfEmptyOnlyRemovesEmptyRooms(t *testing.T) {
	reg, err := NewRegistry(2)
	require.NoError(t, err)

	room, err := reg.CreateRoom()
	require.NoError(t, err)
	seat, err := room.Assign("a", "A", nil)
	require.NoError(t, err)

	assert.False(t, reg.RemoveIfEmpty(room.Code), "occupied room must stay")
	_, found := reg.Get(room.Code)
	assert.True(t, found)

	room.Vacate(seat)
	assert.True(t, reg.RemoveIfEmpty(room.Code))

	_, found = reg.Get(room.Code)
	assert.False(t, found)
	assert.Equal(t, 0, reg.Count())

	// idempotent on a gone room
	assert.False(t, reg.RemoveIfEmpty(room.Code))
}

func TestRemovedRoomRefusesLateJoins(t *testing.T) {
	reg, err := NewRegistry(2)
	require.NoError(t, err)

	room, err := reg.CreateRoom()
	require.NoError(t, err)
	seat, err := room.Assign("a", "A", nil)
	require.NoError(t, err)
	room.Vacate(seat)
	require.True(t, reg.RemoveIfEmpty(room.Code))

	// a caller still holding the pointer cannot seat anyone
	_, err = room.Assign("b", "B", nil)
	assert.ErrorIs(t, err, ErrRoomClosed)
}
