package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebalanceBreaksHomogeneousRoom(t *testing.T) {
	// Room A starts with four students who all sit exam X, room B holds
	// exam Y with plenty of slack. After rebalancing room A must hold at
	// least one non-X occupant and the assignment must stay valid.
	roster := append(students("X", 4), students("Y", 2)...)
	rooms := []RoomSpec{
		{ID: "A", Rows: 3, Cols: 3},
		{ID: "B", Rows: 3, Cols: 3},
	}
	a := Assignment{
		"X-1": {Room: "A", Row: 0, Col: 0},
		"X-2": {Room: "A", Row: 0, Col: 2},
		"X-3": {Room: "A", Row: 2, Col: 0},
		"X-4": {Room: "A", Row: 2, Col: 2},
		"Y-1": {Room: "B", Row: 0, Col: 0},
		"Y-2": {Room: "B", Row: 0, Col: 2},
	}
	require.Nil(t, Check(a, roster, rooms, nil))

	rebalance(a, roster, rooms, nil, DefaultPolicy)

	assert.Nil(t, Check(a, roster, rooms, nil))
	examOf := examIndex(roster)
	mixed := false
	for id, seat := range a {
		if seat.Room == "A" && examOf[id] != "X" {
			mixed = true
		}
	}
	assert.True(t, mixed, "room A should no longer be single-exam")
	assert.Len(t, a, 6, "rebalancing must not add or drop students")
}

func TestRebalanceLeavesMixedRoomsAlone(t *testing.T) {
	roster := append(students("X", 2), students("Y", 1)...)
	rooms := []RoomSpec{{ID: "A", Rows: 3, Cols: 3}}
	a := Assignment{
		"X-1": {Room: "A", Row: 0, Col: 0},
		"X-2": {Room: "A", Row: 2, Col: 2},
		"Y-1": {Room: "A", Row: 0, Col: 2},
	}
	before := Assignment{}
	for k, v := range a {
		before[k] = v
	}

	rebalance(a, roster, rooms, nil, DefaultPolicy)
	assert.Equal(t, before, a)
}

func TestRebalanceRespectsRestrictions(t *testing.T) {
	// Y students are pinned to room B, so no swap into room A is valid
	// and the homogeneous room stays as it is.
	roster := append(students("X", 2), students("Y", 2)...)
	rooms := []RoomSpec{
		{ID: "A", Rows: 2, Cols: 3},
		{ID: "B", Rows: 2, Cols: 3},
	}
	restrictions := Restrictions{"Y": {"B"}}
	a := Assignment{
		"X-1": {Room: "A", Row: 0, Col: 0},
		"X-2": {Room: "A", Row: 0, Col: 2},
		"Y-1": {Room: "B", Row: 0, Col: 0},
		"Y-2": {Room: "B", Row: 0, Col: 2},
	}
	require.Nil(t, Check(a, roster, rooms, restrictions))

	rebalance(a, roster, rooms, restrictions, DefaultPolicy)

	assert.Nil(t, Check(a, roster, rooms, restrictions))
	for _, id := range []string{"Y-1", "Y-2"} {
		assert.Equal(t, "B", a[id].Room)
	}
}

func TestHomogeneousRooms(t *testing.T) {
	examOf := map[string]string{"x1": "X", "x2": "X", "y1": "Y", "z1": "Z"}
	a := Assignment{
		"x1": {Room: "A", Row: 0, Col: 0},
		"x2": {Room: "A", Row: 0, Col: 2},
		"y1": {Room: "B", Row: 0, Col: 0}, // single occupant, not counted
		"z1": {Room: "C", Row: 0, Col: 0},
	}
	assert.Equal(t, []string{"A"}, homogeneousRooms(a, examOf))
}
