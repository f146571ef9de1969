package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImproveNeverRegresses(t *testing.T) {
	roster := append(students("A", 3), students("B", 3)...)
	rooms := []RoomSpec{
		{ID: "R1", Rows: 3, Cols: 3},
		{ID: "R2", Rows: 3, Cols: 3},
	}
	a := Assignment{
		"A-1": {Room: "R1", Row: 0, Col: 0},
		"A-2": {Room: "R1", Row: 0, Col: 2},
		"A-3": {Room: "R1", Row: 2, Col: 0},
		"B-1": {Room: "R2", Row: 0, Col: 0},
		"B-2": {Room: "R2", Row: 0, Col: 2},
		"B-3": {Room: "R2", Row: 2, Col: 0},
	}
	require.Nil(t, Check(a, roster, rooms, nil))

	improve(a, roster, rooms, nil, DefaultPolicy)

	assert.Nil(t, Check(a, roster, rooms, nil))
	assert.Len(t, a, 6)
}

func TestImproveSwapsOnlyDifferentExams(t *testing.T) {
	roster := append(students("A", 2), students("B", 1)...)
	rooms := []RoomSpec{{ID: "R1", Rows: 3, Cols: 3}}
	a := Assignment{
		"A-1": {Room: "R1", Row: 0, Col: 0},
		"A-2": {Room: "R1", Row: 2, Col: 2},
		"B-1": {Room: "R1", Row: 0, Col: 2},
	}
	seatsBefore := map[Seat]string{}
	for id, seat := range a {
		seatsBefore[seat] = examIndex(roster)[id]
	}

	improve(a, roster, rooms, nil, DefaultPolicy)

	require.Nil(t, Check(a, roster, rooms, nil))
	// Swaps may shuffle who sits where, but the set of occupied seats is
	// fixed and same-exam seats never trade with each other.
	for id, seat := range a {
		_, occupiedBefore := seatsBefore[seat]
		assert.True(t, occupiedBefore, "improve must not move students to new seats, only swap")
		_ = id
	}
}

func TestImproveTerminates(t *testing.T) {
	var roster []Student
	for _, exam := range []string{"A", "B", "C"} {
		roster = append(roster, students(exam, 4)...)
	}
	rooms := []RoomSpec{{ID: "R1", Rows: 5, Cols: 5}, {ID: "R2", Rows: 5, Cols: 5}}
	res, err := Allocate(roster, rooms, nil, DefaultPolicy)
	require.NoError(t, err)

	policy := DefaultPolicy
	policy.MaxImproveIters = 10_000
	improve(res.Assignment, roster, rooms, nil, policy)
	assert.Nil(t, Check(res.Assignment, roster, rooms, nil))
}
