package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func students(exam string, n int) []Student {
	out := make([]Student, n)
	for i := range out {
		out[i] = Student{ID: fmt.Sprintf("%s-%d", exam, i+1), Exam: exam}
	}
	return out
}

func TestAllocateTwoExamsOneSmallRoom(t *testing.T) {
	// 2x2 grid, two exams with two students each: only the diagonal
	// placements keep same-exam students apart.
	roster := append(students("A", 2), students("B", 2)...)
	rooms := []RoomSpec{{ID: "R1", Rows: 2, Cols: 2}}

	res, err := Allocate(roster, rooms, nil, DefaultPolicy)
	require.NoError(t, err)
	require.Len(t, res.Assignment, 4)
	assert.Empty(t, res.Unassigned)
	assert.Nil(t, Check(res.Assignment, roster, rooms, nil))

	a1, a2 := res.Assignment["A-1"], res.Assignment["A-2"]
	dist := abs(a1.Row-a2.Row) + abs(a1.Col-a2.Col)
	assert.Equal(t, 2, dist, "same-exam pair must sit diagonally in a 2x2 room")
}

func TestAllocateFourExamsFourRooms(t *testing.T) {
	var roster []Student
	for _, exam := range []string{"E1", "E2", "E3", "E4"} {
		roster = append(roster, students(exam, 4)...)
	}
	rooms := []RoomSpec{
		{ID: "R1", Rows: 2, Cols: 4}, // 8
		{ID: "R2", Rows: 2, Cols: 3}, // 6
		{ID: "R3", Rows: 2, Cols: 5}, // 10
		{ID: "R4", Rows: 2, Cols: 3}, // 6
	}

	res, err := Allocate(roster, rooms, nil, DefaultPolicy)
	require.NoError(t, err)
	assert.Len(t, res.Assignment, 16)
	assert.Empty(t, res.Unassigned)
	assert.LessOrEqual(t, res.RoomsUsed, 4)
	assert.Nil(t, Check(res.Assignment, roster, rooms, nil))
}

func TestAllocateRestrictedExamOverflow(t *testing.T) {
	roster := students("E1", 3)
	rooms := []RoomSpec{
		{ID: "R1", Rows: 1, Cols: 2},
		{ID: "R2", Rows: 3, Cols: 3},
	}
	restrictions := Restrictions{"E1": {"R1"}}

	t.Run("fail fast reports the shortfall", func(t *testing.T) {
		_, err := Allocate(roster, rooms, restrictions, DefaultPolicy)
		var capErr *CapacityError
		require.ErrorAs(t, err, &capErr)
		assert.Equal(t, "E1", capErr.Exam)
		assert.Equal(t, 3, capErr.Students)
		assert.Equal(t, 2, capErr.Seats)
	})

	t.Run("continue partial never drops a student silently", func(t *testing.T) {
		policy := DefaultPolicy
		policy.OnUnassigned = ContinuePartial
		res, err := Allocate(roster, rooms, restrictions, policy)
		require.NoError(t, err)
		assert.Equal(t, 3, len(res.Assignment)+len(res.Unassigned))
		for _, seat := range res.Assignment {
			assert.Equal(t, "R1", seat.Room)
		}
		assert.Nil(t, Check(res.Assignment, roster, rooms, restrictions))
	})
}

func TestAllocateExactCapacitySameExam(t *testing.T) {
	// 3x2 room with alternate rows skipped leaves rows 0 and 2: four
	// seats, four same-exam students. Every row pairs adjacent seats, so
	// a full valid seating cannot exist.
	roster := students("ONLY", 4)
	rooms := []RoomSpec{{ID: "R1", Rows: 3, Cols: 2, SkipAlternateRows: true}}

	t.Run("fail fast surfaces placement failure", func(t *testing.T) {
		_, err := Allocate(roster, rooms, nil, DefaultPolicy)
		var placeErr *PlacementError
		require.ErrorAs(t, err, &placeErr)
		assert.Equal(t, "ONLY", placeErr.Exam)
	})

	t.Run("continue partial seats what it can", func(t *testing.T) {
		policy := DefaultPolicy
		policy.OnUnassigned = ContinuePartial
		res, err := Allocate(roster, rooms, nil, policy)
		require.NoError(t, err)
		assert.NotEmpty(t, res.Unassigned)
		assert.Equal(t, 4, len(res.Assignment)+len(res.Unassigned))
		assert.Nil(t, Check(res.Assignment, roster, rooms, nil))
	})
}

func TestAllocateInsufficientTotalCapacity(t *testing.T) {
	roster := students("E1", 10)
	rooms := []RoomSpec{{ID: "R1", Rows: 2, Cols: 2}}

	_, err := Allocate(roster, rooms, nil, DefaultPolicy)
	var capErr *CapacityError
	require.ErrorAs(t, err, &capErr)
	assert.Empty(t, capErr.Exam)
	assert.Equal(t, 10, capErr.Students)
	assert.Equal(t, 4, capErr.Seats)
}

func TestAllocateNoEligibleRoom(t *testing.T) {
	roster := append(students("E1", 2), students("E2", 2)...)
	rooms := []RoomSpec{{ID: "R1", Rows: 3, Cols: 3}}
	restrictions := Restrictions{"E2": {}}

	t.Run("fail fast aborts the run", func(t *testing.T) {
		_, err := Allocate(roster, rooms, restrictions, DefaultPolicy)
		var eligErr *EligibilityError
		require.ErrorAs(t, err, &eligErr)
		assert.Equal(t, "E2", eligErr.Exam)
	})

	t.Run("continue partial returns them unassigned", func(t *testing.T) {
		policy := DefaultPolicy
		policy.OnUnassigned = ContinuePartial
		res, err := Allocate(roster, rooms, restrictions, policy)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"E2-1", "E2-2"}, res.Unassigned)
		assert.Len(t, res.Assignment, 2)
	})
}

func TestAllocateRejectsBadInput(t *testing.T) {
	t.Run("invalid room spec", func(t *testing.T) {
		_, err := Allocate(students("E1", 1), []RoomSpec{{ID: "R1"}}, nil, DefaultPolicy)
		assert.Error(t, err)
	})

	t.Run("duplicate room id", func(t *testing.T) {
		rooms := []RoomSpec{{ID: "R1", Rows: 2, Cols: 2}, {ID: "R1", Rows: 3, Cols: 3}}
		_, err := Allocate(students("E1", 1), rooms, nil, DefaultPolicy)
		assert.ErrorContains(t, err, "duplicate room id")
	})

	t.Run("duplicate student id", func(t *testing.T) {
		roster := []Student{{ID: "s1", Exam: "A"}, {ID: "s1", Exam: "B"}}
		_, err := Allocate(roster, []RoomSpec{{ID: "R1", Rows: 3, Cols: 3}}, nil, DefaultPolicy)
		assert.ErrorContains(t, err, "duplicate student id")
	})
}

func TestAllocateDeterministic(t *testing.T) {
	var roster []Student
	for _, exam := range []string{"E1", "E2", "E3"} {
		roster = append(roster, students(exam, 5)...)
	}
	rooms := []RoomSpec{
		{ID: "R1", Rows: 3, Cols: 4},
		{ID: "R2", Rows: 4, Cols: 4},
	}

	first, err := Allocate(roster, rooms, nil, DefaultPolicy)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := Allocate(roster, rooms, nil, DefaultPolicy)
		require.NoError(t, err)
		assert.Equal(t, first.Assignment, again.Assignment)
	}
}

func TestAllocateHonorsRestrictions(t *testing.T) {
	roster := append(students("MATH", 3), students("PHYS", 3)...)
	rooms := []RoomSpec{
		{ID: "R1", Rows: 3, Cols: 3},
		{ID: "R2", Rows: 3, Cols: 3},
	}
	restrictions := Restrictions{"MATH": {"R2"}}

	res, err := Allocate(roster, rooms, restrictions, DefaultPolicy)
	require.NoError(t, err)
	for _, s := range roster {
		seat, ok := res.Assignment[s.ID]
		require.True(t, ok)
		if s.Exam == "MATH" {
			assert.Equal(t, "R2", seat.Room)
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
