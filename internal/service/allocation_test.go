package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/majidonaisy/seating-algo/internal/engine"
	"github.com/majidonaisy/seating-algo/internal/repository"
)

func TestRosterFromRows(t *testing.T) {
	rows := []repository.Student{
		{ID: 1, Code: "S-100", FullName: "Ada", ExamCode: "MATH"},
		{ID: 2, Code: "S-101", FullName: "Berk", ExamCode: "PHYS"},
	}
	roster := RosterFromRows(rows)
	assert.Equal(t, []engine.Student{
		{ID: "S-100", Exam: "MATH"},
		{ID: "S-101", Exam: "PHYS"},
	}, roster)
}

func TestRoomSpecsFromRows(t *testing.T) {
	rows := []repository.Room{
		{ID: 7, Code: "B-204", SeatRows: 6, SeatCols: 8, SkipAltRows: true, ColStride: 3},
	}
	specs := RoomSpecsFromRows(rows)
	assert.Equal(t, []engine.RoomSpec{{
		ID:                "B-204",
		Rows:              6,
		Cols:              8,
		SkipAlternateRows: true,
		ColStride:         3,
	}}, specs)
}

func TestRestrictionsFromCodes(t *testing.T) {
	assert.Nil(t, RestrictionsFromCodes(nil))
	r := RestrictionsFromCodes(map[string][]string{"MATH": {"B-204"}})
	assert.True(t, r.Allows("MATH", "B-204"))
	assert.False(t, r.Allows("MATH", "C-101"))
	assert.True(t, r.Allows("PHYS", "C-101"))
}

func TestAssignmentRows(t *testing.T) {
	students := []repository.Student{
		{ID: 11, Code: "S-100", ExamCode: "MATH"},
		{ID: 12, Code: "S-101", ExamCode: "PHYS"},
	}
	rooms := []repository.Room{{ID: 3, Code: "B-204"}}
	a := engine.Assignment{
		"S-101": {Room: "B-204", Row: 0, Col: 2},
		"S-100": {Room: "B-204", Row: 0, Col: 0},
	}

	rows := assignmentRows(a, students, rooms)
	assert.Equal(t, []repository.AssignmentRow{
		{StudentID: 11, RoomID: 3, SeatRow: 0, SeatCol: 0},
		{StudentID: 12, RoomID: 3, SeatRow: 0, SeatCol: 2},
	}, rows)
}

func TestPolicyName(t *testing.T) {
	assert.Equal(t, "fail_fast", policyName(engine.FailFast))
	assert.Equal(t, "continue_partial", policyName(engine.ContinuePartial))
}

func TestUsedRoomCodes(t *testing.T) {
	a := engine.Assignment{
		"s1": {Room: "B"},
		"s2": {Room: "A"},
		"s3": {Room: "B"},
	}
	assert.Equal(t, []string{"A", "B"}, usedRoomCodes(a))
}
