package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	roster := []Student{
		{ID: "s1", Exam: "A"},
		{ID: "s2", Exam: "A"},
		{ID: "s3", Exam: "B"},
	}
	rooms := []RoomSpec{{ID: "R1", Rows: 3, Cols: 3}, {ID: "R2", Rows: 2, Cols: 2}}

	t.Run("valid assignment passes", func(t *testing.T) {
		a := Assignment{
			"s1": {Room: "R1", Row: 0, Col: 0},
			"s2": {Room: "R1", Row: 1, Col: 1},
			"s3": {Room: "R1", Row: 0, Col: 1},
		}
		assert.Nil(t, Check(a, roster, rooms, nil))
	})

	t.Run("seat collision", func(t *testing.T) {
		a := Assignment{
			"s1": {Room: "R1", Row: 0, Col: 0},
			"s3": {Room: "R1", Row: 0, Col: 0},
		}
		v := Check(a, roster, rooms, nil)
		require.NotNil(t, v)
		assert.Equal(t, SeatCollision, v.Kind)
		assert.Equal(t, "s1", v.StudentA)
		assert.Equal(t, "s3", v.StudentB)
	})

	t.Run("same-exam adjacency", func(t *testing.T) {
		a := Assignment{
			"s1": {Room: "R1", Row: 0, Col: 0},
			"s2": {Room: "R1", Row: 0, Col: 1},
		}
		v := Check(a, roster, rooms, nil)
		require.NotNil(t, v)
		assert.Equal(t, AdjacencyViolation, v.Kind)
	})

	t.Run("diagonal same-exam seats are fine", func(t *testing.T) {
		a := Assignment{
			"s1": {Room: "R1", Row: 0, Col: 0},
			"s2": {Room: "R1", Row: 1, Col: 1},
		}
		assert.Nil(t, Check(a, roster, rooms, nil))
	})

	t.Run("same exam across rooms is fine", func(t *testing.T) {
		a := Assignment{
			"s1": {Room: "R1", Row: 0, Col: 0},
			"s2": {Room: "R2", Row: 0, Col: 0},
		}
		assert.Nil(t, Check(a, roster, rooms, nil))
	})

	t.Run("ineligible room", func(t *testing.T) {
		a := Assignment{"s3": {Room: "R2", Row: 0, Col: 0}}
		v := Check(a, roster, rooms, Restrictions{"B": {"R1"}})
		require.NotNil(t, v)
		assert.Equal(t, IneligibleRoom, v.Kind)
		assert.Equal(t, "s3", v.StudentA)
	})

	t.Run("unknown room", func(t *testing.T) {
		a := Assignment{"s1": {Room: "R9", Row: 0, Col: 0}}
		v := Check(a, roster, rooms, nil)
		require.NotNil(t, v)
		assert.Equal(t, UnknownRoom, v.Kind)
	})

	t.Run("illegal seat", func(t *testing.T) {
		skipped := []RoomSpec{{ID: "R1", Rows: 4, Cols: 4, SkipAlternateRows: true}}
		a := Assignment{"s1": {Room: "R1", Row: 1, Col: 0}}
		v := Check(a, roster, skipped, nil)
		require.NotNil(t, v)
		assert.Equal(t, IllegalSeat, v.Kind)
	})

	t.Run("out of bounds seat is illegal", func(t *testing.T) {
		a := Assignment{"s1": {Room: "R2", Row: 5, Col: 0}}
		v := Check(a, roster, rooms, nil)
		require.NotNil(t, v)
		assert.Equal(t, IllegalSeat, v.Kind)
	})

	t.Run("idempotent verdicts", func(t *testing.T) {
		a := Assignment{
			"s1": {Room: "R1", Row: 0, Col: 0},
			"s2": {Room: "R1", Row: 0, Col: 1},
		}
		first := Check(a, roster, rooms, nil)
		second := Check(a, roster, rooms, nil)
		assert.Equal(t, first, second)

		valid := Assignment{"s1": {Room: "R1", Row: 0, Col: 0}}
		assert.Nil(t, Check(valid, roster, rooms, nil))
		assert.Nil(t, Check(valid, roster, rooms, nil))
	})

	t.Run("empty assignment is valid", func(t *testing.T) {
		assert.Nil(t, Check(Assignment{}, roster, rooms, nil))
	})
}
