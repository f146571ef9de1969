package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomSpecValidate(t *testing.T) {
	t.Run("accepts plain grid", func(t *testing.T) {
		assert.NoError(t, RoomSpec{ID: "R1", Rows: 3, Cols: 4}.Validate())
	})

	t.Run("rejects empty id", func(t *testing.T) {
		assert.Error(t, RoomSpec{Rows: 3, Cols: 4}.Validate())
	})

	t.Run("rejects non-positive dimensions", func(t *testing.T) {
		assert.Error(t, RoomSpec{ID: "R1", Rows: 0, Cols: 4}.Validate())
		assert.Error(t, RoomSpec{ID: "R1", Rows: 3, Cols: -1}.Validate())
	})

	t.Run("rejects both skip forms on one axis", func(t *testing.T) {
		assert.Error(t, RoomSpec{ID: "R1", Rows: 4, Cols: 4, SkipAlternateRows: true, RowStride: 2}.Validate())
		assert.Error(t, RoomSpec{ID: "R1", Rows: 4, Cols: 4, SkipAlternateCols: true, ColStride: 3}.Validate())
	})

	t.Run("allows mixed forms on different axes", func(t *testing.T) {
		assert.NoError(t, RoomSpec{ID: "R1", Rows: 4, Cols: 4, SkipAlternateRows: true, ColStride: 3}.Validate())
	})
}

func TestRoomSpecGrid(t *testing.T) {
	t.Run("row-major order", func(t *testing.T) {
		seats := RoomSpec{ID: "R1", Rows: 2, Cols: 2}.Grid()
		require.Len(t, seats, 4)
		assert.Equal(t, []Seat{
			{Room: "R1", Row: 0, Col: 0},
			{Room: "R1", Row: 0, Col: 1},
			{Room: "R1", Row: 1, Col: 0},
			{Room: "R1", Row: 1, Col: 1},
		}, seats)
	})

	t.Run("alternate rows drop odd indices", func(t *testing.T) {
		spec := RoomSpec{ID: "R1", Rows: 5, Cols: 2, SkipAlternateRows: true}
		for _, s := range spec.Grid() {
			assert.Zero(t, s.Row%2)
		}
		assert.Equal(t, 6, spec.Capacity())
	})

	t.Run("alternate cols drop odd indices", func(t *testing.T) {
		spec := RoomSpec{ID: "R1", Rows: 2, Cols: 5, SkipAlternateCols: true}
		assert.Equal(t, 6, spec.Capacity())
		assert.False(t, spec.Usable(0, 1))
		assert.True(t, spec.Usable(0, 2))
	})

	t.Run("stride drops positive multiples", func(t *testing.T) {
		spec := RoomSpec{ID: "R1", Rows: 7, Cols: 1, RowStride: 3}
		var rows []int
		for _, s := range spec.Grid() {
			rows = append(rows, s.Row)
		}
		assert.Equal(t, []int{0, 1, 2, 4, 5}, rows)
		assert.Equal(t, 5, spec.Capacity())
	})

	t.Run("capacity matches grid length", func(t *testing.T) {
		spec := RoomSpec{ID: "R1", Rows: 6, Cols: 7, SkipAlternateRows: true, ColStride: 4}
		assert.Len(t, spec.Grid(), spec.Capacity())
	})
}

func TestRoomSpecUsable(t *testing.T) {
	spec := RoomSpec{ID: "R1", Rows: 3, Cols: 3}
	assert.True(t, spec.Usable(2, 2))
	assert.False(t, spec.Usable(-1, 0))
	assert.False(t, spec.Usable(0, 3))
}
