package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stateWith(t *testing.T, spec RoomSpec, occupants map[coord]string) *roomState {
	t.Helper()
	st := newRoomState(spec)
	for c, exam := range occupants {
		st.place("someone-"+exam, exam, c)
	}
	return st
}

func TestRankRooms(t *testing.T) {
	t.Run("more free capacity wins", func(t *testing.T) {
		states := map[string]*roomState{
			"big":   newRoomState(RoomSpec{ID: "big", Rows: 4, Cols: 4}),
			"small": newRoomState(RoomSpec{ID: "small", Rows: 2, Cols: 2}),
		}
		ranked := rankRooms(states, []string{"big", "small"}, "E1", 10, DefaultPolicy)
		require.Len(t, ranked, 2)
		assert.Equal(t, "big", ranked[0].spec.ID)
	})

	t.Run("room with slack beats opening an empty one", func(t *testing.T) {
		states := map[string]*roomState{
			"open":  stateWith(t, RoomSpec{ID: "open", Rows: 3, Cols: 3}, map[coord]string{{0, 0}: "E2"}),
			"empty": newRoomState(RoomSpec{ID: "empty", Rows: 5, Cols: 5}),
		}
		ranked := rankRooms(states, []string{"empty", "open"}, "E1", 10, DefaultPolicy)
		require.Len(t, ranked, 2)
		assert.Equal(t, "open", ranked[0].spec.ID,
			"bigger empty room must lose to a partially filled one with slack")
	})

	t.Run("small remaining tail avoids new rooms", func(t *testing.T) {
		states := map[string]*roomState{
			"used": stateWith(t, RoomSpec{ID: "used", Rows: 1, Cols: 5},
				map[coord]string{{0, 0}: "E1", {0, 1}: "E1", {0, 2}: "E1", {0, 3}: "E1"}),
			"empty": newRoomState(RoomSpec{ID: "empty", Rows: 5, Cols: 5}),
		}
		// "used" is above the fill threshold so no fragmentation penalty
		// applies, but a 2-student tail still keeps the empty room last.
		ranked := rankRooms(states, []string{"empty", "used"}, "E2", 2, DefaultPolicy)
		require.Len(t, ranked, 2)
		assert.Equal(t, "used", ranked[0].spec.ID)
	})

	t.Run("mixed-exam room beats equal homogeneous room", func(t *testing.T) {
		states := map[string]*roomState{
			"mixed": stateWith(t, RoomSpec{ID: "mixed", Rows: 3, Cols: 3},
				map[coord]string{{0, 0}: "E2"}),
			"same": stateWith(t, RoomSpec{ID: "same", Rows: 3, Cols: 3},
				map[coord]string{{0, 0}: "E1"}),
		}
		ranked := rankRooms(states, []string{"mixed", "same"}, "E1", 10, DefaultPolicy)
		require.Len(t, ranked, 2)
		assert.Equal(t, "mixed", ranked[0].spec.ID)
	})

	t.Run("full rooms are dropped", func(t *testing.T) {
		full := stateWith(t, RoomSpec{ID: "full", Rows: 1, Cols: 1}, map[coord]string{{0, 0}: "E2"})
		states := map[string]*roomState{"full": full}
		assert.Empty(t, rankRooms(states, []string{"full"}, "E1", 1, DefaultPolicy))
	})

	t.Run("ties break by room id", func(t *testing.T) {
		states := map[string]*roomState{
			"b": newRoomState(RoomSpec{ID: "b", Rows: 2, Cols: 2}),
			"a": newRoomState(RoomSpec{ID: "a", Rows: 2, Cols: 2}),
		}
		ranked := rankRooms(states, []string{"b", "a"}, "E1", 10, DefaultPolicy)
		require.Len(t, ranked, 2)
		assert.Equal(t, "a", ranked[0].spec.ID)
	})
}

func TestRoomStateAdjacency(t *testing.T) {
	st := newRoomState(RoomSpec{ID: "R1", Rows: 3, Cols: 3})
	st.place("s1", "E1", coord{1, 1})

	assert.True(t, st.adjacentSameExam(coord{0, 1}, "E1"))
	assert.True(t, st.adjacentSameExam(coord{1, 0}, "E1"))
	assert.False(t, st.adjacentSameExam(coord{0, 0}, "E1"), "diagonal neighbors never conflict")
	assert.False(t, st.adjacentSameExam(coord{0, 1}, "E2"))
}

func TestRoomStateFirstFreeSeat(t *testing.T) {
	st := newRoomState(RoomSpec{ID: "R1", Rows: 1, Cols: 3})
	st.place("s1", "E1", coord{0, 0})

	c, ok := st.firstFreeSeat("E1")
	require.True(t, ok)
	assert.Equal(t, coord{0, 2}, c, "seat next to s1 must be skipped for the same exam")

	c, ok = st.firstFreeSeat("E2")
	require.True(t, ok)
	assert.Equal(t, coord{0, 1}, c)
}
