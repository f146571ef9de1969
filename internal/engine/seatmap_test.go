package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderSeatMap(t *testing.T) {
	roster := []Student{{ID: "s1", Exam: "MATH"}, {ID: "s2", Exam: "PHYS"}}
	spec := RoomSpec{ID: "R1", Rows: 2, Cols: 3, ColStride: 2}
	a := Assignment{
		"s1": {Room: "R1", Row: 0, Col: 0},
		"s2": {Room: "R2", Row: 0, Col: 0}, // other room, must not appear
	}

	out := RenderSeatMap(spec, a, roster)

	assert.Contains(t, out, "Room R1 (2 rows x 3 cols)")
	assert.Contains(t, out, "s1(MATH)")
	assert.NotContains(t, out, "s2")
	assert.Contains(t, out, "...")
	// Column 2 is stride-skipped on both rows.
	assert.Equal(t, 2, strings.Count(out, "x        "))

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 3) // header plus one line per row
}
