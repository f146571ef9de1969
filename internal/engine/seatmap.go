package engine

import (
	"fmt"
	"strings"
)

// RenderSeatMap draws one room's grid as text: occupied seats show
// "student(exam)", free legal seats show "...", skipped positions show "x".
// Useful for eyeballing an allocation in logs or a terminal.
func RenderSeatMap(spec RoomSpec, a Assignment, roster []Student) string {
	examOf := examIndex(roster)
	occupant := make(map[coord]string)
	for id, seat := range a {
		if seat.Room != spec.ID {
			continue
		}
		occupant[coord{row: seat.Row, col: seat.Col}] = id
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Room %s (%d rows x %d cols):\n", spec.ID, spec.Rows, spec.Cols)
	for row := 0; row < spec.Rows; row++ {
		for col := 0; col < spec.Cols; col++ {
			cell := "x"
			if spec.Usable(row, col) {
				cell = "..."
				if id, ok := occupant[coord{row: row, col: col}]; ok {
					cell = fmt.Sprintf("%s(%s)", id, examOf[id])
				}
			}
			fmt.Fprintf(&b, "%-10s", cell)
		}
		b.WriteString("\n")
	}
	return b.String()
}
