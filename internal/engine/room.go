package engine

import (
	"errors"
	"fmt"
)

// RoomSpec describes one room as a rectangular seat grid with optional
// skipped rows and columns. Two skip forms exist per axis: the boolean
// alternating form removes every odd index, the numeric stride form removes
// every index that is a positive multiple of the stride. Setting both forms
// on the same axis is a configuration error.
type RoomSpec struct {
	ID   string
	Rows int
	Cols int

	SkipAlternateRows bool
	SkipAlternateCols bool

	// RowStride/ColStride of k > 0 skip indices k, 2k, 3k, ... on that
	// axis. Zero means no stride skipping.
	RowStride int
	ColStride int
}

// Validate rejects specs that cannot describe a real room.
func (r RoomSpec) Validate() error {
	if r.ID == "" {
		return errors.New("room id must not be empty")
	}
	if r.Rows <= 0 || r.Cols <= 0 {
		return fmt.Errorf("room %q: dimensions must be positive, got %dx%d", r.ID, r.Rows, r.Cols)
	}
	if r.RowStride < 0 || r.ColStride < 0 {
		return fmt.Errorf("room %q: strides must be non-negative", r.ID)
	}
	if r.SkipAlternateRows && r.RowStride > 0 {
		return fmt.Errorf("room %q: alternate-row and row-stride skipping are mutually exclusive", r.ID)
	}
	if r.SkipAlternateCols && r.ColStride > 0 {
		return fmt.Errorf("room %q: alternate-col and col-stride skipping are mutually exclusive", r.ID)
	}
	return nil
}

func (r RoomSpec) rowUsable(i int) bool {
	if r.SkipAlternateRows && i%2 != 0 {
		return false
	}
	if r.RowStride > 0 && i > 0 && i%r.RowStride == 0 {
		return false
	}
	return true
}

func (r RoomSpec) colUsable(j int) bool {
	if r.SkipAlternateCols && j%2 != 0 {
		return false
	}
	if r.ColStride > 0 && j > 0 && j%r.ColStride == 0 {
		return false
	}
	return true
}

// Usable reports whether (row, col) is a legal seat of this room.
func (r RoomSpec) Usable(row, col int) bool {
	if row < 0 || row >= r.Rows || col < 0 || col >= r.Cols {
		return false
	}
	return r.rowUsable(row) && r.colUsable(col)
}

// Grid lists the legal seats in row-major order. That order doubles as the
// seat construction order the greedy placer scans in.
func (r RoomSpec) Grid() []Seat {
	seats := make([]Seat, 0, r.Rows*r.Cols)
	for row := 0; row < r.Rows; row++ {
		if !r.rowUsable(row) {
			continue
		}
		for col := 0; col < r.Cols; col++ {
			if !r.colUsable(col) {
				continue
			}
			seats = append(seats, Seat{Room: r.ID, Row: row, Col: col})
		}
	}
	return seats
}

// Capacity is the number of legal seats.
func (r RoomSpec) Capacity() int {
	rows := 0
	for i := 0; i < r.Rows; i++ {
		if r.rowUsable(i) {
			rows++
		}
	}
	cols := 0
	for j := 0; j < r.Cols; j++ {
		if r.colUsable(j) {
			cols++
		}
	}
	return rows * cols
}
