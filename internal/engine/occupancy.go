package engine

type coord struct{ row, col int }

var neighborOffsets = [4]coord{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// roomState is the per-run occupancy bookkeeping for one room: the legal
// seat list in scan order plus who sits where.
type roomState struct {
	spec     RoomSpec
	grid     []coord
	occupant map[coord]string // seat -> student id
	occExam  map[coord]string // seat -> exam id
}

func newRoomState(spec RoomSpec) *roomState {
	seats := spec.Grid()
	grid := make([]coord, len(seats))
	for i, s := range seats {
		grid[i] = coord{row: s.Row, col: s.Col}
	}
	return &roomState{
		spec:     spec,
		grid:     grid,
		occupant: make(map[coord]string),
		occExam:  make(map[coord]string),
	}
}

func (s *roomState) capacity() int { return len(s.grid) }
func (s *roomState) used() int     { return len(s.occupant) }
func (s *roomState) available() int {
	return len(s.grid) - len(s.occupant)
}

func (s *roomState) fillRatio() float64 {
	if len(s.grid) == 0 {
		return 1
	}
	return float64(len(s.occupant)) / float64(len(s.grid))
}

// holdsOtherExam reports whether any occupant sits a different exam.
func (s *roomState) holdsOtherExam(exam string) bool {
	for _, e := range s.occExam {
		if e != exam {
			return true
		}
	}
	return false
}

func (s *roomState) place(student, exam string, c coord) {
	s.occupant[c] = student
	s.occExam[c] = exam
}

// adjacentSameExam reports whether a direct grid neighbor of c already
// holds a student of the given exam. Only the four Manhattan-distance-one
// neighbors count; diagonals never conflict.
func (s *roomState) adjacentSameExam(c coord, exam string) bool {
	for _, d := range neighborOffsets {
		n := coord{row: c.row + d.row, col: c.col + d.col}
		if s.occExam[n] == exam && exam != "" {
			return true
		}
	}
	return false
}

// firstFreeSeat scans the grid in construction order and returns the first
// seat that is unoccupied and has no same-exam neighbor.
func (s *roomState) firstFreeSeat(exam string) (coord, bool) {
	for _, c := range s.grid {
		if _, taken := s.occupant[c]; taken {
			continue
		}
		if s.adjacentSameExam(c, exam) {
			continue
		}
		return c, true
	}
	return coord{}, false
}
