package engine

import (
	"fmt"
	"sort"
)

// ViolationKind classifies an invariant breach found by Check.
type ViolationKind int

const (
	SeatCollision ViolationKind = iota
	AdjacencyViolation
	IneligibleRoom
	CapacityExceeded
	UnknownRoom
	IllegalSeat
)

func (k ViolationKind) String() string {
	switch k {
	case SeatCollision:
		return "seat collision"
	case AdjacencyViolation:
		return "same-exam adjacency"
	case IneligibleRoom:
		return "ineligible room"
	case CapacityExceeded:
		return "capacity exceeded"
	case UnknownRoom:
		return "unknown room"
	case IllegalSeat:
		return "illegal seat"
	default:
		return "unknown violation"
	}
}

// Violation is the first invariant breach found, with enough detail to name
// the offending students and seat.
type Violation struct {
	Kind     ViolationKind
	StudentA string
	StudentB string
	Seat     Seat
}

func (v *Violation) String() string {
	switch v.Kind {
	case SeatCollision, AdjacencyViolation:
		return fmt.Sprintf("%s: students %q and %q at %s[%d,%d]",
			v.Kind, v.StudentA, v.StudentB, v.Seat.Room, v.Seat.Row, v.Seat.Col)
	case CapacityExceeded:
		return fmt.Sprintf("%s: room %q", v.Kind, v.Seat.Room)
	default:
		return fmt.Sprintf("%s: student %q at %s[%d,%d]",
			v.Kind, v.StudentA, v.Seat.Room, v.Seat.Row, v.Seat.Col)
	}
}

// Check verifies an assignment against every invariant: seats exist and are
// legal, no seat holds two students, rooms stay within capacity, room
// restrictions hold, and no two same-exam students are Manhattan-adjacent.
// It is a pure read over its inputs; running it twice on the same data
// returns the same answer. A nil return means the assignment is valid.
func Check(a Assignment, roster []Student, rooms []RoomSpec, restrictions Restrictions) *Violation {
	examOf := examIndex(roster)
	specs := make(map[string]RoomSpec, len(rooms))
	for _, r := range rooms {
		specs[r.ID] = r
	}

	ids := assignedIDs(a)
	bySeat := make(map[Seat]string, len(a))
	roomCount := make(map[string]int)

	for _, id := range ids {
		seat := a[id]
		spec, ok := specs[seat.Room]
		if !ok {
			return &Violation{Kind: UnknownRoom, StudentA: id, Seat: seat}
		}
		if !spec.Usable(seat.Row, seat.Col) {
			return &Violation{Kind: IllegalSeat, StudentA: id, Seat: seat}
		}
		if other, taken := bySeat[seat]; taken {
			return &Violation{Kind: SeatCollision, StudentA: other, StudentB: id, Seat: seat}
		}
		bySeat[seat] = id
		roomCount[seat.Room]++
		if !restrictions.Allows(examOf[id], seat.Room) {
			return &Violation{Kind: IneligibleRoom, StudentA: id, Seat: seat}
		}
	}

	roomIDs := make([]string, 0, len(roomCount))
	for rid := range roomCount {
		roomIDs = append(roomIDs, rid)
	}
	sort.Strings(roomIDs)
	for _, rid := range roomIDs {
		if roomCount[rid] > specs[rid].Capacity() {
			return &Violation{Kind: CapacityExceeded, Seat: Seat{Room: rid}}
		}
	}

	for _, id := range ids {
		seat := a[id]
		for _, d := range neighborOffsets {
			n := Seat{Room: seat.Room, Row: seat.Row + d.row, Col: seat.Col + d.col}
			other, taken := bySeat[n]
			if taken && examOf[other] == examOf[id] {
				return &Violation{Kind: AdjacencyViolation, StudentA: id, StudentB: other, Seat: seat}
			}
		}
	}

	return nil
}
