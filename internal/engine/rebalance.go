package engine

import "sort"

// rebalance breaks up homogeneous rooms: a room holding two or more
// students who all sit the same exam packs adjacency risk into one place,
// so the phase swaps one of its occupants with a different-exam student
// from another room whenever the swap keeps the assignment valid. Swaps
// are applied in place; the phase stops when no homogeneous room can be
// improved or the iteration bound is hit.
func rebalance(a Assignment, roster []Student, rooms []RoomSpec, restrictions Restrictions, p Policy) {
	examOf := examIndex(roster)

	for iter := 0; iter < p.MaxRebalanceIters; iter++ {
		homog := homogeneousRooms(a, examOf)
		if len(homog) == 0 {
			return
		}
		swapped := false
		for _, room := range homog {
			if trySplitRoom(a, roster, rooms, restrictions, examOf, room) {
				swapped = true
				break
			}
		}
		if !swapped {
			return
		}
	}
}

// homogeneousRooms lists the rooms with at least two occupants that all sit
// the same exam, sorted by room id.
func homogeneousRooms(a Assignment, examOf map[string]string) []string {
	counts := make(map[string]int)
	exams := make(map[string]map[string]bool)
	for id, seat := range a {
		counts[seat.Room]++
		if exams[seat.Room] == nil {
			exams[seat.Room] = make(map[string]bool)
		}
		exams[seat.Room][examOf[id]] = true
	}
	var out []string
	for room, n := range counts {
		if n >= 2 && len(exams[room]) == 1 {
			out = append(out, room)
		}
	}
	sort.Strings(out)
	return out
}

// trySplitRoom attempts one validity-preserving swap between an occupant of
// the homogeneous room and a different-exam student seated elsewhere.
func trySplitRoom(a Assignment, roster []Student, rooms []RoomSpec, restrictions Restrictions, examOf map[string]string, room string) bool {
	var locals []string
	for _, id := range assignedIDs(a) {
		if a[id].Room == room {
			locals = append(locals, id)
		}
	}
	if len(locals) == 0 {
		return false
	}
	exam := examOf[locals[0]]

	for _, donor := range assignedIDs(a) {
		if a[donor].Room == room || examOf[donor] == exam {
			continue
		}
		for _, local := range locals {
			a[donor], a[local] = a[local], a[donor]
			if Check(a, roster, rooms, restrictions) == nil {
				return true
			}
			a[donor], a[local] = a[local], a[donor]
		}
	}
	return false
}
