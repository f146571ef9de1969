// Package engine implements the exam seat allocation core: a deterministic,
// multi-phase heuristic that places students on room seat grids so that no
// two students of the same exam sit on Manhattan-adjacent seats, per-exam
// room restrictions are honored, and as few rooms as possible are opened.
//
// The engine is a pure function of its inputs plus the Policy: it owns no
// durable state, performs no I/O, and may be run concurrently as long as
// every run gets its own inputs.
package engine

import (
	"fmt"
	"slices"
	"sort"
)

// Student is one roster entry: an opaque identifier and the exam it sits.
type Student struct {
	ID   string
	Exam string
}

// Seat addresses a single legal grid position within a room.
type Seat struct {
	Room string
	Row  int
	Col  int
}

// Assignment maps each assigned student to exactly one seat.
type Assignment map[string]Seat

// Restrictions maps an exam to the room ids it may use. An exam without an
// entry may use every room; an exam with an empty entry may use none.
type Restrictions map[string][]string

// Allows reports whether the exam may be seated in the given room.
func (r Restrictions) Allows(exam, room string) bool {
	allowed, ok := r[exam]
	if !ok {
		return true
	}
	return slices.Contains(allowed, room)
}

// FailurePolicy selects what happens when the greedy placer cannot seat a
// student.
type FailurePolicy int

const (
	// FailFast aborts the run with a PlacementError on the first student
	// that cannot be seated.
	FailFast FailurePolicy = iota
	// ContinuePartial seats everyone it can and reports the remainder in
	// Result.Unassigned.
	ContinuePartial
)

// Policy holds the tunable heuristic constants. The defaults preserve the
// required qualitative ordering: prefer rooms with more free capacity,
// prefer partially filled rooms over opening empty ones, prefer mixed-exam
// rooms over homogeneous ones.
type Policy struct {
	OnUnassigned FailurePolicy

	CapacityWeight       int
	FragmentationPenalty int
	FillThreshold        float64
	TailPenalty          int
	TailThreshold        int
	DiversityBonus       int

	MaxRebalanceIters int
	MaxImproveIters   int
	PairWindow        int
}

// DefaultPolicy is the tuning used when the caller has no opinion.
var DefaultPolicy = Policy{
	OnUnassigned:         FailFast,
	CapacityWeight:       2,
	FragmentationPenalty: 1000,
	FillThreshold:        0.8,
	TailPenalty:          250,
	TailThreshold:        5,
	DiversityBonus:       50,
	MaxRebalanceIters:    100,
	MaxImproveIters:      100,
	PairWindow:           10,
}

// Result is a successful allocation. Unassigned is non-empty only under
// ContinuePartial.
type Result struct {
	Assignment Assignment
	Unassigned []string
	RoomsUsed  int
}

// Allocate runs the full pipeline: group by exam (largest first), greedy
// placement over prioritized rooms, diversity rebalancing, then bounded
// local search, with a validity check gating every phase. It returns either
// a valid Result or a typed failure (CapacityError, EligibilityError,
// PlacementError); a partial or invalid assignment is never returned
// silently.
func Allocate(roster []Student, rooms []RoomSpec, restrictions Restrictions, policy Policy) (*Result, error) {
	states := make(map[string]*roomState, len(rooms))
	roomIDs := make([]string, 0, len(rooms))
	totalSeats := 0
	for _, spec := range rooms {
		if err := spec.Validate(); err != nil {
			return nil, err
		}
		if _, dup := states[spec.ID]; dup {
			return nil, fmt.Errorf("duplicate room id %q", spec.ID)
		}
		st := newRoomState(spec)
		states[spec.ID] = st
		roomIDs = append(roomIDs, spec.ID)
		totalSeats += st.capacity()
	}
	sort.Strings(roomIDs)

	seen := make(map[string]bool, len(roster))
	for _, s := range roster {
		if seen[s.ID] {
			return nil, fmt.Errorf("duplicate student id %q", s.ID)
		}
		seen[s.ID] = true
	}

	if totalSeats < len(roster) {
		return nil, &CapacityError{Students: len(roster), Seats: totalSeats}
	}

	groups := GroupByExam(roster)

	// Eligibility and per-exam capacity are checked before any placement
	// work so that fatal configurations fail fast and cheap.
	var unassigned []string
	eligible := make(map[string][]string, len(groups))
	placeable := groups[:0:0]
	for _, g := range groups {
		ids := make([]string, 0, len(roomIDs))
		seats := 0
		for _, rid := range roomIDs {
			if restrictions.Allows(g.Exam, rid) {
				ids = append(ids, rid)
				seats += states[rid].capacity()
			}
		}
		if len(ids) == 0 {
			if policy.OnUnassigned == FailFast {
				return nil, &EligibilityError{Exam: g.Exam}
			}
			unassigned = append(unassigned, g.Students...)
			continue
		}
		if seats < len(g.Students) && policy.OnUnassigned == FailFast {
			return nil, &CapacityError{Exam: g.Exam, Students: len(g.Students), Seats: seats}
		}
		eligible[g.Exam] = ids
		placeable = append(placeable, g)
	}

	assignment, skipped, err := place(placeable, states, eligible, policy)
	if err != nil {
		return nil, err
	}
	unassigned = append(unassigned, skipped...)
	sort.Strings(unassigned)

	if v := Check(assignment, roster, rooms, restrictions); v != nil {
		return nil, fmt.Errorf("greedy placement produced invalid assignment: %s", v)
	}

	rebalance(assignment, roster, rooms, restrictions, policy)
	improve(assignment, roster, rooms, restrictions, policy)

	if v := Check(assignment, roster, rooms, restrictions); v != nil {
		return nil, fmt.Errorf("improvement phases produced invalid assignment: %s", v)
	}

	used := map[string]bool{}
	for _, seat := range assignment {
		used[seat.Room] = true
	}

	return &Result{
		Assignment: assignment,
		Unassigned: unassigned,
		RoomsUsed:  len(used),
	}, nil
}

// assignedIDs returns the assigned student ids in sorted order, giving every
// phase a deterministic scan order.
func assignedIDs(a Assignment) []string {
	ids := make([]string, 0, len(a))
	for id := range a {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func examIndex(roster []Student) map[string]string {
	m := make(map[string]string, len(roster))
	for _, s := range roster {
		m[s.ID] = s.Exam
	}
	return m
}
