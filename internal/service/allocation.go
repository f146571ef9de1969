package service

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/majidonaisy/seating-algo/internal/engine"
	"github.com/majidonaisy/seating-algo/internal/queue"
	"github.com/majidonaisy/seating-algo/internal/repository"
)

// Solver produces a seat assignment for a roster. The default implementation
// wraps the heuristic engine; an exact constraint solver can be plugged in
// behind the same boundary.
type Solver interface {
	Solve(ctx context.Context, roster []engine.Student, rooms []engine.RoomSpec, restrictions engine.Restrictions, policy engine.Policy) (*engine.Result, error)
}

// HeuristicSolver runs the in-process allocation engine.
type HeuristicSolver struct{}

func (HeuristicSolver) Solve(_ context.Context, roster []engine.Student, rooms []engine.RoomSpec, restrictions engine.Restrictions, policy engine.Policy) (*engine.Result, error) {
	return engine.Allocate(roster, rooms, restrictions, policy)
}

// AllocationService loads the roster, rooms and restrictions, runs the
// solver, persists the result and publishes a completion event.
type AllocationService struct {
	Students     *repository.StudentRepo
	Rooms        *repository.RoomRepo
	Restrictions *repository.RestrictionRepo
	Allocations  *repository.AllocationRepo
	Solver       Solver
}

// RunOutcome is the successful result of one allocation run.
type RunOutcome struct {
	Allocation repository.Allocation
	Result     *engine.Result
}

// Run executes one allocation over the current roster and active rooms.
// Engine failures (capacity, eligibility, placement) pass through typed so
// handlers can map them to response codes.
func (s *AllocationService) Run(ctx context.Context, createdBy uint64, policy engine.Policy) (*RunOutcome, error) {
	students, err := s.Students.List(ctx, "")
	if err != nil {
		return nil, err
	}
	rooms, err := s.Rooms.List(ctx, true)
	if err != nil {
		return nil, err
	}
	allowed, err := s.Restrictions.AllowedRoomCodes(ctx)
	if err != nil {
		return nil, err
	}

	roster := RosterFromRows(students)
	specs := RoomSpecsFromRows(rooms)
	restrictions := RestrictionsFromCodes(allowed)

	result, err := s.Solver.Solve(ctx, roster, specs, restrictions, policy)
	if err != nil {
		return nil, err
	}

	alloc := repository.Allocation{
		Status:          "COMPLETE",
		Policy:          policyName(policy.OnUnassigned),
		StudentCount:    len(roster),
		UnassignedCount: len(result.Unassigned),
		RoomsUsed:       result.RoomsUsed,
		CreatedBy:       createdBy,
	}
	if len(result.Unassigned) > 0 {
		alloc.Status = "PARTIAL"
	}

	rows := assignmentRows(result.Assignment, students, rooms)
	if err := s.Allocations.Create(ctx, &alloc, rows); err != nil {
		return nil, err
	}

	// Best effort: a broker outage must not fail the run.
	event := queue.AllocationCompletedEvent{
		AllocationID:    alloc.ID,
		Status:          alloc.Status,
		Policy:          alloc.Policy,
		StudentCount:    alloc.StudentCount,
		AssignedCount:   len(result.Assignment),
		UnassignedCount: alloc.UnassignedCount,
		RoomsUsed:       alloc.RoomsUsed,
		RoomCodes:       usedRoomCodes(result.Assignment),
		TriggeredBy:     createdBy,
		CompletedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	if err := PublishAllocationCompleted(ctx, event); err != nil {
		log.Printf("allocation %d: publish event failed: %v", alloc.ID, err)
	}

	return &RunOutcome{Allocation: alloc, Result: result}, nil
}

// RosterFromRows converts student rows to engine input. The external student
// code doubles as the engine's opaque identifier.
func RosterFromRows(students []repository.Student) []engine.Student {
	out := make([]engine.Student, len(students))
	for i, s := range students {
		out[i] = engine.Student{ID: s.Code, Exam: s.ExamCode}
	}
	return out
}

// RoomSpecsFromRows converts room rows to engine grid specs, keyed by room
// code.
func RoomSpecsFromRows(rooms []repository.Room) []engine.RoomSpec {
	out := make([]engine.RoomSpec, len(rooms))
	for i, rm := range rooms {
		out[i] = engine.RoomSpec{
			ID:                rm.Code,
			Rows:              rm.SeatRows,
			Cols:              rm.SeatCols,
			SkipAlternateRows: rm.SkipAltRows,
			SkipAlternateCols: rm.SkipAltCols,
			RowStride:         rm.RowStride,
			ColStride:         rm.ColStride,
		}
	}
	return out
}

// RestrictionsFromCodes wraps the exam -> room-codes map in the engine's
// restriction type.
func RestrictionsFromCodes(allowed map[string][]string) engine.Restrictions {
	if len(allowed) == 0 {
		return nil
	}
	return engine.Restrictions(allowed)
}

func policyName(p engine.FailurePolicy) string {
	if p == engine.ContinuePartial {
		return "continue_partial"
	}
	return "fail_fast"
}

func usedRoomCodes(a engine.Assignment) []string {
	seen := map[string]bool{}
	for _, seat := range a {
		seen[seat.Room] = true
	}
	codes := make([]string, 0, len(seen))
	for code := range seen {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// assignmentRows maps the engine's code-keyed assignment back onto database
// ids for persistence.
func assignmentRows(a engine.Assignment, students []repository.Student, rooms []repository.Room) []repository.AssignmentRow {
	studentID := make(map[string]uint64, len(students))
	for _, s := range students {
		studentID[s.Code] = s.ID
	}
	roomID := make(map[string]uint64, len(rooms))
	for _, rm := range rooms {
		roomID[rm.Code] = rm.ID
	}
	rows := make([]repository.AssignmentRow, 0, len(a))
	for code, seat := range a {
		rows = append(rows, repository.AssignmentRow{
			StudentID: studentID[code],
			RoomID:    roomID[seat.Room],
			SeatRow:   seat.Row,
			SeatCol:   seat.Col,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].StudentID < rows[j].StudentID })
	return rows
}
