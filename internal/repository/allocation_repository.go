package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Allocation is one persisted run of the seat allocation engine.
type Allocation struct {
	ID              uint64
	Status          string // COMPLETE | PARTIAL
	Policy          string // fail_fast | continue_partial
	StudentCount    int
	UnassignedCount int
	RoomsUsed       int
	CreatedBy       uint64
	CreatedAt       time.Time
}

// AssignmentRow is one student's seat within an allocation. StudentCode and
// RoomCode are joined in for read queries.
type AssignmentRow struct {
	ID           uint64
	AllocationID uint64
	StudentID    uint64
	StudentCode  string
	ExamCode     string
	RoomID       uint64
	RoomCode     string
	SeatRow      int
	SeatCol      int
}

// ErrAllocationNotFound is returned when an allocation lookup yields no rows.
var ErrAllocationNotFound = errors.New("allocation not found")

// AllocationRepo persists allocation runs and their seat assignments.
type AllocationRepo struct {
	db *sql.DB
}

func NewAllocationRepo(db *sql.DB) *AllocationRepo {
	return &AllocationRepo{db: db}
}

// Create stores the allocation header and all assignment rows in one
// transaction, so a half-written run can never be observed.
func (r *AllocationRepo) Create(ctx context.Context, a *Allocation, rows []AssignmentRow) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO allocations (status, policy, student_count, unassigned_count, rooms_used, created_by)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		a.Status, a.Policy, a.StudentCount, a.UnassignedCount, a.RoomsUsed, a.CreatedBy)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	if err := tx.QueryRowContext(ctx, `SELECT created_at FROM allocations WHERE id = ?`, a.ID).Scan(&a.CreatedAt); err != nil {
		return err
	}

	if len(rows) > 0 {
		query := `INSERT INTO assignments (allocation_id, student_id, room_id, seat_row, seat_col) VALUES `
		args := make([]interface{}, 0, len(rows)*5)
		for i, row := range rows {
			if i > 0 {
				query += ","
			}
			query += "(?, ?, ?, ?, ?)"
			args = append(args, a.ID, row.StudentID, row.RoomID, row.SeatRow, row.SeatCol)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetByID fetches one allocation header.
func (r *AllocationRepo) GetByID(ctx context.Context, id uint64) (*Allocation, error) {
	const q = `SELECT id, status, policy, student_count, unassigned_count, rooms_used, created_by, created_at
	           FROM allocations WHERE id = ?`
	var a Allocation
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&a.ID, &a.Status, &a.Policy, &a.StudentCount, &a.UnassignedCount, &a.RoomsUsed, &a.CreatedBy, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAllocationNotFound
		}
		return nil, err
	}
	return &a, nil
}

// ListRecent returns the newest allocations first, capped at limit.
func (r *AllocationRepo) ListRecent(ctx context.Context, limit int) ([]Allocation, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	const q = `SELECT id, status, policy, student_count, unassigned_count, rooms_used, created_by, created_at
	           FROM allocations ORDER BY id DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Allocation
	for rows.Next() {
		var a Allocation
		if err := rows.Scan(&a.ID, &a.Status, &a.Policy, &a.StudentCount, &a.UnassignedCount, &a.RoomsUsed, &a.CreatedBy, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

const assignmentSelect = `SELECT a.id, a.allocation_id, a.student_id, s.code, s.exam_code, a.room_id, rm.code, a.seat_row, a.seat_col
	FROM assignments a
	JOIN students s ON s.id = a.student_id
	JOIN rooms rm ON rm.id = a.room_id`

// Assignments lists every seat of one allocation ordered by room, row, col.
func (r *AllocationRepo) Assignments(ctx context.Context, allocationID uint64) ([]AssignmentRow, error) {
	q := assignmentSelect + ` WHERE a.allocation_id = ? ORDER BY rm.code, a.seat_row, a.seat_col`
	return r.queryAssignments(ctx, q, allocationID)
}

// AssignmentsByRoom lists the seats of one room within an allocation.
func (r *AllocationRepo) AssignmentsByRoom(ctx context.Context, allocationID, roomID uint64) ([]AssignmentRow, error) {
	q := assignmentSelect + ` WHERE a.allocation_id = ? AND a.room_id = ? ORDER BY a.seat_row, a.seat_col`
	return r.queryAssignments(ctx, q, allocationID, roomID)
}

// AssignmentForStudent finds where a student sits in an allocation, by
// student code. Returns sql.ErrNoRows when the student was not assigned.
func (r *AllocationRepo) AssignmentForStudent(ctx context.Context, allocationID uint64, studentCode string) (*AssignmentRow, error) {
	q := assignmentSelect + ` WHERE a.allocation_id = ? AND s.code = ? LIMIT 1`
	rows, err := r.queryAssignments(ctx, q, allocationID, studentCode)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, sql.ErrNoRows
	}
	return &rows[0], nil
}

func (r *AllocationRepo) queryAssignments(ctx context.Context, q string, args ...interface{}) ([]AssignmentRow, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AssignmentRow
	for rows.Next() {
		var row AssignmentRow
		if err := rows.Scan(&row.ID, &row.AllocationID, &row.StudentID, &row.StudentCode, &row.ExamCode,
			&row.RoomID, &row.RoomCode, &row.SeatRow, &row.SeatCol); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
