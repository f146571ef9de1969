package repository // repository holds data access logic for domain entities

import (
	"context"      // context is used to manage deadlines and cancellation
	"database/sql" // sql provides DB primitives
	"errors"       // errors package allows sentinel error definitions
	"strings"
	"time"
)

// Room represents an exam room as a rectangular seat grid. Row and column
// skipping comes in two mutually exclusive forms per axis: the alternating
// flags drop every odd index, the strides drop every positive multiple.
type Room struct {
	ID          uint64 // primary key
	Code        string // human-facing room identifier, e.g. "B-204"
	SeatRows    int    // number of grid rows
	SeatCols    int    // number of grid columns
	SkipAltRows bool   // drop odd row indices
	SkipAltCols bool   // drop odd column indices
	RowStride   int    // drop row indices that are positive multiples; 0 = off
	ColStride   int    // drop column indices that are positive multiples; 0 = off
	IsActive    bool   // inactive rooms are excluded from allocation runs
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ErrRoomNotFound is returned when a room lookup yields no rows.
var ErrRoomNotFound = errors.New("room not found")

// ErrRoomCodeExists is returned when a room code collides on insert.
var ErrRoomCodeExists = errors.New("room code already exists")

// RoomRepo provides methods to create and retrieve rooms.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo constructs a RoomRepo with the given DB handle.
func NewRoomRepo(db *sql.DB) *RoomRepo {
	return &RoomRepo{db: db}
}

const roomColumns = `id, code, seat_rows, seat_cols, skip_alt_rows, skip_alt_cols, row_stride, col_stride, is_active, created_at, updated_at`

func scanRoom(row interface{ Scan(...any) error }, rm *Room) error {
	return row.Scan(&rm.ID, &rm.Code, &rm.SeatRows, &rm.SeatCols,
		&rm.SkipAltRows, &rm.SkipAltCols, &rm.RowStride, &rm.ColStride,
		&rm.IsActive, &rm.CreatedAt, &rm.UpdatedAt)
}

// Create inserts a new room and re-reads the row so timestamps and the
// is_active default come back populated.
func (r *RoomRepo) Create(ctx context.Context, rm *Room) error {
	const qInsert = `INSERT INTO rooms (code, seat_rows, seat_cols, skip_alt_rows, skip_alt_cols, row_stride, col_stride)
	                 VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert,
		rm.Code, rm.SeatRows, rm.SeatCols, rm.SkipAltRows, rm.SkipAltCols, rm.RowStride, rm.ColStride)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrRoomCodeExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rm.ID = uint64(id)

	const qSelect = `SELECT ` + roomColumns + ` FROM rooms WHERE id = ?`
	return scanRoom(r.db.QueryRowContext(ctx, qSelect, rm.ID), rm)
}

// GetByID retrieves a room by its ID.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*Room, error) {
	const q = `SELECT ` + roomColumns + ` FROM rooms WHERE id = ?`
	var rm Room
	if err := scanRoom(r.db.QueryRowContext(ctx, q, id), &rm); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &rm, nil
}

// GetByCode retrieves a room by its human-facing code.
func (r *RoomRepo) GetByCode(ctx context.Context, code string) (*Room, error) {
	const q = `SELECT ` + roomColumns + ` FROM rooms WHERE code = ?`
	var rm Room
	if err := scanRoom(r.db.QueryRowContext(ctx, q, strings.TrimSpace(code)), &rm); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &rm, nil
}

// List returns rooms ordered by code. When activeOnly is set, inactive
// rooms are filtered out; allocation runs always use activeOnly.
func (r *RoomRepo) List(ctx context.Context, activeOnly bool) ([]Room, error) {
	q := `SELECT ` + roomColumns + ` FROM rooms`
	if activeOnly {
		q += ` WHERE is_active = 1`
	}
	q += ` ORDER BY code`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Room
	for rows.Next() {
		var rm Room
		if err := scanRoom(rows, &rm); err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites a room's grid description and active flag. Returns
// sql.ErrNoRows when the room does not exist.
func (r *RoomRepo) Update(ctx context.Context, rm *Room) error {
	const q = `UPDATE rooms
	           SET code = ?, seat_rows = ?, seat_cols = ?, skip_alt_rows = ?, skip_alt_cols = ?,
	               row_stride = ?, col_stride = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q,
		rm.Code, rm.SeatRows, rm.SeatCols, rm.SkipAltRows, rm.SkipAltCols,
		rm.RowStride, rm.ColStride, rm.IsActive, rm.ID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrRoomCodeExists
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a room. MySQL rejects the delete with a foreign key error
// when assignments still reference it; callers translate that to ErrConflict.
func (r *RoomRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1451") {
			return ErrConflict
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
