package repository

import (
	"context"
	"database/sql"
)

// Restriction pins one exam to one allowed room. An exam with no rows may
// use every room; an exam with rows may only use the listed ones.
type Restriction struct {
	ID       uint64
	ExamCode string
	RoomID   uint64
	RoomCode string // joined from rooms for read queries
}

// RestrictionRepo manages the exam -> allowed-rooms table.
type RestrictionRepo struct {
	db *sql.DB
}

func NewRestrictionRepo(db *sql.DB) *RestrictionRepo {
	return &RestrictionRepo{db: db}
}

// Replace swaps the allowed-room set of an exam atomically: existing rows
// are deleted and the new set inserted in one transaction. An empty roomIDs
// slice clears the restriction, returning the exam to "all rooms allowed".
func (r *RestrictionRepo) Replace(ctx context.Context, examCode string, roomIDs []uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM exam_restrictions WHERE exam_code = ?`, examCode); err != nil {
		return err
	}
	if len(roomIDs) > 0 {
		query := `INSERT INTO exam_restrictions (exam_code, room_id) VALUES `
		args := make([]interface{}, 0, len(roomIDs)*2)
		for i, id := range roomIDs {
			if i > 0 {
				query += ","
			}
			query += "(?, ?)"
			args = append(args, examCode, id)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Clear removes every restriction row of an exam, returning it to the
// unrestricted state.
func (r *RestrictionRepo) Clear(ctx context.Context, examCode string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM exam_restrictions WHERE exam_code = ?`, examCode)
	return err
}

// ListByExam returns the allowed rooms of one exam, joined with room codes.
func (r *RestrictionRepo) ListByExam(ctx context.Context, examCode string) ([]Restriction, error) {
	const q = `SELECT er.id, er.exam_code, er.room_id, rm.code
	           FROM exam_restrictions er
	           JOIN rooms rm ON rm.id = er.room_id
	           WHERE er.exam_code = ?
	           ORDER BY rm.code`
	return r.queryRestrictions(ctx, q, examCode)
}

// ListAll returns every restriction row ordered by exam then room code.
func (r *RestrictionRepo) ListAll(ctx context.Context) ([]Restriction, error) {
	const q = `SELECT er.id, er.exam_code, er.room_id, rm.code
	           FROM exam_restrictions er
	           JOIN rooms rm ON rm.id = er.room_id
	           ORDER BY er.exam_code, rm.code`
	return r.queryRestrictions(ctx, q)
}

// AllowedRoomCodes folds the restriction table into exam -> room codes, the
// shape the allocation engine consumes.
func (r *RestrictionRepo) AllowedRoomCodes(ctx context.Context) (map[string][]string, error) {
	all, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]string)
	for _, restr := range all {
		out[restr.ExamCode] = append(out[restr.ExamCode], restr.RoomCode)
	}
	return out, nil
}

func (r *RestrictionRepo) queryRestrictions(ctx context.Context, q string, args ...interface{}) ([]Restriction, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Restriction
	for rows.Next() {
		var restr Restriction
		if err := rows.Scan(&restr.ID, &restr.ExamCode, &restr.RoomID, &restr.RoomCode); err != nil {
			return nil, err
		}
		out = append(out, restr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
