package repository // repository defines data access for students

import (
	"context"      // context allows query cancellation and timeouts
	"database/sql" // sql provides DB primitives
	"errors"       // errors for sentinel definitions
	"strings"
	"time"
)

// Student represents one examinee. Code is the external student number used
// everywhere outside the database; ExamCode names the exam they sit.
type Student struct {
	ID        uint64 // primary key
	Code      string // external student number, unique
	FullName  string
	ExamCode  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ErrStudentNotFound is returned when a student lookup yields no rows.
var ErrStudentNotFound = errors.New("student not found")

// ErrStudentCodeExists is returned on a duplicate student number.
var ErrStudentCodeExists = errors.New("student code already exists")

// StudentRepo provides methods to work with students in the database.
type StudentRepo struct {
	db *sql.DB
}

// NewStudentRepo constructs a StudentRepo with the given DB handle.
func NewStudentRepo(db *sql.DB) *StudentRepo {
	return &StudentRepo{db: db}
}

// Create inserts a single student record. On success the ID is populated.
func (r *StudentRepo) Create(ctx context.Context, s *Student) error {
	const q = `INSERT INTO students (code, full_name, exam_code) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.Code, s.FullName, s.ExamCode)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrStudentCodeExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// CreateBulk inserts multiple students in a single statement. Used by the
// roster import endpoint.
func (r *StudentRepo) CreateBulk(ctx context.Context, students []Student) error {
	if len(students) == 0 {
		return nil
	}
	query := `INSERT INTO students (code, full_name, exam_code) VALUES `
	args := make([]interface{}, 0, len(students)*3)
	for i, s := range students {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?)"
		args = append(args, s.Code, s.FullName, s.ExamCode)
	}
	_, err := r.db.ExecContext(ctx, query, args...)
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "1062") {
		return ErrStudentCodeExists
	}
	return err
}

// GetByID retrieves a student by primary key.
func (r *StudentRepo) GetByID(ctx context.Context, id uint64) (*Student, error) {
	const q = `SELECT id, code, full_name, exam_code, created_at, updated_at FROM students WHERE id = ?`
	var s Student
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&s.ID, &s.Code, &s.FullName, &s.ExamCode, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return &s, nil
}

// GetByCode retrieves a student by student number.
func (r *StudentRepo) GetByCode(ctx context.Context, code string) (*Student, error) {
	const q = `SELECT id, code, full_name, exam_code, created_at, updated_at FROM students WHERE code = ?`
	var s Student
	err := r.db.QueryRowContext(ctx, q, strings.TrimSpace(code)).
		Scan(&s.ID, &s.Code, &s.FullName, &s.ExamCode, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return &s, nil
}

// List returns students ordered by code. A non-empty examCode filters to one
// exam.
func (r *StudentRepo) List(ctx context.Context, examCode string) ([]Student, error) {
	q := `SELECT id, code, full_name, exam_code, created_at, updated_at FROM students`
	var args []interface{}
	if examCode != "" {
		q += ` WHERE exam_code = ?`
		args = append(args, examCode)
	}
	q += ` ORDER BY code`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Student
	for rows.Next() {
		var s Student
		if err := rows.Scan(&s.ID, &s.Code, &s.FullName, &s.ExamCode, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites a student's mutable fields. Returns sql.ErrNoRows when not
// found.
func (r *StudentRepo) Update(ctx context.Context, s *Student) error {
	const q = `UPDATE students
	           SET code = ?, full_name = ?, exam_code = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, s.Code, s.FullName, s.ExamCode, s.ID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrStudentCodeExists
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a student. A foreign key error from existing assignments is
// surfaced as ErrConflict.
func (r *StudentRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM students WHERE id = ?`, id)
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
