package engine

import "fmt"

// CapacityError reports a roster that cannot fit: either globally (Exam is
// empty) or within the rooms one exam is allowed to use.
type CapacityError struct {
	Exam     string
	Students int
	Seats    int
}

func (e *CapacityError) Error() string {
	if e.Exam == "" {
		return fmt.Sprintf("insufficient capacity: %d students, %d seats", e.Students, e.Seats)
	}
	return fmt.Sprintf("insufficient capacity for exam %q: %d students, %d eligible seats", e.Exam, e.Students, e.Seats)
}

// EligibilityError reports an exam whose room restrictions exclude every
// supplied room.
type EligibilityError struct {
	Exam string
}

func (e *EligibilityError) Error() string {
	return fmt.Sprintf("exam %q has no eligible room", e.Exam)
}

// PlacementError reports a student the greedy placer could not seat in any
// eligible room without an adjacency conflict.
type PlacementError struct {
	Student string
	Exam    string
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("no valid seat for student %q (exam %q)", e.Student, e.Exam)
}
