package database

import (
	"context"
)

// StudentReader provides read-only access to enrolled students
type StudentReader interface {
	// Get retrieves a student by id, returns ErrStudentNotFound if missing
	Get(ctx context.Context, id int64) (*Student, error)
	// Exists checks whether a student id is enrolled
	Exists(ctx context.Context, id int64) (bool, error)
	// List returns id and name of every student in creation order
	List(ctx context.Context) ([]StudentInfo, error)
	// All returns every student including embeddings, in creation order.
	// The matching engine depends on this ordering for its scan.
	All(ctx context.Context) ([]Student, error)
	// Count returns the total number of enrolled students
	Count(ctx context.Context) (int, error)
}

// StudentWriter provides write access to the enrollment store
type StudentWriter interface {
	StudentReader

	// Create persists a new student and fills in the assigned id and
	// creation timestamp. Insertion is atomic: the student either fully
	// exists with its embedding or does not exist.
	Create(ctx context.Context, student *Student) error
}

// AttendanceReader provides read-only access to the attendance ledger
type AttendanceReader interface {
	// LatestPerStudent returns one row per enrolled student with the
	// timestamp of their most recent event (nil for students never seen)
	LatestPerStudent(ctx context.Context) ([]SummaryRow, error)
	// ListByStudent returns all events for a student, newest first
	ListByStudent(ctx context.Context, studentID int64) ([]AttendanceEvent, error)
	// Count returns the total number of recorded events
	Count(ctx context.Context) (int, error)
}

// AttendanceWriter provides write access to the attendance ledger
type AttendanceWriter interface {
	AttendanceReader

	// Insert appends an event and fills in the assigned id. The referenced
	// student must exist; implementations return ErrStudentNotFound otherwise.
	Insert(ctx context.Context, event *AttendanceEvent) error
}
