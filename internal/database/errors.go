package database

import "errors"

var (
	// ErrStudentNotFound is returned when a student id does not exist.
	ErrStudentNotFound = errors.New("student not found")

	// ErrDimensionMismatch is returned when two embeddings of different
	// lengths are compared. This indicates corrupted data, not a failed
	// match, and callers must surface it distinctly.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)
