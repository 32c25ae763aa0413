package database

import (
	"time"
)

// Student represents an enrolled student with their reference face embedding.
// Students are append-only: once created they are never mutated or deleted.
type Student struct {
	ID        int64
	Name      string
	Embedding []float32
	Dim       int
	CreatedAt time.Time
}

// StudentInfo is the public view of a student. Embeddings never leave the
// storage layer except through the matching engine.
type StudentInfo struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// AttendanceEvent records that a student was recognized at a point in time.
// The timestamp is assigned by the ledger, never supplied by clients.
type AttendanceEvent struct {
	ID        int64     `json:"id"`
	UID       string    `json:"uid"`
	StudentID int64     `json:"student_id"`
	CreatedAt time.Time `json:"created_at"`
}

// SummaryRow is one row of the attendance summary: a student and the
// timestamp of their most recent event, nil if they were never recognized.
type SummaryRow struct {
	StudentID int64      `json:"id"`
	Name      string     `json:"name"`
	LastSeen  *time.Time `json:"lastAttendance"`
}
