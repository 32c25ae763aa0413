// Package recognizer implements identity matching: given a candidate face
// embedding it decides which enrolled student, if any, it belongs to.
package recognizer

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/shazabdullakc/Attendence-monitoring-system/internal/database"
)

// ErrNoMatch is returned when no enrolled student is within the threshold.
var ErrNoMatch = errors.New("no matching student")

// Match is a successful recognition result.
type Match struct {
	StudentID int64
	Name      string
	Distance  float64
}

// Engine matches candidate embeddings against the enrollment store.
type Engine struct {
	students  database.StudentReader
	threshold float64
}

// NewEngine creates a matching engine. The threshold is the maximum L2
// distance (exclusive) at which two embeddings count as the same person.
func NewEngine(students database.StudentReader, threshold float64) *Engine {
	return &Engine{students: students, threshold: threshold}
}

// Threshold returns the configured match threshold.
func (e *Engine) Threshold() float64 {
	return e.threshold
}

// Recognize scans every enrolled student in creation order and returns the
// FIRST one whose embedding is within the threshold of the candidate.
//
// This is deliberately not a nearest-neighbor search: an earlier-enrolled
// student within the threshold wins even when a later one is closer. The
// scan reads a snapshot of the store; students enrolled concurrently with
// an in-flight call may not be seen.
//
// A dimension mismatch between the candidate and any stored embedding
// aborts the scan with database.ErrDimensionMismatch. That means corrupted
// enrollment data and must never be reported as a plain no-match.
func (e *Engine) Recognize(ctx context.Context, candidate []float32) (*Match, error) {
	if len(candidate) == 0 {
		return nil, fmt.Errorf("candidate embedding is empty: %w", ErrNoMatch)
	}

	students, err := e.students.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load enrolled students: %w", err)
	}

	for i := range students {
		student := &students[i]
		distance, err := database.EuclideanDistance(student.Embedding, candidate)
		if err != nil {
			if errors.Is(err, database.ErrDimensionMismatch) {
				log.Printf("ERROR: embedding dimension mismatch for student %d: stored %d values, candidate %d",
					student.ID, len(student.Embedding), len(candidate))
			}
			return nil, fmt.Errorf("compare with student %d: %w", student.ID, err)
		}

		if distance < e.threshold {
			return &Match{StudentID: student.ID, Name: student.Name, Distance: distance}, nil
		}
	}

	return nil, ErrNoMatch
}
