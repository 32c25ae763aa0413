// Package attendance is the append-only ledger of recognition events.
// Every successful recognition adds one event; events are never mutated,
// deduplicated, or deleted.
package attendance

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shazabdullakc/Attendence-monitoring-system/internal/database"
)

// ErrUnknownStudent is returned when an event is requested for an id that
// was never enrolled.
var ErrUnknownStudent = errors.New("unknown student")

// Ledger records and reports attendance events.
type Ledger struct {
	events database.AttendanceWriter
}

// NewLedger creates a ledger backed by the given event store.
func NewLedger(events database.AttendanceWriter) *Ledger {
	return &Ledger{events: events}
}

// Record appends an event for the student, stamped with the current instant
// by the storage layer. There is no dedup window: recording twice in the
// same second produces two events.
func (l *Ledger) Record(ctx context.Context, studentID int64) (*database.AttendanceEvent, error) {
	event := &database.AttendanceEvent{
		UID:       uuid.New().String(),
		StudentID: studentID,
	}

	if err := l.events.Insert(ctx, event); err != nil {
		if errors.Is(err, database.ErrStudentNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrUnknownStudent, studentID)
		}
		return nil, fmt.Errorf("record attendance event: %w", err)
	}
	return event, nil
}

// Summary returns one row per enrolled student with the timestamp of their
// most recent event; students never recognized have a nil timestamp.
func (l *Ledger) Summary(ctx context.Context) ([]database.SummaryRow, error) {
	rows, err := l.events.LatestPerStudent(ctx)
	if err != nil {
		return nil, fmt.Errorf("attendance summary: %w", err)
	}
	if rows == nil {
		rows = []database.SummaryRow{}
	}
	return rows, nil
}

// History returns the full event log for one student, newest first.
func (l *Ledger) History(ctx context.Context, studentID int64) ([]database.AttendanceEvent, error) {
	events, err := l.events.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("attendance history: %w", err)
	}
	if events == nil {
		events = []database.AttendanceEvent{}
	}
	return events, nil
}
