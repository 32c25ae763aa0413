package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/shazabdullakc/Attendence-monitoring-system/internal/database"
)

// AttendanceRepository provides PostgreSQL-backed attendance event storage.
type AttendanceRepository struct {
	pool *Pool
}

// NewAttendanceRepository creates a new PostgreSQL attendance repository.
func NewAttendanceRepository(pool *Pool) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

// Insert appends an attendance event and fills in the assigned id and
// timestamp. The foreign key guarantees the referenced student exists.
func (r *AttendanceRepository) Insert(ctx context.Context, event *database.AttendanceEvent) error {
	query := `
		INSERT INTO attendance_events (uid, student_id)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query, event.UID, event.StudentID).Scan(&event.ID, &event.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return database.ErrStudentNotFound
		}
		return fmt.Errorf("insert attendance event: %w", err)
	}
	return nil
}

// LatestPerStudent returns one summary row per enrolled student, including
// students without any events. Row order follows student creation order.
func (r *AttendanceRepository) LatestPerStudent(ctx context.Context) ([]database.SummaryRow, error) {
	query := `
		SELECT s.id, s.name, MAX(e.created_at)
		FROM students s
		LEFT JOIN attendance_events e ON e.student_id = s.id
		GROUP BY s.id, s.name
		ORDER BY s.id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query attendance summary: %w", err)
	}
	defer rows.Close()

	var summary []database.SummaryRow
	for rows.Next() {
		var row database.SummaryRow
		var last sql.NullTime
		if err := rows.Scan(&row.StudentID, &row.Name, &last); err != nil {
			return nil, fmt.Errorf("scan summary row: %w", err)
		}
		if last.Valid {
			t := last.Time
			row.LastSeen = &t
		}
		summary = append(summary, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate summary rows: %w", err)
	}

	return summary, nil
}

// ListByStudent returns all events for a student, newest first.
func (r *AttendanceRepository) ListByStudent(ctx context.Context, studentID int64) ([]database.AttendanceEvent, error) {
	query := `
		SELECT id, uid, student_id, created_at
		FROM attendance_events
		WHERE student_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.pool.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("query attendance events: %w", err)
	}
	defer rows.Close()

	var events []database.AttendanceEvent
	for rows.Next() {
		var e database.AttendanceEvent
		if err := rows.Scan(&e.ID, &e.UID, &e.StudentID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan attendance event: %w", err)
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attendance events: %w", err)
	}

	return events, nil
}

// Count returns the total number of recorded events.
func (r *AttendanceRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM attendance_events").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count attendance events: %w", err)
	}
	return count, nil
}
