package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pgvector/pgvector-go"
	"github.com/shazabdullakc/Attendence-monitoring-system/internal/database"
)

// StudentRepository provides PostgreSQL-backed enrollment storage.
type StudentRepository struct {
	pool *Pool
}

// NewStudentRepository creates a new PostgreSQL student repository.
func NewStudentRepository(pool *Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

// Create persists a new student and fills in the assigned id and timestamp.
func (r *StudentRepository) Create(ctx context.Context, student *database.Student) error {
	query := `
		INSERT INTO students (name, embedding, dim)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query,
		student.Name,
		pgvector.NewVector(student.Embedding),
		len(student.Embedding),
	).Scan(&student.ID, &student.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert student: %w", err)
	}
	student.Dim = len(student.Embedding)
	return nil
}

// Get retrieves a student by id.
func (r *StudentRepository) Get(ctx context.Context, id int64) (*database.Student, error) {
	query := `
		SELECT id, name, embedding, dim, created_at
		FROM students
		WHERE id = $1
	`

	var s database.Student
	var vec pgvector.Vector

	err := r.pool.QueryRow(ctx, query, id).Scan(&s.ID, &s.Name, &vec, &s.Dim, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, database.ErrStudentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query student: %w", err)
	}

	s.Embedding = vec.Slice()
	return &s, nil
}

// Exists checks whether a student id is enrolled.
func (r *StudentRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM students WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check student exists: %w", err)
	}
	return exists, nil
}

// List returns id and name of every student in creation order.
func (r *StudentRepository) List(ctx context.Context) ([]database.StudentInfo, error) {
	rows, err := r.pool.Query(ctx, "SELECT id, name FROM students ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("query students: %w", err)
	}
	defer rows.Close()

	var students []database.StudentInfo
	for rows.Next() {
		var s database.StudentInfo
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		students = append(students, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate students: %w", err)
	}

	return students, nil
}

// All returns every student including embeddings, ordered by id ascending.
// The matching engine scans in exactly this order.
func (r *StudentRepository) All(ctx context.Context) ([]database.Student, error) {
	query := `
		SELECT id, name, embedding, dim, created_at
		FROM students
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query students: %w", err)
	}
	defer rows.Close()

	var students []database.Student
	for rows.Next() {
		var s database.Student
		var vec pgvector.Vector
		if err := rows.Scan(&s.ID, &s.Name, &vec, &s.Dim, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		s.Embedding = vec.Slice()
		students = append(students, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate students: %w", err)
	}

	return students, nil
}

// Count returns the total number of enrolled students.
func (r *StudentRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM students").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count students: %w", err)
	}
	return count, nil
}
