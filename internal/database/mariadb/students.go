package mariadb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shazabdullakc/Attendence-monitoring-system/internal/database"
)

// StudentRepository provides MariaDB-backed enrollment storage.
type StudentRepository struct {
	pool *Pool
}

// NewStudentRepository creates a new MariaDB student repository.
func NewStudentRepository(pool *Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

// encodeEmbedding serializes an embedding as a flat JSON array.
func encodeEmbedding(embedding []float32) (string, error) {
	data, err := json.Marshal(embedding)
	if err != nil {
		return "", fmt.Errorf("encode embedding: %w", err)
	}
	return string(data), nil
}

// decodeEmbedding parses a flat JSON array into an embedding.
func decodeEmbedding(text string) ([]float32, error) {
	var embedding []float32
	if err := json.Unmarshal([]byte(text), &embedding); err != nil {
		return nil, fmt.Errorf("decode embedding: %w", err)
	}
	return embedding, nil
}

// Create persists a new student and fills in the assigned id and timestamp.
func (r *StudentRepository) Create(ctx context.Context, student *database.Student) error {
	encoded, err := encodeEmbedding(student.Embedding)
	if err != nil {
		return err
	}

	res, err := r.pool.Exec(ctx,
		"INSERT INTO students (name, embedding, dim) VALUES (?, ?, ?)",
		student.Name, encoded, len(student.Embedding))
	if err != nil {
		return fmt.Errorf("insert student: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("get inserted student id: %w", err)
	}
	student.ID = id
	student.Dim = len(student.Embedding)

	err = r.pool.QueryRow(ctx, "SELECT created_at FROM students WHERE id = ?", id).Scan(&student.CreatedAt)
	if err != nil {
		return fmt.Errorf("read student timestamp: %w", err)
	}
	return nil
}

// Get retrieves a student by id.
func (r *StudentRepository) Get(ctx context.Context, id int64) (*database.Student, error) {
	var s database.Student
	var encoded string

	err := r.pool.QueryRow(ctx,
		"SELECT id, name, embedding, dim, created_at FROM students WHERE id = ?", id,
	).Scan(&s.ID, &s.Name, &encoded, &s.Dim, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, database.ErrStudentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query student: %w", err)
	}

	s.Embedding, err = decodeEmbedding(encoded)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Exists checks whether a student id is enrolled.
func (r *StudentRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM students WHERE id = ?)", id).Scan(&exists)
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
func (r *StudentRepository) All(ctx context.Context) ([]database.Student, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT id, name, embedding, dim, created_at FROM students ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("query students: %w", err)
	}
	defer rows.Close()

	var students []database.Student
	for rows.Next() {
		var s database.Student
		var encoded string
		if err := rows.Scan(&s.ID, &s.Name, &encoded, &s.Dim, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		s.Embedding, err = decodeEmbedding(encoded)
		if err != nil {
			return nil, err
		}
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
