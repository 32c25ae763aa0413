// Package roster is the enrollment store: it owns the set of enrolled
// students and their reference embeddings. Enrollment is append-only;
// students are never updated or deleted.
package roster

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shazabdullakc/Attendence-monitoring-system/internal/database"
)

// ErrInvalidInput is returned when an enrollment request is missing a name
// or an embedding, or carries an embedding of the wrong dimensionality.
var ErrInvalidInput = errors.New("invalid enrollment input")

// Service provides enrollment and roster listing.
type Service struct {
	students database.StudentWriter
	dim      int // expected embedding dimensionality, 0 disables the check
}

// NewService creates a roster service backed by the given student store.
func NewService(students database.StudentWriter, dim int) *Service {
	return &Service{students: students, dim: dim}
}

// Enroll validates and persists a new student. Names are not checked for
// uniqueness: two students may share a name and are distinct people by id.
func (s *Service) Enroll(ctx context.Context, name string, embedding []float32) (*database.Student, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(embedding) == 0 {
		return nil, fmt.Errorf("%w: embedding is required", ErrInvalidInput)
	}
	if s.dim > 0 && len(embedding) != s.dim {
		return nil, fmt.Errorf("%w: embedding has %d values, expected %d", ErrInvalidInput, len(embedding), s.dim)
	}

	student := &database.Student{Name: name, Embedding: embedding}
	if err := s.students.Create(ctx, student); err != nil {
		return nil, fmt.Errorf("enroll student: %w", err)
	}
	return student, nil
}

// List returns every enrolled student (id and name) in creation order.
// Embeddings stay inside the storage layer.
func (s *Service) List(ctx context.Context) ([]database.StudentInfo, error) {
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	if students == nil {
		students = []database.StudentInfo{}
	}
	return students, nil
}

// Search returns enrolled students whose normalized name contains the
// normalized query. An empty query returns the full roster.
func (s *Service) Search(ctx context.Context, query string) ([]database.StudentInfo, error) {
	students, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(query) == "" {
		return students, nil
	}

	normalized := NormalizeStudentName(query)
	matched := make([]database.StudentInfo, 0, len(students))
	for _, st := range students {
		if strings.Contains(NormalizeStudentName(st.Name), normalized) {
			matched = append(matched, st)
		}
	}
	return matched, nil
}

// Count returns the number of enrolled students.
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.students.Count(ctx)
}
