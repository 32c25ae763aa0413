// Package mock provides in-memory implementations of the database
// repository interfaces for testing.
package mock

import (
	"context"
	"sync"
	"time"

	"github.com/shazabdullakc/Attendence-monitoring-system/internal/database"
)

// MockStudentStore is an in-memory implementation of database.StudentWriter
type MockStudentStore struct {
	mu       sync.RWMutex
	students []database.Student
	nextID   int64

	// Error injection
	CreateError error
	GetError    error
	ListError   error
	AllError    error
	CountError  error
	ExistsError error
}

// NewMockStudentStore creates a new mock student store
func NewMockStudentStore() *MockStudentStore {
	return &MockStudentStore{nextID: 1}
}

// Create assigns the next monotonic id and stores the student
func (m *MockStudentStore) Create(ctx context.Context, student *database.Student) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	student.ID = m.nextID
	m.nextID++
	student.Dim = len(student.Embedding)
	student.CreatedAt = time.Now()
	m.students = append(m.students, *student)
	return nil
}

// Get retrieves a student by id
func (m *MockStudentStore) Get(ctx context.Context, id int64) (*database.Student, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.students {
		if m.students[i].ID == id {
			s := m.students[i]
			return &s, nil
		}
	}
	return nil, database.ErrStudentNotFound
}

// Exists checks whether a student id is enrolled
func (m *MockStudentStore) Exists(ctx context.Context, id int64) (bool, error) {
	if m.ExistsError != nil {
		return false, m.ExistsError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.students {
		if m.students[i].ID == id {
			return true, nil
		}
	}
	return false, nil
}

// List returns id and name of every student in creation order
func (m *MockStudentStore) List(ctx context.Context) ([]database.StudentInfo, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	infos := make([]database.StudentInfo, 0, len(m.students))
	for i := range m.students {
		infos = append(infos, database.StudentInfo{ID: m.students[i].ID, Name: m.students[i].Name})
	}
	return infos, nil
}

// All returns every student including embeddings, in creation order
func (m *MockStudentStore) All(ctx context.Context) ([]database.Student, error) {
	if m.AllError != nil {
		return nil, m.AllError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]database.Student, len(m.students))
	copy(out, m.students)
	return out, nil
}

// Count returns the total number of students
func (m *MockStudentStore) Count(ctx context.Context) (int, error) {
	if m.CountError != nil {
		return 0, m.CountError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.students), nil
}

// MockAttendanceStore is an in-memory implementation of database.AttendanceWriter.
// It needs a student lookup to enforce referential integrity, matching the
// foreign key behavior of the SQL backends.
type MockAttendanceStore struct {
	mu       sync.RWMutex
	events   []database.AttendanceEvent
	nextID   int64
	students database.StudentReader

	// Error injection
	InsertError error
	LatestError error
	ListError   error
	CountError  error
}

// NewMockAttendanceStore creates a new mock attendance store
func NewMockAttendanceStore(students database.StudentReader) *MockAttendanceStore {
	return &MockAttendanceStore{nextID: 1, students: students}
}

// Insert appends an event after verifying the student exists
func (m *MockAttendanceStore) Insert(ctx context.Context, event *database.AttendanceEvent) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	exists, err := m.students.Exists(ctx, event.StudentID)
	if err != nil {
		return err
	}
	if !exists {
		return database.ErrStudentNotFound
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	event.ID = m.nextID
	m.nextID++
	event.CreatedAt = time.Now()
	m.events = append(m.events, *event)
	return nil
}

// LatestPerStudent returns one row per student with the latest event timestamp
func (m *MockAttendanceStore) LatestPerStudent(ctx context.Context) ([]database.SummaryRow, error) {
	if m.LatestError != nil {
		return nil, m.LatestError
	}
	infos, err := m.students.List(ctx)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	latest := make(map[int64]time.Time)
	for i := range m.events {
		e := &m.events[i]
		if cur, ok := latest[e.StudentID]; !ok || e.CreatedAt.After(cur) {
			latest[e.StudentID] = e.CreatedAt
		}
	}

	rows := make([]database.SummaryRow, 0, len(infos))
	for _, info := range infos {
		row := database.SummaryRow{StudentID: info.ID, Name: info.Name}
		if ts, ok := latest[info.ID]; ok {
			t := ts
			row.LastSeen = &t
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ListByStudent returns all events for a student, newest first
func (m *MockAttendanceStore) ListByStudent(ctx context.Context, studentID int64) ([]database.AttendanceEvent, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var events []database.AttendanceEvent
	// Stored in insertion order; walk backwards for newest first.
	for i := len(m.events) - 1; i >= 0; i-- {
		if m.events[i].StudentID == studentID {
			events = append(events, m.events[i])
		}
	}
	return events, nil
}

// Count returns the total number of events
func (m *MockAttendanceStore) Count(ctx context.Context) (int, error) {
	if m.CountError != nil {
		return 0, m.CountError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.events), nil
}
