package recognizer

import (
	"context"
	"errors"
	"testing"

	"github.com/shazabdullakc/Attendence-monitoring-system/internal/database"
	"github.com/shazabdullakc/Attendence-monitoring-system/internal/database/mock"
)

const testThreshold = 10.0

func setupEngine(t *testing.T) (*Engine, *mock.MockStudentStore) {
	t.Helper()
	store := mock.NewMockStudentStore()
	return NewEngine(store, testThreshold), store
}

func enroll(t *testing.T, store *mock.MockStudentStore, name string, embedding []float32) *database.Student {
	t.Helper()
	student := &database.Student{Name: name, Embedding: embedding}
	if err := store.Create(context.Background(), student); err != nil {
		t.Fatalf("failed to enroll %s: %v", name, err)
	}
	return student
}

func TestRecognizeRoundTrip(t *testing.T) {
	// Enrolling an embedding and matching with exactly the same embedding
	// must always succeed, for any embedding (distance 0 < threshold).
	engine, store := setupEngine(t)

	embeddings := [][]float32{
		{0, 0, 0, 0},
		{1, -2, 3.5, 1e6},
		{-42.5, 0.001, 7, -7},
	}
	for i, e := range embeddings {
		student := enroll(t, store, "Student", e)
		match, err := engine.Recognize(context.Background(), e)
		if err != nil {
			t.Fatalf("case %d: Recognize failed: %v", i, err)
		}
		if match.StudentID != student.ID {
			t.Errorf("case %d: expected student %d, got %d", i, student.ID, match.StudentID)
		}
		if match.Distance != 0 {
			t.Errorf("case %d: expected distance 0, got %v", i, match.Distance)
		}
	}
}

func TestRecognizeEmptyStore(t *testing.T) {
	engine, _ := setupEngine(t)

	_, err := engine.Recognize(context.Background(), []float32{1, 2, 3, 4})
	if !errors.Is(err, ErrNoMatch) {
		t.Errorf("expected ErrNoMatch for empty store, got %v", err)
	}
}

func TestRecognizeThresholdBoundary(t *testing.T) {
	// The threshold is strict: distance exactly equal to it is NOT a match.
	engine, store := setupEngine(t)
	enroll(t, store, "Alice", []float32{0, 0, 0, 0})

	// Distance exactly testThreshold.
	_, err := engine.Recognize(context.Background(), []float32{testThreshold, 0, 0, 0})
	if !errors.Is(err, ErrNoMatch) {
		t.Errorf("expected ErrNoMatch at exact threshold distance, got %v", err)
	}

	// Just inside the threshold.
	match, err := engine.Recognize(context.Background(), []float32{testThreshold - 0.001, 0, 0, 0})
	if err != nil {
		t.Fatalf("expected match just inside threshold: %v", err)
	}
	if match.Name != "Alice" {
		t.Errorf("expected Alice, got %s", match.Name)
	}
}

func TestRecognizeSeparatedStudents(t *testing.T) {
	// Two students farther apart than the threshold: each is recognized
	// from their own embedding, and a candidate shifted halfway toward the
	// other but still closer to its owner resolves correctly.
	engine, store := setupEngine(t)

	v1 := []float32{0, 0, 0, 0}
	v2 := []float32{30, 0, 0, 0} // |v1 - v2| = 30 > threshold
	alice := enroll(t, store, "Alice", v1)
	bob := enroll(t, store, "Bob", v2)

	match, err := engine.Recognize(context.Background(), v1)
	if err != nil {
		t.Fatalf("Recognize(v1) failed: %v", err)
	}
	if match.StudentID != alice.ID {
		t.Errorf("expected Alice for v1, got student %d", match.StudentID)
	}

	match, err = engine.Recognize(context.Background(), v2)
	if err != nil {
		t.Fatalf("Recognize(v2) failed: %v", err)
	}
	if match.StudentID != bob.ID {
		t.Errorf("expected Bob for v2, got student %d", match.StudentID)
	}

	// v1 shifted toward v2 by half the threshold, still well within Alice's range.
	shifted := []float32{0.5 * testThreshold, 0, 0, 0}
	match, err = engine.Recognize(context.Background(), shifted)
	if err != nil {
		t.Fatalf("Recognize(shifted) failed: %v", err)
	}
	if match.StudentID != alice.ID {
		t.Errorf("expected Alice for shifted candidate, got student %d", match.StudentID)
	}
}

func TestRecognizeFirstMatchWins(t *testing.T) {
	// When a candidate is within the threshold of several students, the one
	// enrolled first wins even if a later one is strictly closer. The scan
	// stops at the first hit in creation order.
	engine, store := setupEngine(t)

	v1 := []float32{0, 0, 0, 0}
	v2 := []float32{6, 0, 0, 0}
	a := enroll(t, store, "A", v1)
	enroll(t, store, "B", v2)

	// Candidate at distance 5 from A and distance 1 from B, inside the
	// threshold for both. B is closer, A was enrolled first.
	candidate := []float32{5, 0, 0, 0}

	match, err := engine.Recognize(context.Background(), candidate)
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}
	if match.StudentID != a.ID {
		t.Errorf("expected first-enrolled A to shadow closer B, got student %d", match.StudentID)
	}
	if match.Name != "A" {
		t.Errorf("expected name A, got %s", match.Name)
	}
}

func TestRecognizeNoMatchBeyondThreshold(t *testing.T) {
	engine, store := setupEngine(t)
	enroll(t, store, "Alice", []float32{0, 0, 0, 0})

	_, err := engine.Recognize(context.Background(), []float32{100, 100, 100, 100})
	if !errors.Is(err, ErrNoMatch) {
		t.Errorf("expected ErrNoMatch, got %v", err)
	}
}

func TestRecognizeDimensionMismatch(t *testing.T) {
	engine, store := setupEngine(t)
	enroll(t, store, "Alice", []float32{0, 0, 0, 0})

	_, err := engine.Recognize(context.Background(), []float32{0, 0})
	if !errors.Is(err, database.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
	if errors.Is(err, ErrNoMatch) {
		t.Error("dimension mismatch must be distinguishable from no-match")
	}
}

func TestRecognizeEmptyCandidate(t *testing.T) {
	engine, store := setupEngine(t)
	enroll(t, store, "Alice", []float32{0, 0, 0, 0})

	_, err := engine.Recognize(context.Background(), nil)
	if !errors.Is(err, ErrNoMatch) {
		t.Errorf("expected ErrNoMatch for empty candidate, got %v", err)
	}
}

func TestRecognizeStoreError(t *testing.T) {
	store := mock.NewMockStudentStore()
	store.AllError = errors.New("db down")
	engine := NewEngine(store, testThreshold)

	_, err := engine.Recognize(context.Background(), []float32{1})
	if err == nil || errors.Is(err, ErrNoMatch) {
		t.Errorf("expected store error to propagate, got %v", err)
	}
}
