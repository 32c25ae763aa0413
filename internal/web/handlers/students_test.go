package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shazabdullakc/Attendence-monitoring-system/internal/extractor"
)

func TestListStudents_Empty(t *testing.T) {
	h, _, _ := testHandlers(&fakeExtractor{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/students", nil)
	h.ListStudents(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
	}
	if body := strings.TrimSpace(w.Body.String()); body != "[]" {
		t.Errorf("Body = %s, want empty array", body)
	}
}

func TestListStudents(t *testing.T) {
	h, _, _ := testHandlers(&fakeExtractor{})

	for _, name := range []string{"Alice", "Bob"} {
		if _, err := h.roster.Enroll(context.Background(), name, []float32{1, 2, 3, 4}); err != nil {
			t.Fatalf("Enroll(%s) error = %v", name, err)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/students", nil)
	h.ListStudents(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
	}

	var students []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	if err := json.NewDecoder(w.Body).Decode(&students); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(students) != 2 {
		t.Fatalf("got %d students, want 2", len(students))
	}
	if students[0].Name != "Alice" || students[1].Name != "Bob" {
		t.Errorf("students out of enrollment order: %+v", students)
	}
}

func TestListStudents_Search(t *testing.T) {
	h, _, _ := testHandlers(&fakeExtractor{})

	for _, name := range []string{"Tomáš Novák", "Alice Wonder"} {
		if _, err := h.roster.Enroll(context.Background(), name, []float32{1, 2, 3, 4}); err != nil {
			t.Fatalf("Enroll(%s) error = %v", name, err)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/students?q=tomas", nil)
	h.ListStudents(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
	}

	var students []struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(w.Body).Decode(&students); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(students) != 1 || students[0].Name != "Tomáš Novák" {
		t.Errorf("search result = %+v, want Tomáš Novák only", students)
	}
}

func TestAddStudent(t *testing.T) {
	h, students, _ := testHandlers(&fakeExtractor{embedding: []float32{1, 2, 3, 4}})

	body := fmt.Sprintf(`{"name": "Alice", "image": %q}`, testImagePayload(t))
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/add_student", strings.NewReader(body))
	h.AddStudent(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Status = %d, want %d, body %s", w.Code, http.StatusCreated, w.Body.String())
	}

	var resp struct {
		Message string `json:"message"`
		ID      int64  `json:"id"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.ID == 0 {
		t.Error("response ID is zero")
	}

	count, _ := students.Count(context.Background())
	if count != 1 {
		t.Errorf("store count = %d, want 1", count)
	}
}

func TestAddStudent_InvalidBody(t *testing.T) {
	h, _, _ := testHandlers(&fakeExtractor{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/add_student", strings.NewReader("{not json"))
	h.AddStudent(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestAddStudent_MissingFields(t *testing.T) {
	h, students, _ := testHandlers(&fakeExtractor{embedding: []float32{1, 2, 3, 4}})

	tests := []string{
		`{"name": "", "image": "aGVsbG8="}`,
		`{"name": "Alice", "image": ""}`,
		`{}`,
	}

	for _, body := range tests {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/add_student", strings.NewReader(body))
		h.AddStudent(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("body %s: Status = %d, want %d", body, w.Code, http.StatusBadRequest)
		}
	}

	count, _ := students.Count(context.Background())
	if count != 0 {
		t.Errorf("store count = %d, want 0 after rejected enrollments", count)
	}
}

func TestAddStudent_InvalidBase64(t *testing.T) {
	h, _, _ := testHandlers(&fakeExtractor{embedding: []float32{1, 2, 3, 4}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/add_student",
		strings.NewReader(`{"name": "Alice", "image": "%%%not-base64%%%"}`))
	h.AddStudent(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestAddStudent_NoFaceDetected(t *testing.T) {
	h, students, _ := testHandlers(&fakeExtractor{err: extractor.ErrNoFaceDetected})

	body := fmt.Sprintf(`{"name": "Alice", "image": %q}`, testImagePayload(t))
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/add_student", strings.NewReader(body))
	h.AddStudent(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	count, _ := students.Count(context.Background())
	if count != 0 {
		t.Errorf("store count = %d, want 0 when no face detected", count)
	}
}

func TestAddStudent_ExtractorDown(t *testing.T) {
	h, _, _ := testHandlers(&fakeExtractor{err: fmt.Errorf("connection refused")})

	body := fmt.Sprintf(`{"name": "Alice", "image": %q}`, testImagePayload(t))
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/add_student", strings.NewReader(body))
	h.AddStudent(w, req)

	if w.Code != http.StatusBadGateway {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusBadGateway)
	}
}
