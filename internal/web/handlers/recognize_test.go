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

func TestRecognize(t *testing.T) {
	ext := &fakeExtractor{embedding: []float32{1, 2, 3, 4}}
	h, _, events := testHandlers(ext)

	student, err := h.roster.Enroll(context.Background(), "Alice", []float32{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("Enroll() error = %v", err)
	}

	body := fmt.Sprintf(`{"image": %q}`, testImagePayload(t))
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/recognize", strings.NewReader(body))
	h.Recognize(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d, body %s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp recognizeResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.ID != student.ID {
		t.Errorf("ID = %d, want %d", resp.ID, student.ID)
	}
	if resp.Name != "Alice" {
		t.Errorf("Name = %s, want Alice", resp.Name)
	}
	if resp.EventUID == "" {
		t.Error("EventUID is empty")
	}

	count, _ := events.Count(context.Background())
	if count != 1 {
		t.Errorf("event count = %d, want 1", count)
	}
}

func TestRecognize_EmptyStore(t *testing.T) {
	h, _, events := testHandlers(&fakeExtractor{embedding: []float32{1, 2, 3, 4}})

	body := fmt.Sprintf(`{"image": %q}`, testImagePayload(t))
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/recognize", strings.NewReader(body))
	h.Recognize(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	var resp struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Error != "face not recognized" {
		t.Errorf("Error = %q, want %q", resp.Error, "face not recognized")
	}

	count, _ := events.Count(context.Background())
	if count != 0 {
		t.Errorf("event count = %d, want 0 after failed recognition", count)
	}
}

func TestRecognize_NoMatch(t *testing.T) {
	// Candidate far beyond the threshold from the only enrolled student.
	h, _, events := testHandlers(&fakeExtractor{embedding: []float32{100, 100, 100, 100}})

	if _, err := h.roster.Enroll(context.Background(), "Alice", []float32{1, 2, 3, 4}); err != nil {
		t.Fatalf("Enroll() error = %v", err)
	}

	body := fmt.Sprintf(`{"image": %q}`, testImagePayload(t))
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/recognize", strings.NewReader(body))
	h.Recognize(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	count, _ := events.Count(context.Background())
	if count != 0 {
		t.Errorf("event count = %d, want 0", count)
	}
}

func TestRecognize_DimensionMismatch(t *testing.T) {
	// Extractor returns a different dimension than the stored embeddings.
	h, _, _ := testHandlers(&fakeExtractor{embedding: []float32{1, 2}})

	if _, err := h.roster.Enroll(context.Background(), "Alice", []float32{1, 2, 3, 4}); err != nil {
		t.Fatalf("Enroll() error = %v", err)
	}

	body := fmt.Sprintf(`{"image": %q}`, testImagePayload(t))
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/recognize", strings.NewReader(body))
	h.Recognize(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
}

func TestRecognize_NoFaceDetected(t *testing.T) {
	h, _, _ := testHandlers(&fakeExtractor{err: extractor.ErrNoFaceDetected})

	body := fmt.Sprintf(`{"image": %q}`, testImagePayload(t))
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/recognize", strings.NewReader(body))
	h.Recognize(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestRecognize_MissingImage(t *testing.T) {
	h, _, _ := testHandlers(&fakeExtractor{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/recognize", strings.NewReader(`{}`))
	h.Recognize(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}
