package handlers

import (
	"context"
	"encoding/base64"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/shazabdullakc/Attendence-monitoring-system/internal/attendance"
	"github.com/shazabdullakc/Attendence-monitoring-system/internal/database/mock"
	"github.com/shazabdullakc/Attendence-monitoring-system/internal/recognizer"
	"github.com/shazabdullakc/Attendence-monitoring-system/internal/roster"
)

const testEmbeddingDim = 4

// fakeExtractor returns a fixed embedding or error without calling any service.
type fakeExtractor struct {
	embedding []float32
	err       error
}

func (f *fakeExtractor) ExtractFace(ctx context.Context, imageData []byte) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.embedding, nil
}

// testHandlers wires the handler set against in-memory stores.
func testHandlers(ext *fakeExtractor) (*Handlers, *mock.MockStudentStore, *mock.MockAttendanceStore) {
	students := mock.NewMockStudentStore()
	events := mock.NewMockAttendanceStore(students)

	h := New(
		roster.NewService(students, testEmbeddingDim),
		recognizer.NewEngine(students, 10.0),
		attendance.NewLedger(events),
		students,
		ext,
	)
	return h, students, events
}

// requestWithChiParams creates a request with chi URL parameters
func requestWithChiParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// testImagePayload returns a base64 payload that decodes successfully.
// The bytes are not a real photo; the fake extractor never inspects them.
func testImagePayload(t *testing.T) string {
	t.Helper()
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte("not-a-real-jpeg"))
}
