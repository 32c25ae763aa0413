package extractor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/embed/face", handler)
	return httptest.NewServer(mux)
}

func TestExtractFace(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Errorf("expected multipart form: %v", err)
		}
		if _, _, err := r.FormFile("file"); err != nil {
			t.Errorf("expected file part: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"faces_count": 1,
			"faces": []map[string]any{
				{"face_index": 0, "dim": 4, "embedding": []float32{0.1, 0.2, 0.3, 0.4}},
			},
			"model": "facenet",
		})
	})
	defer server.Close()

	client := NewHTTPClient(server.URL, "facenet")
	embedding, err := client.ExtractFace(context.Background(), []byte{0xFF, 0xD8, 0xFF, 0x00})
	if err != nil {
		t.Fatalf("ExtractFace failed: %v", err)
	}
	if len(embedding) != 4 {
		t.Fatalf("expected 4 values, got %d", len(embedding))
	}
	if embedding[0] != 0.1 {
		t.Errorf("expected first value 0.1, got %v", embedding[0])
	}
}

func TestExtractFaceNoFace(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"faces_count": 0,
			"faces":       []map[string]any{},
			"model":       "facenet",
		})
	})
	defer server.Close()

	client := NewHTTPClient(server.URL, "facenet")
	_, err := client.ExtractFace(context.Background(), []byte{0xFF, 0xD8, 0xFF, 0x00})
	if !errors.Is(err, ErrNoFaceDetected) {
		t.Errorf("expected ErrNoFaceDetected, got %v", err)
	}
}

func TestExtractFaceServerError(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	defer server.Close()

	client := NewHTTPClient(server.URL, "facenet")
	_, err := client.ExtractFace(context.Background(), []byte{0xFF, 0xD8, 0xFF, 0x00})
	if err == nil {
		t.Fatal("expected error for server failure")
	}
	if errors.Is(err, ErrNoFaceDetected) {
		t.Error("server failure must not be reported as no face detected")
	}
}

func TestExtractFaceEmptyEmbedding(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"faces_count": 1,
			"faces": []map[string]any{
				{"face_index": 0, "dim": 0, "embedding": []float32{}},
			},
		})
	})
	defer server.Close()

	client := NewHTTPClient(server.URL, "facenet")
	_, err := client.ExtractFace(context.Background(), []byte{0xFF, 0xD8, 0xFF, 0x00})
	if err == nil {
		t.Fatal("expected error for empty embedding")
	}
}

func TestDetectMIMEType(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected string
	}{
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0, 0, 0}, "image/jpeg"},
		{"png", []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, "image/png"},
		{"gif", []byte{0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0, 0}, "image/gif"},
		{"too short", []byte{0xFF}, "application/octet-stream"},
		{"unknown", []byte{0, 1, 2, 3, 4, 5, 6, 7}, "application/octet-stream"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := detectMIMEType(tc.data); got != tc.expected {
				t.Errorf("detectMIMEType = %s; want %s", got, tc.expected)
			}
		})
	}
}
