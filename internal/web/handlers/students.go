package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/shazabdullakc/Attendence-monitoring-system/internal/constants"
	"github.com/shazabdullakc/Attendence-monitoring-system/internal/extractor"
	"github.com/shazabdullakc/Attendence-monitoring-system/internal/roster"
)

// addStudentRequest is the request body for enrolling a new student.
// Image is a base64 encoded photo, with or without a data URL prefix.
type addStudentRequest struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// ListStudents handles GET /api/students.
// An optional ?q= parameter filters by name, diacritics-insensitive.
func (h *Handlers) ListStudents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	var err error
	var students any
	if query != "" {
		students, err = h.roster.Search(r.Context(), query)
	} else {
		students, err = h.roster.List(r.Context())
	}
	if err != nil {
		log.Printf("Failed to list students: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to list students")
		return
	}

	respondJSON(w, http.StatusOK, students)
}

// AddStudent handles POST /api/add_student.
// It decodes the photo, extracts a face embedding and enrolls the student.
func (h *Handlers) AddStudent(w http.ResponseWriter, r *http.Request) {
	var req addStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	if req.Name == "" || req.Image == "" {
		respondError(w, http.StatusBadRequest, "name and image are required")
		return
	}

	imageData, err := extractor.DecodeBase64Image(req.Image)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid image encoding")
		return
	}

	// Large photos slow the embedding service down without improving accuracy.
	resized, err := extractor.ResizeImage(imageData, constants.MaxImageSize)
	if err == nil {
		imageData = resized
	}

	embedding, err := h.extractor.ExtractFace(r.Context(), imageData)
	if err != nil {
		if errors.Is(err, extractor.ErrNoFaceDetected) {
			respondError(w, http.StatusBadRequest, "no face detected in image")
			return
		}
		log.Printf("Failed to extract face embedding: %v", err)
		respondError(w, http.StatusBadGateway, "embedding service unavailable")
		return
	}

	student, err := h.roster.Enroll(r.Context(), req.Name, embedding)
	if err != nil {
		if errors.Is(err, roster.ErrInvalidInput) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("Failed to enroll student %s: %v", sanitizeForLog(req.Name), err)
		respondError(w, http.StatusInternalServerError, "failed to enroll student")
		return
	}

	log.Printf("Enrolled student %d (%s)", student.ID, sanitizeForLog(student.Name))
	respondJSON(w, http.StatusCreated, map[string]any{
		"message": "Student added successfully",
		"id":      student.ID,
	})
}
