package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/shazabdullakc/Attendence-monitoring-system/internal/constants"
	"github.com/shazabdullakc/Attendence-monitoring-system/internal/database"
	"github.com/shazabdullakc/Attendence-monitoring-system/internal/extractor"
	"github.com/shazabdullakc/Attendence-monitoring-system/internal/recognizer"
)

// recognizeRequest is the request body for a recognition attempt.
type recognizeRequest struct {
	Image string `json:"image"`
}

// recognizeResponse is returned when a face was recognized and attendance recorded.
type recognizeResponse struct {
	Message   string  `json:"message"`
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Distance  float64 `json:"distance"`
	EventUID  string  `json:"event_uid"`
	Timestamp string  `json:"timestamp"`
}

// Recognize handles POST /api/recognize.
// It extracts an embedding from the photo, matches it against enrolled
// students and records an attendance event for the matched student.
func (h *Handlers) Recognize(w http.ResponseWriter, r *http.Request) {
	var req recognizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	if req.Image == "" {
		respondError(w, http.StatusBadRequest, "image is required")
		return
	}

	imageData, err := extractor.DecodeBase64Image(req.Image)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid image encoding")
		return
	}

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

	match, err := h.engine.Recognize(r.Context(), embedding)
	if err != nil {
		if errors.Is(err, recognizer.ErrNoMatch) {
			respondError(w, http.StatusBadRequest, "face not recognized")
			return
		}
		if errors.Is(err, database.ErrDimensionMismatch) {
			log.Printf("ERROR: recognition failed on dimension mismatch: %v", err)
			respondError(w, http.StatusInternalServerError, "embedding dimension mismatch")
			return
		}
		log.Printf("Failed to recognize face: %v", err)
		respondError(w, http.StatusInternalServerError, "recognition failed")
		return
	}

	event, err := h.ledger.Record(r.Context(), match.StudentID)
	if err != nil {
		log.Printf("Failed to record attendance for student %d: %v", match.StudentID, err)
		respondError(w, http.StatusInternalServerError, "failed to record attendance")
		return
	}

	log.Printf("Recognized student %d (%s) at distance %.2f, event %s",
		match.StudentID, sanitizeForLog(match.Name), match.Distance, event.UID)

	respondJSON(w, http.StatusOK, recognizeResponse{
		Message:   "Attendance recorded",
		ID:        match.StudentID,
		Name:      match.Name,
		Distance:  match.Distance,
		EventUID:  event.UID,
		Timestamp: event.CreatedAt.UTC().Format(time.RFC3339),
	})
}
