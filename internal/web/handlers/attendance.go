package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

// historyEvent is a single attendance event in a student's history.
type historyEvent struct {
	UID       string `json:"uid"`
	Timestamp string `json:"timestamp"`
}

// AttendanceSummary handles GET /api/attendance.
// It returns one row per enrolled student with the latest attendance
// timestamp, null for students who have never been seen.
func (h *Handlers) AttendanceSummary(w http.ResponseWriter, r *http.Request) {
	rows, err := h.ledger.Summary(r.Context())
	if err != nil {
		log.Printf("Failed to build attendance summary: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to build attendance summary")
		return
	}

	respondJSON(w, http.StatusOK, rows)
}

// AttendanceHistory handles GET /api/attendance/{studentID}.
// Events are returned newest first.
func (h *Handlers) AttendanceHistory(w http.ResponseWriter, r *http.Request) {
	studentID, err := strconv.ParseInt(chi.URLParam(r, "studentID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid student id")
		return
	}

	exists, err := h.students.Exists(r.Context(), studentID)
	if err != nil {
		log.Printf("Failed to look up student %d: %v", studentID, err)
		respondError(w, http.StatusInternalServerError, "failed to look up student")
		return
	}
	if !exists {
		respondError(w, http.StatusNotFound, "student not found")
		return
	}

	events, err := h.ledger.History(r.Context(), studentID)
	if err != nil {
		log.Printf("Failed to load attendance history for student %d: %v", studentID, err)
		respondError(w, http.StatusInternalServerError, "failed to load attendance history")
		return
	}

	out := make([]historyEvent, 0, len(events))
	for _, e := range events {
		out = append(out, historyEvent{
			UID:       e.UID,
			Timestamp: e.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	respondJSON(w, http.StatusOK, out)
}
