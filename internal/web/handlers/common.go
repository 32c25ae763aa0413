package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/shazabdullakc/Attendence-monitoring-system/internal/attendance"
	"github.com/shazabdullakc/Attendence-monitoring-system/internal/database"
	"github.com/shazabdullakc/Attendence-monitoring-system/internal/extractor"
	"github.com/shazabdullakc/Attendence-monitoring-system/internal/recognizer"
	"github.com/shazabdullakc/Attendence-monitoring-system/internal/roster"
)

// errInvalidRequestBody is a shared error message for invalid JSON request bodies.
const errInvalidRequestBody = "invalid request body"

// Handlers holds the dependencies shared by all HTTP handlers.
type Handlers struct {
	roster    *roster.Service
	engine    *recognizer.Engine
	ledger    *attendance.Ledger
	students  database.StudentReader
	extractor extractor.Client
}

// New creates the handler set with its dependencies.
func New(
	rosterSvc *roster.Service,
	engine *recognizer.Engine,
	ledger *attendance.Ledger,
	students database.StudentReader,
	ext extractor.Client,
) *Handlers {
	return &Handlers{
		roster:    rosterSvc,
		engine:    engine,
		ledger:    ledger,
		students:  students,
		extractor: ext,
	}
}

// sanitizeForLog removes newlines and carriage returns to prevent log injection.
func sanitizeForLog(s string) string {
	return strings.NewReplacer("\n", "", "\r", "").Replace(s)
}

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// HealthCheck handles the health check endpoint.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}
