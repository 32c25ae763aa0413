package web

import (
	"github.com/go-chi/chi/v5"

	"github.com/shazabdullakc/Attendence-monitoring-system/internal/web/handlers"
)

// setupRoutes configures all the routes for the server
func (s *Server) setupRoutes(services Services) {
	h := handlers.New(
		services.Roster,
		services.Engine,
		services.Ledger,
		services.Students,
		services.Extractor,
	)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.HealthCheck)

		r.Get("/students", h.ListStudents)
		r.Post("/add_student", h.AddStudent)
		r.Post("/recognize", h.Recognize)

		r.Get("/attendance", h.AttendanceSummary)
		r.Get("/attendance/{studentID}", h.AttendanceHistory)
	})
}
