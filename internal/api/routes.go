package api

import (
	"github.com/go-chi/chi/v5"
)

// setupAPIRoutes sets up API v1 routes
func (s *RESTServer) setupAPIRoutes(r chi.Router) {
	// Health check
	r.Get("/health", s.HandleHealth)
	r.Get("/", s.HandleRoot)

	// Reports
	r.Route("/reports", func(r chi.Router) {
		r.Post("/", s.HandleCreateReport)
		r.Post("/upload", s.HandleUploadReport)
	})
}
