package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeNotFound(w, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, ErrCodeMethodNotAllow, "method not allowed")
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/metrics", s.handleMetrics)

		r.Route("/home", func(r chi.Router) {
			r.Get("/", s.handleGetHome)
			r.Get("/report", s.handleHomeReport)
			r.Get("/stats", s.handleHomeStats)
		})

		r.Route("/rooms", func(r chi.Router) {
			r.Post("/", s.handleCreateRoom)

			r.Route("/{room}", func(r chi.Router) {
				r.Get("/", s.handleGetRoom)
				r.Delete("/", s.handleDeleteRoom)
				r.Get("/report", s.handleRoomReport)

				r.Route("/devices", func(r chi.Router) {
					r.Post("/", s.handleInstallDevice)

					r.Route("/{device}", func(r chi.Router) {
						r.Get("/", s.handleGetDevice)
						r.Delete("/", s.handleUninstallDevice)
						r.Put("/power", s.handleSetPower)
					})
				})
			})
		})
	})

	return r
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"home":    s.registry.Name(),
		"version": s.version,
	})
}
