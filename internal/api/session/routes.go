package session

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers conversation session routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", h.Start)

		r.Route("/{session_id}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Post("/answer", h.SubmitAnswer)
			r.Post("/action", h.Action)
			r.Post("/question", h.Question)
		})
	})
}
