package responseapi

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers stored-response routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/responses/{form_id}", func(r chi.Router) {
		r.Post("/", h.Submit)
		r.Get("/", h.List)
		r.Get("/export", h.ExportAll)

		r.Route("/{response_id}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Delete("/", h.Delete)
			r.Get("/export", h.Export)
		})
	})
}
