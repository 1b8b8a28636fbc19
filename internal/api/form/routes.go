package form

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers form routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/forms", func(r chi.Router) {
		r.Post("/", h.CreateForm)
		r.Get("/", h.ListForms)
		r.Post("/guidance", h.Guidance)

		r.Route("/{form_id}", func(r chi.Router) {
			r.Get("/", h.GetForm)
			r.Put("/", h.UpdateForm)
			r.Delete("/", h.DeleteForm)
			r.Patch("/deactivate", h.DeactivateForm)
			r.Post("/validate", h.ValidateAnswer)
			r.Post("/output", h.GenerateOutput)
		})
	})
}
