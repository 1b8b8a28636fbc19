package chat

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers the chat route
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/chat", h.Chat)
}
