package api

import (
	"net/http"
	"time"

	chatapi "github.com/jazmy/formchat/internal/api/chat"
	"github.com/jazmy/formchat/internal/api/docs"
	formapi "github.com/jazmy/formchat/internal/api/form"
	"github.com/jazmy/formchat/internal/api/middleware"
	"github.com/jazmy/formchat/internal/api/responseapi"
	sessionapi "github.com/jazmy/formchat/internal/api/session"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(
	formHandler *formapi.Handler,
	responseHandler *responseapi.Handler,
	chatHandler *chatapi.Handler,
	sessionHandler *sessionapi.Handler,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS)
	// LLM-backed endpoints hold the request open through the rate
	// limiter queue, so the ceiling is generous.
	r.Use(chimiddleware.Timeout(120 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	docs.RegisterRoutes(r)

	formapi.RegisterRoutes(r, formHandler)
	responseapi.RegisterRoutes(r, responseHandler)
	chatapi.RegisterRoutes(r, chatHandler)
	sessionapi.RegisterRoutes(r, sessionHandler)

	return r
}
