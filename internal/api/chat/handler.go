package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jazmy/formchat/internal/api/apierr"
	"github.com/jazmy/formchat/internal/entity"
	"github.com/jazmy/formchat/internal/pkg/logger"
	"github.com/jazmy/formchat/internal/pkg/response"
	"github.com/jazmy/formchat/internal/pkg/validator"
)

type ChatUsecase interface {
	Ask(ctx context.Context, question string, formCtx entity.FormContext) (string, error)
}

type Handler struct {
	usecase   ChatUsecase
	validator *validator.Validator
}

func NewHandler(usecase ChatUsecase, validator *validator.Validator) *Handler {
	return &Handler{usecase: usecase, validator: validator}
}

// Chat handles POST /chat: a free-form side question asked while
// filling a form, answered with the form's context.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Chat")

	var req entity.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.Respond(ctx, w, fmt.Errorf("%w: body", entity.ErrInvalidParameter))
		return
	}

	if err := h.validator.ValidateChat(&req); err != nil {
		apierr.Respond(ctx, w, err)
		return
	}

	answer, err := h.usecase.Ask(ctx, req.Question, req.Context)
	if err != nil {
		apierr.Respond(ctx, w, err)
		return
	}

	response.Success(w, entity.ChatResponse{Response: answer})
}
