package session

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jazmy/formchat/internal/api/apierr"
	"github.com/jazmy/formchat/internal/entity"
	"github.com/jazmy/formchat/internal/pkg/logger"
	"github.com/jazmy/formchat/internal/pkg/response"
	"github.com/jazmy/formchat/internal/pkg/validator"
	"github.com/jazmy/formchat/internal/usecase/conversation"
)

type Handler struct {
	usecase   ConversationUsecase
	validator *validator.Validator
}

func NewHandler(usecase ConversationUsecase, validator *validator.Validator) *Handler {
	return &Handler{usecase: usecase, validator: validator}
}

// Start handles POST /sessions
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "StartSession")

	var req entity.StartSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.Respond(ctx, w, fmt.Errorf("%w: body", entity.ErrInvalidParameter))
		return
	}

	if err := h.validator.ValidateStartSession(&req); err != nil {
		apierr.Respond(ctx, w, err)
		return
	}

	s, err := h.usecase.Start(ctx, req.FormID)
	if err != nil {
		apierr.Respond(ctx, w, err)
		return
	}

	response.Created(w, s.ToDTO())
}

// Get handles GET /sessions/{session_id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GetSession")

	s, err := h.usecase.Get(ctx, chi.URLParam(r, "session_id"))
	if err != nil {
		apierr.Respond(ctx, w, err)
		return
	}

	response.Success(w, s.ToDTO())
}

// SubmitAnswer handles POST /sessions/{session_id}/answer
func (h *Handler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "SubmitSessionAnswer")

	var req entity.SubmitSessionAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.Respond(ctx, w, fmt.Errorf("%w: body", entity.ErrInvalidParameter))
		return
	}

	if err := h.validator.ValidateSubmitSessionAnswer(&req); err != nil {
		apierr.Respond(ctx, w, err)
		return
	}

	s, err := h.usecase.SubmitAnswer(ctx, chi.URLParam(r, "session_id"), req.Answer)
	if err != nil {
		apierr.Respond(ctx, w, err)
		return
	}

	response.Success(w, s.ToDTO())
}

// Action handles POST /sessions/{session_id}/action
func (h *Handler) Action(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "SessionAction")

	var req entity.SessionActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.Respond(ctx, w, fmt.Errorf("%w: body", entity.ErrInvalidParameter))
		return
	}

	if err := h.validator.ValidateSessionAction(&req); err != nil {
		apierr.Respond(ctx, w, err)
		return
	}

	sessionID := chi.URLParam(r, "session_id")

	var (
		s   *conversation.Snapshot
		err error
	)
	switch req.Action {
	case entity.ActionAcceptSuggestion:
		s, err = h.usecase.AcceptSuggestion(ctx, sessionID)
	case entity.ActionUseOriginal:
		s, err = h.usecase.UseOriginal(ctx, sessionID)
	case entity.ActionRevise:
		s, err = h.usecase.Revise(ctx, sessionID)
	case entity.ActionReturn:
		s, err = h.usecase.ReturnToAnswer(ctx, sessionID)
	}
	if err != nil {
		apierr.Respond(ctx, w, err)
		return
	}

	response.Success(w, s.ToDTO())
}

// Question handles POST /sessions/{session_id}/question
func (h *Handler) Question(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "SessionQuestion")

	var req entity.SessionQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.Respond(ctx, w, fmt.Errorf("%w: body", entity.ErrInvalidParameter))
		return
	}

	if err := h.validator.ValidateSessionQuestion(&req); err != nil {
		apierr.Respond(ctx, w, err)
		return
	}

	s, err := h.usecase.AskQuestion(ctx, chi.URLParam(r, "session_id"), req.Question)
	if err != nil {
		apierr.Respond(ctx, w, err)
		return
	}

	response.Success(w, s.ToDTO())
}
