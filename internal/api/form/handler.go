package form

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/jazmy/formchat/internal/api/apierr"
	"github.com/jazmy/formchat/internal/entity"
	"github.com/jazmy/formchat/internal/pkg/logger"
	"github.com/jazmy/formchat/internal/pkg/response"
	"github.com/jazmy/formchat/internal/pkg/validator"
	"go.uber.org/zap"
)

type Handler struct {
	usecase   FormUsecase
	answers   AnswerValidator
	output    OutputGenerator
	guidance  GuidanceProvider
	validator *validator.Validator
}

func NewHandler(
	usecase FormUsecase,
	answers AnswerValidator,
	output OutputGenerator,
	guidance GuidanceProvider,
	validator *validator.Validator,
) *Handler {
	return &Handler{
		usecase:   usecase,
		answers:   answers,
		output:    output,
		guidance:  guidance,
		validator: validator,
	}
}

// CreateForm handles POST /forms
func (h *Handler) CreateForm(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "CreateForm")

	var req entity.CreateFormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.Respond(ctx, w, fmt.Errorf("%w: body", entity.ErrInvalidParameter))
		return
	}

	form, err := h.usecase.CreateForm(ctx, &req)
	if err != nil {
		apierr.Respond(ctx, w, err)
		return
	}

	response.Created(w, form)
}

// ListForms handles GET /forms
func (h *Handler) ListForms(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ListForms")

	summaries, err := h.usecase.ListForms(ctx)
	if err != nil {
		apierr.Respond(ctx, w, err)
		return
	}

	if summaries == nil {
		summaries = []entity.FormSummary{}
	}
	response.Success(w, summaries)
}

// GetForm handles GET /forms/{form_id}
func (h *Handler) GetForm(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GetForm")

	formID, err := formIDParam(r)
	if err != nil {
		apierr.Respond(ctx, w, err)
		return
	}

	form, err := h.usecase.GetForm(ctx, formID)
	if err != nil {
		apierr.Respond(ctx, w, err)
		return
	}

	response.Success(w, form)
}

// UpdateForm handles PUT /forms/{form_id}
func (h *Handler) UpdateForm(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "UpdateForm")

	formID, err := formIDParam(r)
	if err != nil {
		apierr.Respond(ctx, w, err)
		return
	}

	var req entity.UpdateFormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.Respond(ctx, w, fmt.Errorf("%w: body", entity.ErrInvalidParameter))
		return
	}

	form, err := h.usecase.UpdateForm(ctx, formID, &req)
	if err != nil {
		apierr.Respond(ctx, w, err)
		return
	}

	response.Success(w, form)
}

// DeactivateForm handles PATCH /forms/{form_id}/deactivate
func (h *Handler) DeactivateForm(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "DeactivateForm")

	formID, err := formIDParam(r)
	if err != nil {
		apierr.Respond(ctx, w, err)
		return
	}

	if err := h.usecase.SetActive(ctx, formID, false); err != nil {
		apierr.Respond(ctx, w, err)
		return
	}

	response.NoContent(w)
}

// DeleteForm handles DELETE /forms/{form_id}
func (h *Handler) DeleteForm(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "DeleteForm")

	formID, err := formIDParam(r)
	if err != nil {
		apierr.Respond(ctx, w, err)
		return
	}

	if err := h.usecase.DeleteForm(ctx, formID); err != nil {
		apierr.Respond(ctx, w, err)
		return
	}

	response.NoContent(w)
}

// ValidateAnswer handles POST /forms/{form_id}/validate. It judges a
// single answer against the indexed prompt without touching any stored
// state; the caller decides what to do with the feedback.
func (h *Handler) ValidateAnswer(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ValidateAnswer")

	formID, err := formIDParam(r)
	if err != nil {
		apierr.Respond(ctx, w, err)
		return
	}

	var req entity.ValidateAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.Respond(ctx, w, fmt.Errorf("%w: body", entity.ErrInvalidParameter))
		return
	}

	if err := h.validator.ValidateValidateAnswer(&req); err != nil {
		apierr.Respond(ctx, w, err)
		return
	}

	form, err := h.usecase.GetActiveForm(ctx, formID)
	if err != nil {
		apierr.Respond(ctx, w, err)
		return
	}

	if req.PromptIndex >= len(form.Prompts) {
		apierr.Respond(ctx, w, fmt.Errorf("%w: prompt index %d", entity.ErrPromptNotFound, req.PromptIndex))
		return
	}
	prompt := form.Prompts[req.PromptIndex]

	criteria := req.ValidationCriteria
	if criteria == "" {
		criteria = prompt.ValidationCriteria
	}

	result, err := h.answers.Validate(ctx, prompt.QuestionText, req.Answer, prompt.VariableName, criteria)
	if err != nil {
		apierr.Respond(ctx, w, err)
		return
	}

	resp := entity.ValidateAnswerResponse{}
	if result != nil {
		resp.Validation = &result.Feedback
		resp.Suggestion = result.Suggestion
	}
	response.Success(w, resp)
}

// GenerateOutput handles POST /forms/{form_id}/output. It synthesizes
// the final document from a caller-supplied answer set using the form's
// output instruction.
func (h *Handler) GenerateOutput(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GenerateOutput")

	formID, err := formIDParam(r)
	if err != nil {
		apierr.Respond(ctx, w, err)
		return
	}

	var req entity.GenerateOutputRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.Respond(ctx, w, fmt.Errorf("%w: body", entity.ErrInvalidParameter))
		return
	}

	if err := h.validator.ValidateGenerateOutput(&req); err != nil {
		apierr.Respond(ctx, w, err)
		return
	}

	form, err := h.usecase.GetActiveForm(ctx, formID)
	if err != nil {
		apierr.Respond(ctx, w, err)
		return
	}

	if form.OutputPrompt == "" {
		apierr.Respond(ctx, w, fmt.Errorf("%w: form has no output instruction", entity.ErrInvalidParameter))
		return
	}

	out, err := h.output.Generate(ctx, form.OutputPrompt, form.Prompts, req.Responses)
	if err != nil {
		apierr.Respond(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "output generated", zap.Int64("form_id", formID), zap.Int("length", len(out)))

	response.Success(w, entity.GenerateOutputResponse{Output: out})
}

// Guidance handles POST /forms/guidance
func (h *Handler) Guidance(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Guidance")

	var req entity.GuidanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.Respond(ctx, w, fmt.Errorf("%w: body", entity.ErrInvalidParameter))
		return
	}

	if err := h.validator.ValidateGuidance(&req); err != nil {
		apierr.Respond(ctx, w, err)
		return
	}

	guidance, err := h.guidance.Guidance(ctx, &req)
	if err != nil {
		apierr.Respond(ctx, w, err)
		return
	}

	response.Success(w, entity.GuidanceResponse{Guidance: guidance})
}

func formIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "form_id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: form_id", entity.ErrInvalidParameter)
	}
	return id, nil
}
