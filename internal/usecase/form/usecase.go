// Package form implements form-builder business logic: creating and
// maintaining form definitions with their ordered prompt sets.
package form

import (
	"context"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/jazmy/formchat/internal/entity"
	"github.com/jazmy/formchat/internal/pkg/validator"
	"github.com/jazmy/formchat/internal/repository"
	"go.uber.org/zap"
)

// FormUsecase implements form management business logic
type FormUsecase struct {
	formRepo  repository.FormRepository
	validator *validator.Validator
	logger    *zap.Logger
}

// NewUsecase creates a new form use case
func NewUsecase(
	formRepo repository.FormRepository,
	validator *validator.Validator,
	logger *zap.Logger,
) *FormUsecase {
	return &FormUsecase{
		formRepo:  formRepo,
		validator: validator,
		logger:    logger,
	}
}

// CreateForm creates a form with its prompt set. Prompt order is
// assigned from slice position, never taken from the client.
func (uc *FormUsecase) CreateForm(ctx context.Context, req *entity.CreateFormRequest) (*entity.Form, error) {
	if err := uc.validator.ValidateCreateForm(req); err != nil {
		return nil, err
	}

	form := entity.Form{
		Title:         req.Title,
		Description:   req.Description,
		StarterPrompt: req.StarterPrompt,
		OutputPrompt:  req.OutputPrompt,
	}

	created, err := uc.formRepo.Create(ctx, form, buildPrompts(req.Prompts))
	if err != nil {
		return nil, fmt.Errorf("create form: %w", err)
	}

	ctxzap.Info(ctx, "form created",
		zap.Int64("form_id", created.ID),
		zap.String("title", created.Title),
		zap.Int("prompt_count", len(created.Prompts)),
	)

	return created, nil
}

// GetForm returns a form for administration, active or not.
func (uc *FormUsecase) GetForm(ctx context.Context, id int64) (*entity.Form, error) {
	return uc.formRepo.Get(ctx, id)
}

// GetActiveForm returns a form for filling. Deactivated forms are not
// served to respondents.
func (uc *FormUsecase) GetActiveForm(ctx context.Context, id int64) (*entity.Form, error) {
	form, err := uc.formRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !form.Active {
		return nil, entity.ErrFormInactive
	}
	return form, nil
}

// ListForms returns all forms with their response and question counts.
func (uc *FormUsecase) ListForms(ctx context.Context) ([]entity.FormSummary, error) {
	return uc.formRepo.List(ctx)
}

// UpdateForm replaces the form details and its whole prompt set.
func (uc *FormUsecase) UpdateForm(ctx context.Context, id int64, req *entity.UpdateFormRequest) (*entity.Form, error) {
	if err := uc.validator.ValidateUpdateForm(req); err != nil {
		return nil, err
	}

	form := entity.Form{
		ID:            id,
		Title:         req.Title,
		Description:   req.Description,
		StarterPrompt: req.StarterPrompt,
		OutputPrompt:  req.OutputPrompt,
	}

	updated, err := uc.formRepo.Update(ctx, form, buildPrompts(req.Prompts))
	if err != nil {
		return nil, fmt.Errorf("update form: %w", err)
	}

	ctxzap.Info(ctx, "form updated",
		zap.Int64("form_id", updated.ID),
		zap.Int("prompt_count", len(updated.Prompts)),
	)

	return updated, nil
}

// SetActive toggles whether a form is served to respondents.
func (uc *FormUsecase) SetActive(ctx context.Context, id int64, active bool) error {
	if err := uc.formRepo.SetActive(ctx, id, active); err != nil {
		return err
	}

	ctxzap.Info(ctx, "form active flag changed",
		zap.Int64("form_id", id),
		zap.Bool("active", active),
	)
	return nil
}

// DeleteForm removes a form with its prompts and responses.
func (uc *FormUsecase) DeleteForm(ctx context.Context, id int64) error {
	if err := uc.formRepo.Delete(ctx, id); err != nil {
		return err
	}

	ctxzap.Info(ctx, "form deleted", zap.Int64("form_id", id))
	return nil
}

// buildPrompts converts prompt inputs into entities with contiguous
// order values.
func buildPrompts(inputs []entity.PromptInput) []entity.Prompt {
	prompts := make([]entity.Prompt, 0, len(inputs))
	for i, in := range inputs {
		prompts = append(prompts, entity.Prompt{
			QuestionText:       in.QuestionText,
			VariableName:       in.VariableName,
			ValidationCriteria: in.ValidationCriteria,
			Order:              i,
		})
	}
	return prompts
}
