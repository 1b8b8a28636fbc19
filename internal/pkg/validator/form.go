package validator

import (
	"fmt"
	"regexp"

	"github.com/jazmy/formchat/internal/entity"
)

// variableNameRe keeps variable names usable as template and JSON keys.
var variableNameRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

// Validator validates incoming API requests
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

func (v *Validator) ValidateCreateForm(req *entity.CreateFormRequest) error {
	if req.Title == "" {
		return fmt.Errorf("%w: title", entity.ErrMissingField)
	}
	return v.validatePrompts(req.Prompts)
}

func (v *Validator) ValidateUpdateForm(req *entity.UpdateFormRequest) error {
	if req.Title == "" {
		return fmt.Errorf("%w: title", entity.ErrMissingField)
	}
	return v.validatePrompts(req.Prompts)
}

// validatePrompts checks each prompt definition and rejects duplicate or
// reserved variable names.
func (v *Validator) validatePrompts(prompts []entity.PromptInput) error {
	seen := make(map[string]bool, len(prompts))
	for i, p := range prompts {
		if p.QuestionText == "" {
			return fmt.Errorf("%w: prompts[%d].question_text", entity.ErrMissingField, i)
		}
		if p.VariableName == "" {
			return fmt.Errorf("%w: prompts[%d].variable_name", entity.ErrMissingField, i)
		}
		if !variableNameRe.MatchString(p.VariableName) {
			return fmt.Errorf("%w: prompts[%d].variable_name %q", entity.ErrInvalidParameter, i, p.VariableName)
		}
		if p.VariableName == entity.OutputVariableName {
			return fmt.Errorf("%w: variable name %q is reserved", entity.ErrInvalidParameter, entity.OutputVariableName)
		}
		if seen[p.VariableName] {
			return fmt.Errorf("%w: duplicate variable name %q", entity.ErrInvalidParameter, p.VariableName)
		}
		seen[p.VariableName] = true
	}
	return nil
}
