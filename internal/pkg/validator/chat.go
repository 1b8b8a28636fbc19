package validator

import (
	"fmt"

	"github.com/jazmy/formchat/internal/entity"
)

// ValidateChat validates a side-question request
func (v *Validator) ValidateChat(req *entity.ChatRequest) error {
	if req.Question == "" {
		return fmt.Errorf("%w: question", entity.ErrMissingField)
	}
	if req.Context.CurrentPrompt == "" {
		return fmt.Errorf("%w: context.current_prompt", entity.ErrMissingField)
	}
	return nil
}

// ValidateGuidance validates an answer-guidance request
func (v *Validator) ValidateGuidance(req *entity.GuidanceRequest) error {
	if req.Question == "" {
		return fmt.Errorf("%w: question", entity.ErrMissingField)
	}
	if req.Answer == "" {
		return fmt.Errorf("%w: answer", entity.ErrMissingField)
	}
	return nil
}

// ValidateValidateAnswer validates a single-answer validation request
func (v *Validator) ValidateValidateAnswer(req *entity.ValidateAnswerRequest) error {
	if req.Answer == "" {
		return fmt.Errorf("%w: answer", entity.ErrMissingField)
	}
	if req.PromptIndex < 0 {
		return fmt.Errorf("%w: promptIndex", entity.ErrInvalidParameter)
	}
	return nil
}

// ValidateGenerateOutput validates an output-synthesis request
func (v *Validator) ValidateGenerateOutput(req *entity.GenerateOutputRequest) error {
	if len(req.Responses) == 0 {
		return fmt.Errorf("%w: responses", entity.ErrMissingField)
	}
	return nil
}

// ValidateSubmitResponse validates a stored-response write
func (v *Validator) ValidateSubmitResponse(req *entity.SubmitResponseRequest) error {
	if len(req.Answers) == 0 {
		return fmt.Errorf("%w: answers", entity.ErrMissingField)
	}
	for i, a := range req.Answers {
		if a.VariableName == "" {
			return fmt.Errorf("%w: answers[%d].variable_name", entity.ErrMissingField, i)
		}
	}
	return nil
}
