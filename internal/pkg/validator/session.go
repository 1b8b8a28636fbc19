package validator

import (
	"fmt"

	"github.com/jazmy/formchat/internal/entity"
)

// ValidateStartSession validates a session-open request
func (v *Validator) ValidateStartSession(req *entity.StartSessionRequest) error {
	if req.FormID <= 0 {
		return fmt.Errorf("%w: form_id", entity.ErrMissingField)
	}
	return nil
}

// ValidateSubmitSessionAnswer validates an answer submission
func (v *Validator) ValidateSubmitSessionAnswer(req *entity.SubmitSessionAnswerRequest) error {
	if req.Answer == "" {
		return fmt.Errorf("%w: answer", entity.ErrMissingField)
	}
	return nil
}

// ValidateSessionAction validates a post-rejection decision
func (v *Validator) ValidateSessionAction(req *entity.SessionActionRequest) error {
	if req.Action == "" {
		return fmt.Errorf("%w: action", entity.ErrMissingField)
	}
	if err := req.Action.Validate(); err != nil {
		return fmt.Errorf("%w: action %q", entity.ErrInvalidParameter, req.Action)
	}
	return nil
}

// ValidateSessionQuestion validates a side question
func (v *Validator) ValidateSessionQuestion(req *entity.SessionQuestionRequest) error {
	if req.Question == "" {
		return fmt.Errorf("%w: question", entity.ErrMissingField)
	}
	return nil
}
