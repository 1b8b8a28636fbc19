package conversation

import (
	"context"

	"github.com/jazmy/formchat/internal/entity"
)

// FormProvider loads active form definitions with prompts ordered
// ascending.
type FormProvider interface {
	GetActiveForm(ctx context.Context, formID int64) (*entity.Form, error)
}

// ResponseStore persists answer sets. A nil responseID creates a new
// response and returns its identifier; non-nil updates in place.
type ResponseStore interface {
	SaveResponse(ctx context.Context, formID int64, responseID *int64, answers []entity.Answer) (*entity.Response, error)
}

// AnswerValidator judges a single answer. A nil result means accepted.
type AnswerValidator interface {
	Validate(ctx context.Context, question, answer, variableName, criteria string) (*entity.ValidationResult, error)
}

// OutputGenerator synthesizes the final document from the transcript.
type OutputGenerator interface {
	Generate(ctx context.Context, outputPrompt string, prompts []entity.Prompt, answers []entity.Answer) (string, error)
}

// SideChannel answers free-form questions asked while filling the form.
type SideChannel interface {
	Ask(ctx context.Context, question string, formCtx entity.FormContext) (string, error)
}
