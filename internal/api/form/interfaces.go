package form

import (
	"context"

	"github.com/jazmy/formchat/internal/entity"
)

type FormUsecase interface {
	CreateForm(ctx context.Context, req *entity.CreateFormRequest) (*entity.Form, error)
	GetForm(ctx context.Context, id int64) (*entity.Form, error)
	GetActiveForm(ctx context.Context, id int64) (*entity.Form, error)
	ListForms(ctx context.Context) ([]entity.FormSummary, error)
	UpdateForm(ctx context.Context, id int64, req *entity.UpdateFormRequest) (*entity.Form, error)
	SetActive(ctx context.Context, id int64, active bool) error
	DeleteForm(ctx context.Context, id int64) error
}

type AnswerValidator interface {
	Validate(ctx context.Context, question, answer, variableName, criteria string) (*entity.ValidationResult, error)
}

type OutputGenerator interface {
	Generate(ctx context.Context, outputPrompt string, prompts []entity.Prompt, answers []entity.Answer) (string, error)
}

type GuidanceProvider interface {
	Guidance(ctx context.Context, req *entity.GuidanceRequest) (string, error)
}
