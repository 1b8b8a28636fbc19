package validator

import (
	"testing"

	"github.com/jazmy/formchat/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateForm() *entity.CreateFormRequest {
	return &entity.CreateFormRequest{
		Title: "Event Feedback",
		Prompts: []entity.PromptInput{
			{QuestionText: "What went well?", VariableName: "highlights"},
			{QuestionText: "What could improve?", VariableName: "improvements"},
		},
	}
}

func TestValidateCreateForm(t *testing.T) {
	v := NewValidator()

	require.NoError(t, v.ValidateCreateForm(validCreateForm()))

	req := validCreateForm()
	req.Title = ""
	assert.ErrorIs(t, v.ValidateCreateForm(req), entity.ErrMissingField)
}

func TestValidatePromptErrorsNameTheOffendingPrompt(t *testing.T) {
	v := NewValidator()

	req := validCreateForm()
	req.Prompts[1].QuestionText = ""
	err := v.ValidateCreateForm(req)
	require.ErrorIs(t, err, entity.ErrMissingField)
	assert.Contains(t, err.Error(), "prompts[1].question_text")

	req = validCreateForm()
	req.Prompts[0].VariableName = ""
	err = v.ValidateCreateForm(req)
	require.ErrorIs(t, err, entity.ErrMissingField)
	assert.Contains(t, err.Error(), "prompts[0].variable_name")
}

func TestValidatePromptVariableNames(t *testing.T) {
	v := NewValidator()

	req := validCreateForm()
	req.Prompts[0].VariableName = "1bad name"
	err := v.ValidateCreateForm(req)
	require.ErrorIs(t, err, entity.ErrInvalidParameter)
	assert.Contains(t, err.Error(), "prompts[0]")

	req = validCreateForm()
	req.Prompts[1].VariableName = entity.OutputVariableName
	assert.ErrorIs(t, v.ValidateCreateForm(req), entity.ErrInvalidParameter)

	req = validCreateForm()
	req.Prompts[1].VariableName = req.Prompts[0].VariableName
	err = v.ValidateCreateForm(req)
	require.ErrorIs(t, err, entity.ErrInvalidParameter)
	assert.Contains(t, err.Error(), "duplicate")
}
