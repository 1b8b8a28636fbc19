package validation

import (
	"context"
	"errors"
	"testing"

	"github.com/jazmy/formchat/internal/entity"
	"github.com/jazmy/formchat/internal/integration/openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func scriptedGateway(content string, err error) *openai.MockGateway {
	gw := openai.NewMockGateway(zap.NewNop())
	gw.Script = func(_ []entity.ChatMessage, _ entity.Profile) (*entity.Completion, error) {
		if err != nil {
			return nil, err
		}
		return &entity.Completion{Content: content, FinishReason: "stop"}, nil
	}
	return gw
}

func TestValidateAccepted(t *testing.T) {
	v := NewValidator(scriptedGateway("VALID", nil), zap.NewNop())

	result, err := v.Validate(context.Background(), "What is your name?", "Ada Lovelace", "name", "")
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestValidateAcceptedWithSurroundingWhitespace(t *testing.T) {
	v := NewValidator(scriptedGateway("  VALID\n", nil), zap.NewNop())

	result, err := v.Validate(context.Background(), "Q", "A", "v", "")
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestValidateCaseSensitive(t *testing.T) {
	// Lowercase "valid" is feedback, not acceptance.
	v := NewValidator(scriptedGateway("valid", nil), zap.NewNop())

	result, err := v.Validate(context.Background(), "Q", "A", "v", "")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "valid", result.Feedback)
}

func TestValidateRejectedWithSuggestion(t *testing.T) {
	feedback := "Your answer could be more specific. Here's a suggestion:\n1. \"The quarterly revenue grew 12%.\""
	v := NewValidator(scriptedGateway(feedback, nil), zap.NewNop())

	result, err := v.Validate(context.Background(), "How did revenue change?", "it grew", "revenue", "must include a number")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, feedback, result.Feedback)
	assert.Equal(t, "The quarterly revenue grew 12%.", result.Suggestion)
}

func TestValidateGatewayFailure(t *testing.T) {
	provErr := &openai.ProviderError{Err: errors.New("connection refused")}
	v := NewValidator(scriptedGateway("", provErr), zap.NewNop())

	result, err := v.Validate(context.Background(), "Q", "A", "v", "")
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, entity.ErrValidationUnavailable)

	var pe *openai.ProviderError
	assert.ErrorAs(t, err, &pe)
}

func TestValidatePromptIncludesCriteria(t *testing.T) {
	gw := scriptedGateway("VALID", nil)
	v := NewValidator(gw, zap.NewNop())

	_, err := v.Validate(context.Background(), "Describe the event.", "It was fun.", "event", "at least two sentences")
	require.NoError(t, err)

	require.Len(t, gw.Calls, 1)
	call := gw.Calls[0]
	assert.Equal(t, entity.ProfileValidation, call.Profile)
	require.Len(t, call.Messages, 2)
	assert.Equal(t, entity.RoleSystem, call.Messages[0].Role)
	assert.Contains(t, call.Messages[1].Content, "Question: Describe the event.")
	assert.Contains(t, call.Messages[1].Content, "Validation Criteria: at least two sentences")
	assert.Contains(t, call.Messages[1].Content, `respond with exactly "VALID"`)
}
