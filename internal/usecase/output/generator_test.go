package output

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

var testPrompts = []entity.Prompt{
	{QuestionText: "What went well?", VariableName: "highlights", Order: 0},
	{QuestionText: "What could improve?", VariableName: "improvements", Order: 1},
}

func TestGenerateAssemblesTranscript(t *testing.T) {
	gw := openai.NewMockGateway(zap.NewNop())
	gw.Script = func(_ []entity.ChatMessage, _ entity.Profile) (*entity.Completion, error) {
		return &entity.Completion{Content: "Summary document."}, nil
	}
	g := NewGenerator(gw, zap.NewNop())

	// Answers deliberately out of prompt order; the transcript follows
	// answer order.
	answers := []entity.Answer{
		{VariableName: "improvements", ResponseText: "Shorter talks."},
		{VariableName: "highlights", ResponseText: "Great speakers."},
	}

	out, err := g.Generate(context.Background(), "Summarize the feedback.", testPrompts, answers)
	require.NoError(t, err)
	assert.Equal(t, "Summary document.", out)

	require.Len(t, gw.Calls, 1)
	msgs := gw.Calls[0].Messages
	require.Len(t, msgs, 6)

	assert.Equal(t, entity.RoleSystem, msgs[0].Role)
	assert.Equal(t, "What could improve?", msgs[1].Content)
	assert.Equal(t, "Shorter talks.", msgs[2].Content)
	assert.Equal(t, entity.RoleAssistant, msgs[2].Role)
	assert.Equal(t, "What went well?", msgs[3].Content)
	assert.Equal(t, "Great speakers.", msgs[4].Content)
	assert.Equal(t, "Summarize the feedback.", msgs[5].Content)
	assert.Equal(t, entity.RoleUser, msgs[5].Role)
	assert.Equal(t, entity.ProfileOutput, gw.Calls[0].Profile)
}

func TestGenerateSkipsUnmatchedAnswers(t *testing.T) {
	gw := openai.NewMockGateway(zap.NewNop())
	gw.Script = func(_ []entity.ChatMessage, _ entity.Profile) (*entity.Completion, error) {
		return &entity.Completion{Content: "ok"}, nil
	}
	g := NewGenerator(gw, zap.NewNop())

	answers := []entity.Answer{
		{VariableName: "highlights", ResponseText: "Great speakers."},
		{VariableName: "output", ResponseText: "A previously generated document."},
		{VariableName: "unknown_var", ResponseText: "noise"},
	}

	_, err := g.Generate(context.Background(), "Summarize.", testPrompts, answers)
	require.NoError(t, err)

	msgs := gw.Calls[0].Messages
	// system + one matched pair + final output prompt
	require.Len(t, msgs, 4)
	assert.Equal(t, "What went well?", msgs[1].Content)
	assert.Equal(t, "Summarize.", msgs[3].Content)
}

func TestGenerateGatewayFailure(t *testing.T) {
	gw := openai.NewMockGateway(zap.NewNop())
	gw.Script = func(_ []entity.ChatMessage, _ entity.Profile) (*entity.Completion, error) {
		return nil, errors.New("boom")
	}
	g := NewGenerator(gw, zap.NewNop())

	_, err := g.Generate(context.Background(), "Summarize.", testPrompts, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrOutputGeneration)
}
