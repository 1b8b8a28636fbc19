package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jazmy/formchat/internal/entity"
)

type fakeGateway struct {
	content      string
	err          error
	lastMessages []entity.ChatMessage
	lastProfile  entity.Profile
}

func (f *fakeGateway) Chat(_ context.Context, messages []entity.ChatMessage, profile entity.Profile) (*entity.Completion, error) {
	f.lastMessages = messages
	f.lastProfile = profile
	if f.err != nil {
		return nil, f.err
	}
	return &entity.Completion{Content: f.content}, nil
}

func TestAskEmbedsFormContext(t *testing.T) {
	gw := &fakeGateway{content: "The deadline is Friday."}
	uc := NewUsecase(gw, zap.NewNop())

	answer, err := uc.Ask(context.Background(), "When is the deadline?", entity.FormContext{
		Title:         "Grant application",
		CurrentPrompt: "Describe your project.",
		PreviousQuestions: []entity.QA{
			{Question: "What is your name?", Answer: "Ada"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "The deadline is Friday.", answer)

	require.Len(t, gw.lastMessages, 2)
	assert.Equal(t, entity.RoleSystem, gw.lastMessages[0].Role)
	assert.Contains(t, gw.lastMessages[0].Content, "Grant application")
	assert.Contains(t, gw.lastMessages[0].Content, "Q1: What is your name?")
	assert.Contains(t, gw.lastMessages[0].Content, "A1: Ada")
	assert.Equal(t, "When is the deadline?", gw.lastMessages[1].Content)
	assert.Equal(t, entity.ProfileConversational, gw.lastProfile)
}

func TestGuidanceFallsBackWithoutStarterPrompt(t *testing.T) {
	gw := &fakeGateway{content: "  Try adding specifics.  "}
	uc := NewUsecase(gw, zap.NewNop())

	advice, err := uc.Guidance(context.Background(), &entity.GuidanceRequest{
		Question: "Describe your project.",
		Answer:   "It is good.",
	})
	require.NoError(t, err)
	assert.Equal(t, "Try adding specifics.", advice)

	last := gw.lastMessages[len(gw.lastMessages)-1]
	assert.Contains(t, last.Content, "How can I improve my answer?")
	assert.Equal(t, entity.ProfileGuidance, gw.lastProfile)
}

func TestWelcomeUsesTitleAndDescription(t *testing.T) {
	gw := &fakeGateway{content: "Welcome!"}
	uc := NewUsecase(gw, zap.NewNop())

	msg, err := uc.Welcome(context.Background(), "Feedback", "Tell us what you think.")
	require.NoError(t, err)
	assert.Equal(t, "Welcome!", msg)
	assert.Contains(t, gw.lastMessages[1].Content, "Feedback")
	assert.Equal(t, entity.ProfileWelcome, gw.lastProfile)
}

func TestRephrasePropagatesGatewayError(t *testing.T) {
	gwErr := errors.New("upstream down")
	uc := NewUsecase(&fakeGateway{err: gwErr}, zap.NewNop())

	_, err := uc.Rephrase(context.Background(), "What is your name?")
	assert.ErrorIs(t, err, gwErr)
}
