package openai

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/jazmy/formchat/internal/entity"
	"go.uber.org/zap"
)

// MockGateway is a scripted gateway for tests and ENABLE_MOCKS mode. When
// Script is set it is consulted per call; otherwise every answer
// validates as VALID and other profiles echo a canned response.
type MockGateway struct {
	Script func(messages []entity.ChatMessage, profile entity.Profile) (*entity.Completion, error)
	logger *zap.Logger

	// Calls records every invocation for assertions.
	Calls []MockCall
}

type MockCall struct {
	Messages []entity.ChatMessage
	Profile  entity.Profile
}

var _ Gateway = &MockGateway{}

func NewMockGateway(logger *zap.Logger) *MockGateway {
	return &MockGateway{logger: logger}
}

func (m *MockGateway) Chat(ctx context.Context, messages []entity.ChatMessage, profile entity.Profile) (*entity.Completion, error) {
	ctxzap.Info(ctx, "[MOCK] LLM chat",
		zap.String("profile", string(profile)),
		zap.Int("message_count", len(messages)),
	)

	m.Calls = append(m.Calls, MockCall{Messages: messages, Profile: profile})

	if m.Script != nil {
		return m.Script(messages, profile)
	}

	content := "This is a mock response."
	if profile == entity.ProfileValidation {
		content = "VALID"
	}

	return &entity.Completion{
		Content:      content,
		Usage:        entity.Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
		FinishReason: "stop",
	}, nil
}
