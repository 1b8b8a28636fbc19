// Package chat backs the free-form conversational channels: side
// questions asked while filling a form, answer guidance, generated
// welcome messages, and conversational rephrasing of questions.
package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/jazmy/formchat/internal/entity"
	"github.com/jazmy/formchat/internal/integration/openai"
	"go.uber.org/zap"
)

type Usecase struct {
	gateway openai.Gateway
	logger  *zap.Logger
}

func NewUsecase(gateway openai.Gateway, logger *zap.Logger) *Usecase {
	return &Usecase{
		gateway: gateway,
		logger:  logger,
	}
}

// Ask answers a side question with the form's context embedded in the
// system message.
func (uc *Usecase) Ask(ctx context.Context, question string, formCtx entity.FormContext) (string, error) {
	ctxzap.Info(ctx, "answering side question",
		zap.String("form_title", formCtx.Title),
		zap.Int("previous_count", len(formCtx.PreviousQuestions)),
	)

	messages := []entity.ChatMessage{
		{Role: entity.RoleSystem, Content: buildContextMessage(formCtx)},
		{Role: entity.RoleUser, Content: question},
	}

	completion, err := uc.gateway.Chat(ctx, messages, entity.ProfileConversational)
	if err != nil {
		return "", fmt.Errorf("answer side question: %w", err)
	}

	return completion.Content, nil
}

// Guidance returns free-form advice on improving an answer. The form's
// starter prompt, when present, steers the persona; it is never shown to
// the end user directly.
func (uc *Usecase) Guidance(ctx context.Context, req *entity.GuidanceRequest) (string, error) {
	ctxzap.Info(ctx, "getting answer guidance", zap.String("question", req.Question))

	messages := []entity.ChatMessage{
		{Role: entity.RoleSystem, Content: "You are a helpful assistant guiding users to improve their form responses."},
	}

	for _, qa := range req.PreviousQA {
		messages = append(messages,
			entity.ChatMessage{Role: entity.RoleUser, Content: qa.Question},
			entity.ChatMessage{Role: entity.RoleAssistant, Content: qa.Answer},
		)
	}

	steer := req.StarterPrompt
	if steer == "" {
		steer = "How can I improve my answer?"
	}

	messages = append(messages, entity.ChatMessage{
		Role: entity.RoleUser,
		Content: fmt.Sprintf("Question: %s\nCurrent Answer: %s\nValidation Criteria: %s\n%s",
			req.Question, req.Answer, req.ValidationCriteria, steer),
	})

	completion, err := uc.gateway.Chat(ctx, messages, entity.ProfileGuidance)
	if err != nil {
		return "", fmt.Errorf("get answer guidance: %w", err)
	}

	return strings.TrimSpace(completion.Content), nil
}

// Welcome generates a short greeting for a form.
func (uc *Usecase) Welcome(ctx context.Context, title, description string) (string, error) {
	ctxzap.Info(ctx, "generating welcome message", zap.String("form_title", title))

	messages := []entity.ChatMessage{
		{Role: entity.RoleSystem, Content: "You are a friendly assistant. Create a brief, welcoming message for a form. Keep it under 2 sentences."},
		{Role: entity.RoleUser, Content: fmt.Sprintf("Form title: %s\nDescription: %s", title, description)},
	}

	completion, err := uc.gateway.Chat(ctx, messages, entity.ProfileWelcome)
	if err != nil {
		return "", fmt.Errorf("generate welcome message: %w", err)
	}

	return strings.TrimSpace(completion.Content), nil
}

// Rephrase restates a form question in a conversational tone.
func (uc *Usecase) Rephrase(ctx context.Context, prompt string) (string, error) {
	messages := []entity.ChatMessage{
		{Role: entity.RoleSystem, Content: "You are a friendly conversational assistant. Rephrase the following form question in a more natural, chatty way. Keep it concise but friendly. Don't add any additional questions or information."},
		{Role: entity.RoleUser, Content: prompt},
	}

	completion, err := uc.gateway.Chat(ctx, messages, entity.ProfileChat)
	if err != nil {
		return "", fmt.Errorf("rephrase question: %w", err)
	}

	return strings.TrimSpace(completion.Content), nil
}

func buildContextMessage(formCtx entity.FormContext) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are a helpful AI assistant helping users fill out a form. Here is the context:\n")
	fmt.Fprintf(&b, "Title: %s\n", formCtx.Title)
	fmt.Fprintf(&b, "Description: %s\n", formCtx.Description)
	fmt.Fprintf(&b, "Current Question: %s\n\n", formCtx.CurrentPrompt)
	b.WriteString("Previous questions and answers:\n")

	for i, qa := range formCtx.PreviousQuestions {
		fmt.Fprintf(&b, "Q%d: %s\nA%d: %s\n\n", i+1, qa.Question, i+1, qa.Answer)
	}

	return b.String()
}
