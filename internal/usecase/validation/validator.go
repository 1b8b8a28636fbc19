// Package validation judges form answers through the LLM gateway and
// turns free-text feedback into a structured result.
package validation

import (
	"context"
	"fmt"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/jazmy/formchat/internal/entity"
	"github.com/jazmy/formchat/internal/integration/openai"
	"go.uber.org/zap"
)

// validToken is the exact literal the model must return for an accepted
// answer. Comparison is case-sensitive after trimming.
const validToken = "VALID"

const systemPrompt = "You are a helpful assistant that validates form responses. " +
	"Be friendly and constructive in your feedback."

type Validator struct {
	gateway openai.Gateway
	logger  *zap.Logger
}

func NewValidator(gateway openai.Gateway, logger *zap.Logger) *Validator {
	return &Validator{
		gateway: gateway,
		logger:  logger,
	}
}

// Validate judges an answer against its question and optional criteria.
// A nil result means the answer is acceptable. Gateway failures are
// wrapped in entity.ErrValidationUnavailable; the answer must not be
// committed in that case.
func (v *Validator) Validate(ctx context.Context, question, answer, variableName, criteria string) (*entity.ValidationResult, error) {
	ctxzap.Info(ctx, "validating form response",
		zap.String("variable_name", variableName),
		zap.Int("answer_length", len(answer)),
	)

	messages := []entity.ChatMessage{
		{Role: entity.RoleSystem, Content: systemPrompt},
		{Role: entity.RoleUser, Content: buildValidationPrompt(question, answer, criteria)},
	}

	completion, err := v.gateway.Chat(ctx, messages, entity.ProfileValidation)
	if err != nil {
		ctxzap.Error(ctx, "validation call failed",
			zap.String("variable_name", variableName),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", entity.ErrValidationUnavailable, err)
	}

	verdict := strings.TrimSpace(completion.Content)
	if verdict == validToken {
		ctxzap.Info(ctx, "answer accepted", zap.String("variable_name", variableName))
		return nil, nil
	}

	result := &entity.ValidationResult{
		Feedback:   verdict,
		Suggestion: ExtractSuggestion(verdict),
	}

	ctxzap.Info(ctx, "answer rejected",
		zap.String("variable_name", variableName),
		zap.Bool("has_suggestion", result.Suggestion != ""),
	)

	return result, nil
}

func buildValidationPrompt(question, answer, criteria string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Please validate the following answer for a form question.\n\n")
	fmt.Fprintf(&b, "Question: %s\n", question)
	fmt.Fprintf(&b, "Answer: %q\n", answer)
	if criteria != "" {
		fmt.Fprintf(&b, "Validation Criteria: %s\n", criteria)
	}

	b.WriteString(`
Instructions:
1. Evaluate if the answer meets these criteria:
   - Is it complete and relevant to the question?
   - Does it satisfy any specific validation criteria provided?

2. If the answer is good, respond with exactly "VALID"

3. If the answer needs improvement, provide:
   - A friendly explanation of what could be improved
   - A specific, actionable suggestion

Format your response like this if improvements are needed:
Your answer could be more [improvement area]. Here's a suggestion:
1. [Complete suggested answer]

Remember to be constructive and encouraging!`)

	return b.String()
}
