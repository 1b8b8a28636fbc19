// Package output synthesizes the final document from a completed answer
// set and the form's output prompt.
package output

import (
	"context"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/jazmy/formchat/internal/entity"
	"github.com/jazmy/formchat/internal/integration/openai"
	"go.uber.org/zap"
)

const systemPrompt = "You are a helpful assistant generating final output based on form responses."

type Generator struct {
	gateway openai.Gateway
	logger  *zap.Logger
}

func NewGenerator(gateway openai.Gateway, logger *zap.Logger) *Generator {
	return &Generator{
		gateway: gateway,
		logger:  logger,
	}
}

// Generate builds the transcript context and requests the synthesized
// document. Question/answer pairs are emitted in answer order, not prompt
// order; answers without a matching prompt (including a prior synthetic
// output) are skipped. The generated text is returned verbatim.
func (g *Generator) Generate(ctx context.Context, outputPrompt string, prompts []entity.Prompt, answers []entity.Answer) (string, error) {
	ctxzap.Info(ctx, "generating final output",
		zap.Int("prompt_count", len(prompts)),
		zap.Int("answer_count", len(answers)),
	)

	byVariable := make(map[string]entity.Prompt, len(prompts))
	for _, p := range prompts {
		byVariable[p.VariableName] = p
	}

	messages := []entity.ChatMessage{
		{Role: entity.RoleSystem, Content: systemPrompt},
	}

	for _, answer := range answers {
		prompt, ok := byVariable[answer.VariableName]
		if !ok {
			continue
		}
		messages = append(messages,
			entity.ChatMessage{Role: entity.RoleUser, Content: prompt.QuestionText},
			entity.ChatMessage{Role: entity.RoleAssistant, Content: answer.ResponseText},
		)
	}

	messages = append(messages, entity.ChatMessage{Role: entity.RoleUser, Content: outputPrompt})

	completion, err := g.gateway.Chat(ctx, messages, entity.ProfileOutput)
	if err != nil {
		ctxzap.Error(ctx, "output generation failed", zap.Error(err))
		return "", fmt.Errorf("%w: %w", entity.ErrOutputGeneration, err)
	}

	ctxzap.Info(ctx, "final output generated",
		zap.Int("output_length", len(completion.Content)),
	)

	return completion.Content, nil
}
