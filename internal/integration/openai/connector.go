package openai

import (
	"context"
	"net/http"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/jazmy/formchat/internal/config"
	"github.com/jazmy/formchat/internal/entity"
	"github.com/jazmy/formchat/internal/pkg/ratelimit"
	pkghttp "github.com/jazmy/formchat/pkg/http"
	"go.uber.org/zap"
)

const completionsEndpoint = "/v1/chat/completions"

// Gateway is the single outbound connection to the chat-completions
// provider. All calls are serialized and throttled through one limiter so
// the provider's per-minute quota holds process-wide.
type Gateway interface {
	Chat(ctx context.Context, messages []entity.ChatMessage, profile entity.Profile) (*entity.Completion, error)
}

type Connector struct {
	config    config.OpenAIConfig
	connector *pkghttp.Connector
	limiter   *ratelimit.Limiter
	logger    *zap.Logger
}

var _ Gateway = &Connector{}

func NewConnector(cfg config.OpenAIConfig, logger *zap.Logger) *Connector {
	return &Connector{
		config: cfg,
		connector: pkghttp.NewConnector(cfg.BaseURL,
			pkghttp.WithRequestTimeout(cfg.RequestTimeout),
			pkghttp.WithResponseHeaderTimeout(cfg.RequestTimeout),
			pkghttp.WithAuthToken(cfg.APIKey),
			pkghttp.WithRequestLogging(),
		),
		limiter: ratelimit.NewLimiter(cfg.RequestsPerMinute),
		logger:  logger,
	}
}

type completionRequest struct {
	Model       string               `json:"model"`
	Messages    []entity.ChatMessage `json:"messages"`
	MaxTokens   int                  `json:"max_tokens"`
	Temperature float64              `json:"temperature"`
}

type completionChoice struct {
	Message      entity.ChatMessage `json:"message"`
	FinishReason string             `json:"finish_reason"`
}

type completionResponse struct {
	Choices []completionChoice `json:"choices"`
	Usage   entity.Usage       `json:"usage"`
}

// Chat sends one chat-completion request under the given profile. Profile
// selects model, token cap and temperature from configuration. The call
// queues FIFO behind any other in-flight call.
func (c *Connector) Chat(ctx context.Context, messages []entity.ChatMessage, profile entity.Profile) (*entity.Completion, error) {
	req := completionRequest{
		Model:       c.config.ModelFor(profile),
		Messages:    messages,
		MaxTokens:   c.config.MaxTokensFor(profile),
		Temperature: c.config.TemperatureFor(profile),
	}

	ctxzap.Info(ctx, "LLM request",
		zap.String("profile", string(profile)),
		zap.String("model", req.Model),
		zap.Int("max_tokens", req.MaxTokens),
		zap.Float64("temperature", req.Temperature),
		zap.Int("message_count", len(messages)),
	)

	var resp completionResponse
	var duration time.Duration

	err := c.limiter.Do(ctx, func() error {
		start := time.Now()
		err := c.connector.DoRequest(ctx, http.MethodPost, completionsEndpoint, req, &resp)
		duration = time.Since(start)
		return err
	})
	if err != nil {
		ctxzap.Error(ctx, "LLM request failed",
			zap.String("profile", string(profile)),
			zap.String("model", req.Model),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		if ctx.Err() != nil {
			return nil, err
		}
		return nil, &ProviderError{Err: err}
	}

	if len(resp.Choices) == 0 {
		ctxzap.Error(ctx, "LLM response has no choices",
			zap.String("profile", string(profile)),
			zap.String("model", req.Model),
		)
		return nil, &ProtocolError{Reason: "response contains no choices"}
	}

	choice := resp.Choices[0]
	if choice.Message.Content == "" {
		return nil, &ProtocolError{Reason: "response content is empty"}
	}

	ctxzap.Info(ctx, "LLM response",
		zap.String("profile", string(profile)),
		zap.String("model", req.Model),
		zap.Duration("duration", duration),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
		zap.String("finish_reason", choice.FinishReason),
		zap.String("content", choice.Message.Content),
	)

	return &entity.Completion{
		Content:      choice.Message.Content,
		Usage:        resp.Usage,
		FinishReason: choice.FinishReason,
	}, nil
}
