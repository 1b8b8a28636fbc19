package middleware

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Logging attaches an update-scoped logger to the context and logs a
// single completion line per update.
type Logging struct {
	logger *zap.Logger
}

func NewLogging(logger *zap.Logger) *Logging {
	return &Logging{logger: logger}
}

func (m *Logging) Handle(next HandlerFunc) HandlerFunc {
	return func(ctx context.Context, update tgbotapi.Update) {
		start := time.Now()

		fields := []zap.Field{
			zap.Int("update_id", update.UpdateID),
			zap.Int64("user_id", userID(update)),
			zap.String("kind", updateKind(update)),
		}
		ctx = ctxzap.ToContext(ctx, m.logger.With(fields...))

		next(ctx, update)

		ctxzap.Info(ctx, "handled telegram update",
			zap.Duration("duration", time.Since(start)),
		)
	}
}

func updateKind(update tgbotapi.Update) string {
	switch {
	case update.CallbackQuery != nil:
		return "callback"
	case update.Message != nil && update.Message.IsCommand():
		return "command"
	case update.Message != nil:
		return "message"
	default:
		return "other"
	}
}

func userID(update tgbotapi.Update) int64 {
	if from := update.SentFrom(); from != nil {
		return from.ID
	}
	return 0
}
