package middleware

import (
	"context"
	"runtime/debug"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/jazmy/formchat/internal/telegram/render"
)

// Recovery catches panics from handlers so one bad update cannot take
// the polling loop down.
type Recovery struct {
	api *tgbotapi.BotAPI
}

func NewRecovery(api *tgbotapi.BotAPI) *Recovery {
	return &Recovery{api: api}
}

func (m *Recovery) Handle(next HandlerFunc) HandlerFunc {
	return func(ctx context.Context, update tgbotapi.Update) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			ctxzap.Error(ctx, "panic while handling telegram update",
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()),
			)

			if update.Message != nil {
				msg := tgbotapi.NewMessage(update.Message.Chat.ID, render.ErrGeneric)
				if _, err := m.api.Send(msg); err != nil {
					ctxzap.Error(ctx, "failed to send recovery message", zap.Error(err))
				}
			}
		}()

		next(ctx, update)
	}
}
