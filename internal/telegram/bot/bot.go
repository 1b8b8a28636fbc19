// Package bot runs the Telegram front end: long polling, routing and
// the conversational form-filling flow.
package bot

import (
	"context"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/jazmy/formchat/internal/telegram/keyboard"
	"github.com/jazmy/formchat/internal/telegram/middleware"
	"github.com/jazmy/formchat/internal/telegram/render"
	"github.com/jazmy/formchat/internal/telegram/state"
)

// Deps collects everything the bot needs to serve updates.
type Deps struct {
	Conversations Conversations
	Forms         Forms
	Side          SideChannel
	Exporter      Exporter
}

type Bot struct {
	api    *tgbotapi.BotAPI
	deps   Deps
	states *state.Manager
	logger *zap.Logger

	handle    middleware.HandlerFunc
	rateLimit *middleware.RateLimit

	updateTimeout   int
	shutdownTimeout time.Duration

	wg sync.WaitGroup
}

func New(
	api *tgbotapi.BotAPI,
	deps Deps,
	states *state.Manager,
	rateLimit *middleware.RateLimit,
	updateTimeout int,
	shutdownTimeout time.Duration,
	logger *zap.Logger,
) *Bot {
	b := &Bot{
		api:             api,
		deps:            deps,
		states:          states,
		logger:          logger,
		rateLimit:       rateLimit,
		updateTimeout:   updateTimeout,
		shutdownTimeout: shutdownTimeout,
	}

	b.handle = middleware.Chain(
		b.handleUpdate,
		rateLimit,
		middleware.NewLogging(logger),
		middleware.NewRecovery(api),
	)
	return b
}

// Run polls for updates until ctx is cancelled, one goroutine per
// update. Per-session ordering is enforced further down by the session
// lock.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("telegram bot started", zap.String("username", b.api.Self.UserName))

	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = b.updateTimeout
	updates := b.api.GetUpdatesChan(cfg)

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.wg.Add(1)
			go func(update tgbotapi.Update) {
				defer b.wg.Done()
				b.handle(ctx, update)
			}(update)
		}
	}
}

// Stop halts polling and waits for in-flight updates, up to the
// shutdown timeout.
func (b *Bot) Stop() {
	b.api.StopReceivingUpdates()
	b.rateLimit.Stop()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		b.logger.Info("telegram bot stopped")
	case <-time.After(b.shutdownTimeout):
		b.logger.Warn("telegram bot stopped with updates still in flight")
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.onCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		b.onCommand(ctx, update.Message)
	case update.Message != nil && update.Message.Text != "":
		b.onText(ctx, update.Message)
	}
}

func (b *Bot) onCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.cmdStart(ctx, msg)
	case "help":
		b.send(ctx, msg.Chat.ID, render.MsgHelp)
	case "cancel":
		b.cmdCancel(ctx, msg)
	default:
		b.send(ctx, msg.Chat.ID, render.MsgUnknownCommand)
	}
}

func (b *Bot) cmdStart(ctx context.Context, msg *tgbotapi.Message) {
	forms, err := b.deps.Forms.ListForms(ctx)
	if err != nil {
		ctxzap.Error(ctx, "failed to list forms", zap.Error(err))
		b.send(ctx, msg.Chat.ID, render.ErrGeneric)
		return
	}

	active := forms[:0:0]
	for _, f := range forms {
		if f.Active && f.QuestionCount > 0 {
			active = append(active, f)
		}
	}
	if len(active) == 0 {
		b.send(ctx, msg.Chat.ID, render.MsgNoActiveForms)
		return
	}

	b.states.Delete(msg.From.ID)
	b.sendWithKeyboard(ctx, msg.Chat.ID, render.MsgGreeting, keyboard.Forms(active))
}

func (b *Bot) cmdCancel(ctx context.Context, msg *tgbotapi.Message) {
	if _, ok := b.states.Get(msg.From.ID); !ok {
		b.send(ctx, msg.Chat.ID, render.MsgNothingToDrop)
		return
	}
	b.states.Delete(msg.From.ID)
	b.send(ctx, msg.Chat.ID, render.MsgCancelled)
}

func (b *Bot) send(ctx context.Context, chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		ctxzap.Error(ctx, "failed to send telegram message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

func (b *Bot) sendWithKeyboard(ctx context.Context, chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	if _, err := b.api.Send(msg); err != nil {
		ctxzap.Error(ctx, "failed to send telegram message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

func (b *Bot) sendDocument(ctx context.Context, chatID int64, name string, data []byte, caption string) {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: name, Bytes: data})
	doc.Caption = caption
	if _, err := b.api.Send(doc); err != nil {
		ctxzap.Error(ctx, "failed to send telegram document",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

func (b *Bot) answerCallback(ctx context.Context, id string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(id, "")); err != nil {
		ctxzap.Warn(ctx, "failed to answer callback query", zap.Error(err))
	}
}
