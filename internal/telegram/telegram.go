// Package telegram wires the Telegram bot together from configuration
// and the application usecases.
package telegram

import (
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/jazmy/formchat/internal/config"
	"github.com/jazmy/formchat/internal/telegram/bot"
	"github.com/jazmy/formchat/internal/telegram/middleware"
	"github.com/jazmy/formchat/internal/telegram/state"
)

const rateLimitBurst = 5

// NewBot builds a ready-to-run bot from config and usecase dependencies.
// The chat-to-session mapping expires with the same TTL as the sessions
// it points at.
func NewBot(cfg *config.Config, deps bot.Deps, logger *zap.Logger) (*bot.Bot, error) {
	if cfg.TelegramCfg.BotToken == "" {
		return nil, fmt.Errorf("telegram bot token is not configured")
	}

	api, err := tgbotapi.NewBotAPI(cfg.TelegramCfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot api: %w", err)
	}

	return bot.New(
		api,
		deps,
		state.NewManager(cfg.SessionTTL),
		middleware.NewRateLimit(api, cfg.TelegramCfg.RateLimitPerMinute, rateLimitBurst, logger),
		cfg.TelegramCfg.UpdateTimeout,
		time.Duration(cfg.TelegramCfg.ShutdownTimeout)*time.Second,
		logger,
	), nil
}
