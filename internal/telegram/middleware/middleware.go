// Package middleware wraps the bot's update handling with rate
// limiting, logging and panic recovery.
package middleware

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// HandlerFunc processes a single Telegram update.
type HandlerFunc func(ctx context.Context, update tgbotapi.Update)

// Middleware decorates a HandlerFunc.
type Middleware interface {
	Handle(next HandlerFunc) HandlerFunc
}

// Chain applies middlewares so the first listed runs outermost.
func Chain(h HandlerFunc, mws ...Middleware) HandlerFunc {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i].Handle(h)
	}
	return h
}
