package middleware

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/jazmy/formchat/internal/telegram/render"
)

const (
	cleanupInterval = 10 * time.Minute
	inactiveAfter   = 30 * time.Minute
)

// RateLimit throttles updates per user with a token bucket. Throttled
// users get a single warning until their bucket refills.
type RateLimit struct {
	api       *tgbotapi.BotAPI
	logger    *zap.Logger
	perMinute float64
	burst     float64

	mu      sync.Mutex
	buckets map[int64]*bucket

	stop chan struct{}
}

type bucket struct {
	tokens   float64
	refilled time.Time
	warned   bool
	lastSeen time.Time
}

func NewRateLimit(api *tgbotapi.BotAPI, perMinute, burst int, logger *zap.Logger) *RateLimit {
	m := &RateLimit{
		api:       api,
		logger:    logger,
		perMinute: float64(perMinute),
		burst:     float64(burst),
		buckets:   make(map[int64]*bucket),
		stop:      make(chan struct{}),
	}
	go m.cleanupLoop()
	return m
}

func (m *RateLimit) Handle(next HandlerFunc) HandlerFunc {
	return func(ctx context.Context, update tgbotapi.Update) {
		id := userID(update)
		if id == 0 {
			next(ctx, update)
			return
		}

		allowed, wait, warn := m.take(id)
		if allowed {
			next(ctx, update)
			return
		}

		m.logger.Warn("telegram update throttled",
			zap.Int64("user_id", id),
			zap.Duration("retry_after", wait),
		)

		if warn && update.Message != nil {
			seconds := int(math.Ceil(wait.Seconds()))
			msg := tgbotapi.NewMessage(update.Message.Chat.ID,
				fmt.Sprintf(render.ErrRateLimitFmt, seconds))
			if _, err := m.api.Send(msg); err != nil {
				m.logger.Error("failed to send rate limit warning", zap.Error(err))
			}
		}
	}
}

// take refills and consumes one token. warn is true only on the first
// rejection since the last allowed update.
func (m *RateLimit) take(id int64) (allowed bool, wait time.Duration, warn bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	b, ok := m.buckets[id]
	if !ok {
		b = &bucket{tokens: m.burst, refilled: now}
		m.buckets[id] = b
	}

	perSecond := m.perMinute / 60
	b.tokens = math.Min(m.burst, b.tokens+now.Sub(b.refilled).Seconds()*perSecond)
	b.refilled = now
	b.lastSeen = now

	if b.tokens >= 1 {
		b.tokens--
		b.warned = false
		return true, 0, false
	}

	wait = time.Duration((1 - b.tokens) / perSecond * float64(time.Second))
	warn = !b.warned
	b.warned = true
	return false, wait, warn
}

func (m *RateLimit) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.cleanupInactive()
		case <-m.stop:
			return
		}
	}
}

func (m *RateLimit) cleanupInactive() {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-inactiveAfter)
	for id, b := range m.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(m.buckets, id)
		}
	}
}

// Stop terminates the background cleanup.
func (m *RateLimit) Stop() {
	close(m.stop)
}
