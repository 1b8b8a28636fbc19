// Package state maps Telegram users to conversation sessions and holds
// the bot-side UI state that the conversation workflow has no business
// knowing about.
package state

import (
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// ChatState is the per-user bot state. It expires together with the
// conversation session it points at.
type ChatState struct {
	SessionID string
	FormID    int64

	// AwaitingSideQuestion marks that the next free-text message is a
	// side question, not an answer.
	AwaitingSideQuestion bool
}

// Manager stores chat states with a TTL.
type Manager struct {
	cache *gocache.Cache
}

func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		cache: gocache.New(ttl, 10*time.Minute),
	}
}

func (m *Manager) Get(userID int64) (*ChatState, bool) {
	v, ok := m.cache.Get(key(userID))
	if !ok {
		return nil, false
	}
	return v.(*ChatState), true
}

func (m *Manager) Set(userID int64, s *ChatState) {
	m.cache.SetDefault(key(userID), s)
}

func (m *Manager) Delete(userID int64) {
	m.cache.Delete(key(userID))
}

func key(userID int64) string {
	return strconv.FormatInt(userID, 10)
}
