package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestTakeBurstThenThrottle(t *testing.T) {
	m := NewRateLimit(nil, 60, 2, zap.NewNop())
	defer m.Stop()

	allowed, _, _ := m.take(1)
	assert.True(t, allowed)
	allowed, _, _ = m.take(1)
	assert.True(t, allowed)

	allowed, wait, warn := m.take(1)
	assert.False(t, allowed)
	assert.True(t, warn)
	assert.Greater(t, wait, time.Duration(0))

	// Only the first rejection warns.
	_, _, warn = m.take(1)
	assert.False(t, warn)
}

func TestTakeIsolatesUsers(t *testing.T) {
	m := NewRateLimit(nil, 60, 1, zap.NewNop())
	defer m.Stop()

	allowed, _, _ := m.take(1)
	assert.True(t, allowed)
	allowed, _, _ = m.take(1)
	assert.False(t, allowed)

	allowed, _, _ = m.take(2)
	assert.True(t, allowed)
}

func TestCleanupDropsInactiveUsers(t *testing.T) {
	m := NewRateLimit(nil, 60, 1, zap.NewNop())
	defer m.Stop()

	m.take(1)
	m.buckets[1].lastSeen = time.Now().Add(-time.Hour)
	m.take(2)

	m.cleanupInactive()

	_, ok := m.buckets[1]
	assert.False(t, ok)
	_, ok = m.buckets[2]
	assert.True(t, ok)
}
