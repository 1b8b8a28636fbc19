// Package ratelimit provides the outbound throttle for the LLM gateway:
// calls are serialized (one in flight at a time) and spaced so that a
// configured per-minute quota is never exceeded, even under bursts.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter serializes calls FIFO with a minimum interval between call
// starts. A caller that gives up while queued (context cancellation) does
// not consume a slot, but its queue position is simply abandoned.
type Limiter struct {
	mu        sync.Mutex
	interval  time.Duration
	nextStart time.Time

	// queue preserves arrival order across goroutines; sync.Mutex alone
	// does not guarantee FIFO wakeup.
	queueMu sync.Mutex
	queue   []chan struct{}
	busy    bool
}

// NewLimiter creates a limiter allowing requestsPerMinute call starts per
// rolling minute. Values below 1 disable spacing (calls are still
// serialized).
func NewLimiter(requestsPerMinute int) *Limiter {
	var interval time.Duration
	if requestsPerMinute > 0 {
		interval = time.Minute / time.Duration(requestsPerMinute)
	}
	return &Limiter{interval: interval}
}

// NewLimiterWithInterval creates a limiter with an explicit minimum
// spacing between call starts.
func NewLimiterWithInterval(interval time.Duration) *Limiter {
	return &Limiter{interval: interval}
}

// Do runs fn once the caller reaches the head of the queue and the
// spacing interval has elapsed. Returns ctx.Err() if the context is done
// before fn starts; fn itself is never interrupted once started.
func (l *Limiter) Do(ctx context.Context, fn func() error) error {
	release, err := l.acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	// Spacing is measured start-to-start.
	l.mu.Lock()
	wait := time.Until(l.nextStart)
	if wait > 0 {
		l.mu.Unlock()
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		l.mu.Lock()
	}
	l.nextStart = time.Now().Add(l.interval)
	l.mu.Unlock()

	return fn()
}

// acquire blocks until this caller holds the single execution slot, in
// strict arrival order.
func (l *Limiter) acquire(ctx context.Context) (func(), error) {
	ready := make(chan struct{})

	l.queueMu.Lock()
	if !l.busy && len(l.queue) == 0 {
		l.busy = true
		l.queueMu.Unlock()
		return l.release, nil
	}
	l.queue = append(l.queue, ready)
	l.queueMu.Unlock()

	select {
	case <-ctx.Done():
		l.abandon(ready)
		return nil, ctx.Err()
	case <-ready:
		return l.release, nil
	}
}

func (l *Limiter) release() {
	l.queueMu.Lock()
	defer l.queueMu.Unlock()

	for len(l.queue) > 0 {
		next := l.queue[0]
		l.queue = l.queue[1:]
		if next == nil {
			// Abandoned waiter.
			continue
		}
		close(next)
		return
	}
	l.busy = false
}

func (l *Limiter) abandon(ready chan struct{}) {
	l.queueMu.Lock()

	select {
	case <-ready:
		// Woken between cancellation and locking; pass the slot on.
		l.queueMu.Unlock()
		l.release()
		return
	default:
	}

	for i, ch := range l.queue {
		if ch == ready {
			l.queue[i] = nil
			break
		}
	}
	l.queueMu.Unlock()
}
