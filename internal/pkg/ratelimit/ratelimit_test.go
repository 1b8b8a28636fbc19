package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiterSpacesCalls(t *testing.T) {
	const interval = 50 * time.Millisecond
	l := NewLimiterWithInterval(interval)

	var mu sync.Mutex
	var starts []time.Time

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := l.Do(context.Background(), func() error {
				mu.Lock()
				starts = append(starts, time.Now())
				mu.Unlock()
				return nil
			})
			assert.NoError(t, err)
		}()
		// Stagger submissions so queue order is deterministic.
		time.Sleep(2 * time.Millisecond)
	}
	wg.Wait()

	require.Len(t, starts, 5)
	for i := 1; i < len(starts); i++ {
		gap := starts[i].Sub(starts[i-1])
		assert.GreaterOrEqual(t, gap, interval-5*time.Millisecond,
			"call %d started %v after call %d", i, gap, i-1)
	}
}

func TestLimiterFIFOOrder(t *testing.T) {
	l := NewLimiterWithInterval(10 * time.Millisecond)

	var mu sync.Mutex
	var order []int

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = l.Do(context.Background(), func() error {
				mu.Lock()
				order = append(order, i)
				mu.Unlock()
				return nil
			})
		}()
		time.Sleep(3 * time.Millisecond)
	}
	wg.Wait()

	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestLimiterSerializes(t *testing.T) {
	l := NewLimiter(0)

	var inFlight, maxInFlight int
	var mu sync.Mutex

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = l.Do(context.Background(), func() error {
				mu.Lock()
				inFlight++
				if inFlight > maxInFlight {
					maxInFlight = inFlight
				}
				mu.Unlock()

				time.Sleep(5 * time.Millisecond)

				mu.Lock()
				inFlight--
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxInFlight)
}

func TestLimiterCancelledWhileQueued(t *testing.T) {
	l := NewLimiterWithInterval(0)

	blocker := make(chan struct{})
	done := make(chan struct{})
	go func() {
		_ = l.Do(context.Background(), func() error {
			<-blocker
			return nil
		})
		close(done)
	}()

	// Wait for the first call to hold the slot.
	time.Sleep(10 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- l.Do(ctx, func() error { return nil })
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	require.ErrorIs(t, <-errCh, context.Canceled)

	// Limiter must still be usable after the abandoned waiter.
	close(blocker)
	<-done

	err := l.Do(context.Background(), func() error { return nil })
	assert.NoError(t, err)
}
