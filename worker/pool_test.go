package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolRunsSubmittedTasks(t *testing.T) {
	pool := NewPool(4, 16, 0)
	defer pool.Shutdown()

	var done atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		require.NoError(t, pool.Submit(func(ctx context.Context) {
			defer wg.Done()
			done.Add(1)
		}))
	}
	wg.Wait()
	assert.Equal(t, int64(10), done.Load())
}

func TestPoolRejectsWhenQueueFull(t *testing.T) {
	pool := NewPool(1, 1, 0)
	defer pool.Shutdown()

	block := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, pool.Submit(func(ctx context.Context) {
		close(started)
		<-block
	}))
	<-started

	// worker busy; this one sits in the queue
	require.NoError(t, pool.Submit(func(ctx context.Context) {}))

	// queue full now, submission fails without blocking
	err := pool.Submit(func(ctx context.Context) {})
	assert.ErrorIs(t, err, ErrQueueFull)

	close(block)
}

func TestPoolTaskTimeout(t *testing.T) {
	pool := NewPool(1, 1, 20*time.Millisecond)
	defer pool.Shutdown()

	expired := make(chan struct{})
	require.NoError(t, pool.Submit(func(ctx context.Context) {
		<-ctx.Done()
		close(expired)
	}))

	select {
	case <-expired:
	case <-time.After(time.Second):
		t.Fatal("task context never expired")
	}
}

func TestPoolShutdownDrainsQueue(t *testing.T) {
	pool := NewPool(2, 8, 0)

	var done atomic.Int64
	for i := 0; i < 8; i++ {
		require.NoError(t, pool.Submit(func(ctx context.Context) {
			time.Sleep(5 * time.Millisecond)
			done.Add(1)
		}))
	}

	pool.Shutdown()
	assert.Equal(t, int64(8), done.Load())

	err := pool.Submit(func(ctx context.Context) {})
	assert.ErrorIs(t, err, ErrPoolClosed)
}
