package worker

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrQueueFull is returned by Submit when the task queue has no room. Callers
// decide whether that means dropping the task or failing the request.
var ErrQueueFull = errors.New("worker queue full")

// ErrPoolClosed is returned by Submit after Shutdown.
var ErrPoolClosed = errors.New("worker pool closed")

// Task is a unit of background work. The context carries the per-task
// deadline and is cancelled when the pool shuts down.
type Task func(ctx context.Context)

// Pool runs tasks on a fixed set of workers fed from a bounded queue.
// Submission never blocks: a full queue rejects immediately.
type Pool struct {
	queue       chan Task
	taskTimeout time.Duration

	mu     sync.Mutex
	closed bool

	wg       sync.WaitGroup
	baseCtx  context.Context
	cancelFn context.CancelFunc
}

func NewPool(workers, queueSize int, taskTimeout time.Duration) *Pool {
	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		queue:       make(chan Task, queueSize),
		taskTimeout: taskTimeout,
		baseCtx:     ctx,
		cancelFn:    cancel,
	}

	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}

	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.queue {
		p.run(task)
	}
}

func (p *Pool) run(task Task) {
	ctx := p.baseCtx
	cancel := context.CancelFunc(func() {})
	if p.taskTimeout > 0 {
		ctx, cancel = context.WithTimeout(p.baseCtx, p.taskTimeout)
	}
	defer cancel()
	task(ctx)
}

// Submit enqueues a task without blocking. A full queue fails fast with
// ErrQueueFull instead of stalling the caller.
func (p *Pool) Submit(task Task) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrPoolClosed
	}
	defer p.mu.Unlock()

	select {
	case p.queue <- task:
		return nil
	default:
		return ErrQueueFull
	}
}

// Shutdown stops accepting tasks, waits for queued work to drain, then
// cancels the base context.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	p.wg.Wait()
	p.cancelFn()
}
