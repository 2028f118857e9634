package jobs

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

var (
	// ErrQueueFull is returned when the task buffer has no free slot
	ErrQueueFull = errors.New("task queue is full")

	// ErrRunnerStopped is returned for submissions after Stop
	ErrRunnerStopped = errors.New("task runner is stopped")
)

// TaskRunner is a fixed pool of workers draining a bounded queue of tasks.
// Tasks receive a context that is cancelled when Stop's deadline passes.
type TaskRunner struct {
	tasks   chan func(ctx context.Context)
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.RWMutex
	stopped bool
	logger  *zap.Logger
}

// NewTaskRunner starts workers goroutines sharing a queue of queueSize tasks
func NewTaskRunner(workers, queueSize int, logger *zap.Logger) *TaskRunner {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}

	ctx, cancel := context.WithCancel(context.Background())
	r := &TaskRunner{
		tasks:  make(chan func(ctx context.Context), queueSize),
		ctx:    ctx,
		cancel: cancel,
		logger: logger,
	}

	r.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go r.work()
	}

	logger.Info("task runner started", zap.Int("workers", workers), zap.Int("queue_size", queueSize))
	return r
}

// Submit queues task without blocking
func (r *TaskRunner) Submit(task func(ctx context.Context)) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.stopped {
		return ErrRunnerStopped
	}

	select {
	case r.tasks <- task:
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop refuses new tasks and waits for queued ones to finish. When ctx ends
// first the running tasks are cancelled and Stop returns ctx's error.
func (r *TaskRunner) Stop(ctx context.Context) error {
	r.mu.Lock()
	if !r.stopped {
		r.stopped = true
		close(r.tasks)
	}
	r.mu.Unlock()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.cancel()
		r.logger.Info("task runner drained")
		return nil
	case <-ctx.Done():
		r.cancel()
		<-done
		r.logger.Warn("task runner stopped before queue drained")
		return ctx.Err()
	}
}

func (r *TaskRunner) work() {
	defer r.wg.Done()
	for task := range r.tasks {
		r.run(task)
	}
}

func (r *TaskRunner) run(task func(ctx context.Context)) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("task panicked", zap.Any("panic", rec))
		}
	}()
	task(r.ctx)
}
