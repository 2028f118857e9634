package jobs_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jengaest/estimate-api/internal/jobs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTaskRunner_RunsTasks(t *testing.T) {
	runner := jobs.NewTaskRunner(3, 10, zap.NewNop())

	var count atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		require.NoError(t, runner.Submit(func(ctx context.Context) {
			defer wg.Done()
			count.Add(1)
		}))
	}
	wg.Wait()
	assert.Equal(t, int32(10), count.Load())

	require.NoError(t, runner.Stop(context.Background()))
}

func TestTaskRunner_QueueFull(t *testing.T) {
	runner := jobs.NewTaskRunner(1, 1, zap.NewNop())

	release := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, runner.Submit(func(ctx context.Context) {
		close(started)
		<-release
	}))
	<-started

	require.NoError(t, runner.Submit(func(ctx context.Context) {}))
	assert.ErrorIs(t, runner.Submit(func(ctx context.Context) {}), jobs.ErrQueueFull)

	close(release)
	require.NoError(t, runner.Stop(context.Background()))
}

func TestTaskRunner_StopDrainsQueue(t *testing.T) {
	runner := jobs.NewTaskRunner(1, 5, zap.NewNop())

	var count atomic.Int32
	for i := 0; i < 5; i++ {
		require.NoError(t, runner.Submit(func(ctx context.Context) {
			time.Sleep(5 * time.Millisecond)
			count.Add(1)
		}))
	}

	require.NoError(t, runner.Stop(context.Background()))
	assert.Equal(t, int32(5), count.Load())
	assert.ErrorIs(t, runner.Submit(func(ctx context.Context) {}), jobs.ErrRunnerStopped)

	// A second stop is harmless.
	require.NoError(t, runner.Stop(context.Background()))
}

func TestTaskRunner_StopDeadlineCancelsTasks(t *testing.T) {
	runner := jobs.NewTaskRunner(1, 1, zap.NewNop())

	started := make(chan struct{})
	require.NoError(t, runner.Submit(func(ctx context.Context) {
		close(started)
		<-ctx.Done()
	}))
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, runner.Stop(ctx), context.DeadlineExceeded)
}

func TestTaskRunner_RecoversPanics(t *testing.T) {
	runner := jobs.NewTaskRunner(1, 2, zap.NewNop())

	done := make(chan struct{})
	require.NoError(t, runner.Submit(func(ctx context.Context) { panic("boom") }))
	require.NoError(t, runner.Submit(func(ctx context.Context) { close(done) }))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not survive a panicking task")
	}
	require.NoError(t, runner.Stop(context.Background()))
}
