package jobs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jengaest/estimate-api/internal/jobs"
	"github.com/jengaest/estimate-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSweeper struct {
	calls     int
	timeout   time.Duration
	retention int
	err       error
}

func (f *fakeSweeper) SweepExpired(ctx context.Context) (int64, error) {
	f.calls++
	return 3, f.err
}

func (f *fakeSweeper) ExpireStale(ctx context.Context, timeout time.Duration) (int64, error) {
	f.calls++
	f.timeout = timeout
	return 1, f.err
}

func (f *fakeSweeper) CleanupOldLogs(ctx context.Context, retentionDays int) (int64, error) {
	f.calls++
	f.retention = retentionDays
	return 0, f.err
}

func TestSweepJobs(t *testing.T) {
	logger := zap.NewNop()

	t.Run("share expiry", func(t *testing.T) {
		f := &fakeSweeper{}
		job := jobs.NewShareExpiryJob(f, logger)
		job.Run()
		assert.Equal(t, 1, f.calls)
		assert.Equal(t, jobs.ShareExpiryJobName, job.Name())
	})

	t.Run("stale processing passes the timeout", func(t *testing.T) {
		f := &fakeSweeper{}
		jobs.NewStaleProcessingJob(f, 30*time.Minute, logger).Run()
		assert.Equal(t, 30*time.Minute, f.timeout)
	})

	t.Run("audit cleanup passes the retention", func(t *testing.T) {
		f := &fakeSweeper{}
		jobs.NewAuditCleanupJob(f, 365, logger).Run()
		assert.Equal(t, 365, f.retention)
	})

	t.Run("errors do not panic", func(t *testing.T) {
		f := &fakeSweeper{err: errors.New("db down")}
		assert.NotPanics(t, jobs.NewShareExpiryJob(f, logger).Run)
	})

	t.Run("register", func(t *testing.T) {
		s := jobs.NewScheduler(logger)
		require.NoError(t, jobs.NewShareExpiryJob(&fakeSweeper{}, logger).Register(s, "0 0 * * * *"))
		require.NoError(t, jobs.NewAuditCleanupJob(&fakeSweeper{}, 30, logger).Register(s, ""))
		assert.Equal(t, []string{jobs.ShareExpiryJobName}, s.JobNames())
	})
}

type fakeSyncer struct {
	enabled bool
	calls   int
	err     error
}

func (f *fakeSyncer) IsEnabled() bool { return f.enabled }

func (f *fakeSyncer) Sync(ctx context.Context) (*service.MarketRateSyncResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &service.MarketRateSyncResult{LocationsUpdated: 2}, nil
}

func TestMarketRateSyncJob(t *testing.T) {
	logger := zap.NewNop()

	t.Run("disabled source is not registered", func(t *testing.T) {
		s := jobs.NewScheduler(logger)
		require.NoError(t, jobs.RegisterMarketRateSyncJob(s, &fakeSyncer{}, logger, "0 0 3 * * *", time.Minute, false))
		assert.Empty(t, s.JobNames())
	})

	t.Run("enabled source is registered", func(t *testing.T) {
		s := jobs.NewScheduler(logger)
		require.NoError(t, jobs.RegisterMarketRateSyncJob(s, &fakeSyncer{enabled: true}, logger, "0 0 3 * * *", time.Minute, false))
		assert.Equal(t, []string{jobs.MarketRateSyncJobName}, s.JobNames())
	})

	t.Run("run tolerates failures", func(t *testing.T) {
		for _, err := range []error{nil, service.ErrMarketDataUnavailable, errors.New("timeout")} {
			f := &fakeSyncer{enabled: true, err: err}
			jobs.NewMarketRateSyncJob(f, logger, time.Minute).Run()
			assert.Equal(t, 1, f.calls)
		}
	})
}
