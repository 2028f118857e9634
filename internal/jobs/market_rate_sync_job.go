package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/jengaest/estimate-api/internal/service"
	"go.uber.org/zap"
)

// MarketRateSyncJobName is the name of the market-rate sync job
const MarketRateSyncJobName = "market_rate_sync"

// MarketRateSyncer copies published market rates onto reference data
type MarketRateSyncer interface {
	IsEnabled() bool
	Sync(ctx context.Context) (*service.MarketRateSyncResult, error)
}

// MarketRateSyncJob refreshes location multipliers and project-type base rates
// from the market-data warehouse.
type MarketRateSyncJob struct {
	syncer  MarketRateSyncer
	logger  *zap.Logger
	timeout time.Duration
}

// NewMarketRateSyncJob creates a new market-rate sync job.
// The timeout bounds a single run.
func NewMarketRateSyncJob(syncer MarketRateSyncer, logger *zap.Logger, timeout time.Duration) *MarketRateSyncJob {
	return &MarketRateSyncJob{
		syncer:  syncer,
		logger:  logger,
		timeout: timeout,
	}
}

// Run executes one sync. Errors are logged; the next scheduled run retries.
func (j *MarketRateSyncJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	result, err := j.syncer.Sync(ctx)
	if err != nil {
		if errors.Is(err, service.ErrMarketDataUnavailable) {
			j.logger.Debug("market data unavailable, skipping sync")
			return
		}
		j.logger.Error("market rate sync failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	j.logger.Info("market rate sync job completed",
		zap.Int64("locations_updated", result.LocationsUpdated),
		zap.Int64("project_types_updated", result.ProjectTypesUpdated),
		zap.Int("skipped", result.Skipped),
		zap.Duration("duration", time.Since(start)))
}

// RegisterMarketRateSyncJob registers the sync with the scheduler when the source is enabled.
// With runAtStartup set a first sync runs in a background goroutine so it does not block startup.
func RegisterMarketRateSyncJob(scheduler *Scheduler, syncer MarketRateSyncer, logger *zap.Logger, cronExpr string, timeout time.Duration, runAtStartup bool) error {
	if !syncer.IsEnabled() {
		logger.Info("market data disabled, market rate sync job not registered")
		return nil
	}

	job := NewMarketRateSyncJob(syncer, logger, timeout)
	if runAtStartup {
		go job.Run()
	}

	return scheduler.AddJob(MarketRateSyncJobName, cronExpr, job.Run)
}
