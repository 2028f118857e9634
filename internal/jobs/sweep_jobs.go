package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const (
	// ShareExpiryJobName deactivates share links past their expiry
	ShareExpiryJobName = "share_expiry"

	// StaleProcessingJobName fails AI estimates stuck in processing
	StaleProcessingJobName = "stale_processing"

	// AuditCleanupJobName prunes audit entries past retention
	AuditCleanupJobName = "audit_cleanup"

	defaultSweepTimeout = 2 * time.Minute
)

// ShareSweeper deactivates expired share links
type ShareSweeper interface {
	SweepExpired(ctx context.Context) (int64, error)
}

// StaleProcessingSweeper fails estimates that have been processing too long
type StaleProcessingSweeper interface {
	ExpireStale(ctx context.Context, timeout time.Duration) (int64, error)
}

// AuditPruner removes audit entries older than a retention period
type AuditPruner interface {
	CleanupOldLogs(ctx context.Context, retentionDays int) (int64, error)
}

// SweepJob runs a bulk update and logs how many rows it touched
type SweepJob struct {
	name    string
	sweep   func(ctx context.Context) (int64, error)
	logger  *zap.Logger
	timeout time.Duration
}

// NewShareExpiryJob creates the job that deactivates expired shares
func NewShareExpiryJob(sweeper ShareSweeper, logger *zap.Logger) *SweepJob {
	return &SweepJob{
		name:    ShareExpiryJobName,
		sweep:   sweeper.SweepExpired,
		logger:  logger,
		timeout: defaultSweepTimeout,
	}
}

// NewStaleProcessingJob creates the job that fails estimates processing for longer than timeout
func NewStaleProcessingJob(sweeper StaleProcessingSweeper, processingTimeout time.Duration, logger *zap.Logger) *SweepJob {
	return &SweepJob{
		name: StaleProcessingJobName,
		sweep: func(ctx context.Context) (int64, error) {
			return sweeper.ExpireStale(ctx, processingTimeout)
		},
		logger:  logger,
		timeout: defaultSweepTimeout,
	}
}

// NewAuditCleanupJob creates the job that prunes audit entries older than retentionDays
func NewAuditCleanupJob(pruner AuditPruner, retentionDays int, logger *zap.Logger) *SweepJob {
	return &SweepJob{
		name: AuditCleanupJobName,
		sweep: func(ctx context.Context) (int64, error) {
			return pruner.CleanupOldLogs(ctx, retentionDays)
		},
		logger:  logger,
		timeout: 10 * time.Minute,
	}
}

// Name returns the scheduler name of the job
func (j *SweepJob) Name() string {
	return j.name
}

// Run executes one sweep
func (j *SweepJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	count, err := j.sweep(ctx)
	if err != nil {
		j.logger.Error("sweep job failed",
			zap.String("job_name", j.name),
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	if count > 0 {
		j.logger.Info("sweep job completed",
			zap.String("job_name", j.name),
			zap.Int64("rows_affected", count),
			zap.Duration("duration", time.Since(start)))
	}
}

// Register adds the job to scheduler. An empty cronExpr leaves it unscheduled.
func (j *SweepJob) Register(scheduler *Scheduler, cronExpr string) error {
	if cronExpr == "" {
		j.logger.Info("no schedule configured, job not registered", zap.String("job_name", j.name))
		return nil
	}
	return scheduler.AddJob(j.name, cronExpr, j.Run)
}
