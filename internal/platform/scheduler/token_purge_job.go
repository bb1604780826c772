package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultPurgeSchedule runs the purge hourly.
const DefaultPurgeSchedule = "@every 1h"

// Purger removes expired revocation entries.
type Purger interface {
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// TokenPurgeJob periodically deletes revocations for tokens that have expired.
type TokenPurgeJob struct {
	purger   Purger
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
	now      func() time.Time
}

func NewTokenPurgeJob(purger Purger, schedule string, logger *slog.Logger) *TokenPurgeJob {
	if schedule == "" {
		schedule = DefaultPurgeSchedule
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TokenPurgeJob{
		purger:   purger,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger.With("component", "token_purge_job"),
		now:      time.Now,
	}
}

// Start registers the purge and starts the scheduler. An invalid schedule is returned as an error.
func (j *TokenPurgeJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { _, _ = j.Run(context.Background()) }); err != nil {
		return err
	}
	j.cron.Start()
	j.logger.Info("token purge job started", "schedule", j.schedule)
	return nil
}

// Run performs one purge and reports how many revocations were removed.
func (j *TokenPurgeJob) Run(ctx context.Context) (int64, error) {
	purged, err := j.purger.PurgeExpired(ctx, j.now())
	if err != nil {
		j.logger.ErrorContext(ctx, "token purge failed", "error", err)
		return 0, err
	}
	if purged > 0 {
		j.logger.InfoContext(ctx, "purged expired token revocations", "count", purged)
	}
	return purged, nil
}

// Stop halts scheduling and waits for a running purge to finish.
func (j *TokenPurgeJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("token purge job stopped")
}
