package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
	"timecard.backend/pkg/logger"
	"timecard.backend/pkg/metrics"
)

type unverifiedTimecardStore interface {
	DeleteUnverifiedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// UnverifiedTimecardSweeper deletes clock-ins whose verification code was never entered
type UnverifiedTimecardSweeper struct {
	repo     unverifiedTimecardStore
	interval time.Duration
	ttl      time.Duration
	now      func() time.Time
	stop     chan struct{}
}

func NewUnverifiedTimecardSweeper(repo unverifiedTimecardStore, interval, ttl time.Duration) *UnverifiedTimecardSweeper {
	return &UnverifiedTimecardSweeper{
		repo:     repo,
		interval: interval,
		ttl:      ttl,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
}

func (j *UnverifiedTimecardSweeper) Start(ctx context.Context) {
	logger.Info(ctx, "Starting unverified timecard sweeper",
		zap.Duration("interval", j.interval),
		zap.Duration("ttl", j.ttl),
	)

	if j.interval <= 0 {
		logger.Warn(ctx, "Unverified timecard sweeper disabled (non-positive interval)")
		return
	}

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Unverified timecard sweeper stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "Unverified timecard sweeper stopped")
			return
		case <-ticker.C:
			j.sweep(ctx)
		}
	}
}

func (j *UnverifiedTimecardSweeper) Stop() {
	close(j.stop)
}

func (j *UnverifiedTimecardSweeper) sweep(ctx context.Context) {
	cutoff := j.now().Add(-j.ttl)
	n, err := j.repo.DeleteUnverifiedBefore(ctx, cutoff)
	if err != nil {
		logger.Error(ctx, "Failed to sweep unverified timecards", zap.Error(err))
		return
	}
	if n == 0 {
		return
	}

	metrics.TimecardsSwept(int(n))
	logger.Info(ctx, "Swept unverified timecards", zap.Int64("count", n), zap.Time("cutoff", cutoff))
}
