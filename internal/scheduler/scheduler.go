// Package scheduler runs periodic maintenance jobs on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/ndewijer/Investment-Simulator-Backend/internal/config"
)

// purgeTimeout bounds a single retention run.
const purgeTimeout = time.Minute

// Purger deletes simulations older than a retention window.
type Purger interface {
	PurgeExpired(ctx context.Context, retention time.Duration) (int, error)
}

// Scheduler owns the cron runner and its jobs.
type Scheduler struct {
	cron      *cron.Cron
	purger    Purger
	retention time.Duration
	logger    *zap.Logger
}

// New registers the retention purge on cfg.Schedule. A zero cfg.Days leaves
// the scheduler without jobs.
func New(purger Purger, cfg config.RetentionConfig, logger *zap.Logger) (*Scheduler, error) {
	cl := cronLogger{logger.Sugar()}
	s := &Scheduler{
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		purger:    purger,
		retention: time.Duration(cfg.Days) * 24 * time.Hour,
		logger:    logger,
	}

	if cfg.Days == 0 {
		logger.Info("retention purge disabled")
		return s, nil
	}

	if _, err := s.cron.AddFunc(cfg.Schedule, func() { s.RunPurge(context.Background()) }); err != nil {
		return nil, fmt.Errorf("invalid RETENTION_SCHEDULE %q: %w", cfg.Schedule, err)
	}
	logger.Info("retention purge scheduled",
		zap.String("schedule", cfg.Schedule),
		zap.Int("days", cfg.Days),
	)
	return s, nil
}

// Jobs reports how many jobs are registered.
func (s *Scheduler) Jobs() int {
	return len(s.cron.Entries())
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the scheduler and waits for a running job to finish or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.logger.Warn("scheduler stop timed out", zap.Error(ctx.Err()))
	}
}

// RunPurge deletes simulations older than the retention window once.
func (s *Scheduler) RunPurge(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, purgeTimeout)
	defer cancel()

	start := time.Now()
	n, err := s.purger.PurgeExpired(ctx, s.retention)
	if err != nil {
		s.logger.Error("retention purge failed", zap.Error(err))
		return
	}
	s.logger.Info("retention purge finished",
		zap.Int("deleted", n),
		zap.Duration("duration", time.Since(start)),
	)
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	l *zap.SugaredLogger
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.l.Debugw(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.l.Errorw(msg, append(keysAndValues, "error", err)...)
}
