// Package worker holds background jobs that run on their own schedule,
// independent of request handling.
package worker

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/agisfl/agisfl/internal/domain/sysmetric"
	"github.com/agisfl/agisfl/internal/domain/threat"
	"github.com/agisfl/agisfl/internal/pkg/logger"
)

// RetentionSweeper prunes old telemetry on a cron schedule. Metric samples
// and mitigated threats past their max age are deleted; incidents and
// insights are kept indefinitely.
type RetentionSweeper struct {
	metricsRepo   sysmetric.Repository
	threatsRepo   threat.Repository
	schedule      string
	metricsMaxAge time.Duration
	threatsMaxAge time.Duration
	logger        *logger.Logger

	scheduler *cron.Cron
}

// NewRetentionSweeper creates a retention sweeper
func NewRetentionSweeper(
	metricsRepo sysmetric.Repository,
	threatsRepo threat.Repository,
	schedule string,
	metricsMaxAge, threatsMaxAge time.Duration,
	log *logger.Logger,
) *RetentionSweeper {
	return &RetentionSweeper{
		metricsRepo:   metricsRepo,
		threatsRepo:   threatsRepo,
		schedule:      schedule,
		metricsMaxAge: metricsMaxAge,
		threatsMaxAge: threatsMaxAge,
		logger:        log,
	}
}

// Start schedules the sweep and returns. Use Stop for shutdown.
func (s *RetentionSweeper) Start(ctx context.Context) error {
	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return err
	}

	s.scheduler = cron.New()
	_, err := s.scheduler.AddFunc(s.schedule, func() {
		s.Sweep(ctx)
	})
	if err != nil {
		return err
	}

	s.scheduler.Start()
	s.logger.WithFields(map[string]interface{}{
		"schedule": s.schedule,
	}).Info("Retention sweeper started")

	return nil
}

// Stop halts the scheduler, waiting for a running sweep to finish.
func (s *RetentionSweeper) Stop() {
	if s.scheduler == nil {
		return
	}
	<-s.scheduler.Stop().Done()
	s.logger.Info("Retention sweeper stopped")
}

// Sweep runs one prune pass immediately.
func (s *RetentionSweeper) Sweep(ctx context.Context) {
	now := time.Now()

	deleted, err := s.metricsRepo.DeleteBefore(ctx, now.Add(-s.metricsMaxAge))
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to prune old metrics")
	} else if deleted > 0 {
		s.logger.WithFields(map[string]interface{}{
			"deleted": deleted,
		}).Info("Pruned old metric samples")
	}

	deleted, err = s.threatsRepo.DeleteInactiveBefore(ctx, now.Add(-s.threatsMaxAge))
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to prune mitigated threats")
	} else if deleted > 0 {
		s.logger.WithFields(map[string]interface{}{
			"deleted": deleted,
		}).Info("Pruned mitigated threats")
	}
}
