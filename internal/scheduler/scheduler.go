package scheduler

import (
	"context"
	"log/slog"
	"time"

	"contentops/internal/domain"
	"contentops/internal/stream"
)

// CycleRunner runs one full content-operations cycle.
type CycleRunner interface {
	RunCycle(ctx context.Context, projectID, accountID int64, emitter *stream.Emitter) (*domain.CycleStats, error)
}

type Scheduler struct {
	runner    CycleRunner
	projectID int64
	accountID int64
	interval  time.Duration
	timeout   time.Duration
	logger    *slog.Logger
}

func NewScheduler(runner CycleRunner, projectID, accountID int64, interval, timeout time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		runner:    runner,
		projectID: projectID,
		accountID: accountID,
		interval:  interval,
		timeout:   timeout,
		logger:    logger,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started", "interval", s.interval, "project_id", s.projectID)

	s.runCycle(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runCycle(ctx)
		}
	}
}

// runCycle executes one scheduled cycle with no client attached, so progress
// frames go to a discard sink and only logs remain.
func (s *Scheduler) runCycle(ctx context.Context) {
	cycleCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	emitter := stream.NewEmitter(stream.DiscardSink{}, 0)
	stats, err := s.runner.RunCycle(cycleCtx, s.projectID, s.accountID, emitter)
	if err != nil {
		s.logger.Error("scheduled cycle failed", "project_id", s.projectID, "error", err)
		return
	}

	s.logger.Info("scheduled cycle finished",
		"project_id", s.projectID,
		"action", stats.Action,
		"generated", stats.Generated,
		"published", stats.Published,
		"credits_used", stats.CreditsUsed,
	)
}
