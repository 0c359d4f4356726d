package collection

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	logginghelpers "github.com/Pjt727/soc/data/logging-helpers"
)

type Scheduler struct {
	orch   *Orchestrator
	logger *slog.Logger

	successfulRuns atomic.Uint32
	failedRuns     atomic.Uint32
}

func NewScheduler(orch *Orchestrator, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{orch: orch, logger: logger}
}

// Every collects the term right away and then once per interval until the
// context ends. Each run stands alone, a failed run does not stop the next
// one. This function will block for the duration.
func (s *Scheduler) Every(ctx context.Context, interval time.Duration, term string, subjects []string) (uint32, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		s.collectOnce(ctx, term, subjects)

		select {
		case <-ctx.Done():
			return s.successfulRuns.Load(), nil
		case <-ticker.C:
		}
	}
}

func (s *Scheduler) collectOnce(ctx context.Context, term string, subjects []string) {
	if ctx.Err() != nil {
		return
	}
	run, catalog, err := s.orch.CollectTerm(ctx, term, subjects)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		s.failedRuns.Add(1)
		s.logger.Log(ctx, logginghelpers.LevelBrokenProcess, "scheduled collection failed",
			"run", run.ID.String(),
			"term", term,
			"error", err,
		)
		return
	}
	s.successfulRuns.Add(1)
	s.logger.Info("scheduled collection finished",
		"run", run.ID.String(),
		"term", term,
		"courses", len(catalog.Courses),
	)
}

func (s *Scheduler) Failed() uint32 { return s.failedRuns.Load() }
