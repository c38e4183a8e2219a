// Package scheduler runs the periodic attention sweep over the board.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"young-ats/internal/domain"
	"young-ats/pkg/logger"
)

// Scheduler wraps robfig/cron and owns the attention sweep.
type Scheduler struct {
	cron       *cron.Cron
	candidates domain.CandidateUsecase
	events     domain.EventPublisher
	spec       string // e.g. "@every 6h"
	now        func() time.Time
}

func New(candidates domain.CandidateUsecase, events domain.EventPublisher, spec string) *Scheduler {
	return &Scheduler{
		cron:       cron.New(cron.WithLogger(cronLogger{})),
		candidates: candidates,
		events:     events,
		spec:       spec,
		now:        time.Now,
	}
}

// Start registers the sweep and starts the scheduler. One sweep also runs
// right away so flags are published without waiting for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.RunOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	logger.Log.Infow("Scheduler started", "spec", s.spec)

	go s.RunOnce(ctx)
	return nil
}

// Stop waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	logger.Log.Info("Scheduler stopped")
}

// RunOnce flags every candidate needing attention and publishes one event
// for each. It returns how many were flagged.
func (s *Scheduler) RunOnce(ctx context.Context) int {
	at := s.now()

	flagged, err := s.candidates.FindNeedingAttention(ctx, at)
	if err != nil {
		logger.Log.Errorw("attention sweep failed", "error", err)
		return 0
	}

	for _, c := range flagged {
		event := domain.CandidateEvent{
			Type:      domain.EventNeedsAttention,
			LegacyID:  c.LegacyID,
			FullName:  c.FullName,
			FromStage: c.PipelineStage,
			Actor:     domain.SystemUser,
			At:        at,
		}
		if err := s.events.Publish(ctx, event); err != nil {
			logger.Log.Warnw("publish attention event failed", "legacyId", c.LegacyID, "error", err)
		}
	}

	logger.Log.Infow("Attention sweep complete", "flagged", len(flagged))
	return len(flagged)
}

// cronLogger routes robfig/cron's own logging through zap. Its per-tick
// chatter goes to debug.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Log.Debugw("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.Log.Errorw("cron: "+msg, append(keysAndValues, "error", err)...)
}
